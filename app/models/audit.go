package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// JSONMap stores arbitrary row snapshots as jsonb.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return errors.New("audit payload: expected []byte")
	}
	return json.Unmarshal(b, m)
}

// AuditLog records one mutation against an administered table.
type AuditLog struct {
	ID        string      `json:"id" db:"id"`
	UserID    *string     `json:"user_id,omitempty" db:"user_id"`
	UserEmail *string     `json:"user_email,omitempty" db:"user_email"`
	Action    AuditAction `json:"action" db:"action"`
	TableName string      `json:"table_name" db:"table_name"`
	RecordID  *string     `json:"record_id,omitempty" db:"record_id"`
	OldData   JSONMap     `json:"old_data,omitempty" db:"old_data"`
	NewData   JSONMap     `json:"new_data,omitempty" db:"new_data"`
	IPAddress *string     `json:"ip_address,omitempty" db:"ip_address"`
	Timestamp time.Time   `json:"timestamp" db:"timestamp"`
}
