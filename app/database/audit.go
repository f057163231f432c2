package database

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/itxparadoxarc-wq/educoreportal/app/models"
)

// AuditFilters represents filtering options for the audit log view.
type AuditFilters struct {
	TableName string
	Action    string
	Search    string
	Limit     int
}

func InsertAuditLog(db *sqlx.DB, entry *models.AuditLog) error {
	_, err := db.Exec(`INSERT INTO audit_logs
		(user_id, user_email, action, table_name, record_id, old_data, new_data, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.UserID, entry.UserEmail, entry.Action, entry.TableName,
		entry.RecordID, entry.OldData, entry.NewData, entry.IPAddress)
	return err
}

func ListAuditLogs(db *sqlx.DB, f AuditFilters) ([]models.AuditLog, error) {
	query := `SELECT id, user_id, user_email, action, table_name, record_id,
		old_data, new_data, ip_address, timestamp
		FROM audit_logs`

	var conditions []string
	var args []interface{}
	argIndex := 1

	if f.TableName != "" && f.TableName != "all" {
		conditions = append(conditions, fmt.Sprintf("table_name = $%d", argIndex))
		args = append(args, f.TableName)
		argIndex++
	}
	if f.Action != "" && f.Action != "all" {
		conditions = append(conditions, fmt.Sprintf("action = $%d", argIndex))
		args = append(args, f.Action)
		argIndex++
	}
	if f.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(user_email ILIKE $%d OR table_name ILIKE $%d OR record_id ILIKE $%d)",
			argIndex, argIndex, argIndex))
		args = append(args, "%"+f.Search+"%")
		argIndex++
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY timestamp DESC"

	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 200
	}
	query += fmt.Sprintf(" LIMIT %d", limit)

	logs := []models.AuditLog{}
	if err := db.Select(&logs, query, args...); err != nil {
		return nil, err
	}
	return logs, nil
}

// ListRecentAuditLogs returns the newest entries for the dashboard feed.
func ListRecentAuditLogs(db *sqlx.DB, limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 10
	}
	logs := []models.AuditLog{}
	err := db.Select(&logs, `SELECT id, user_id, user_email, action, table_name, record_id,
		old_data, new_data, ip_address, timestamp
		FROM audit_logs ORDER BY timestamp DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return logs, nil
}
