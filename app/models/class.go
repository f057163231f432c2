package models

import "time"

// Class represents a named class/grade level students are enrolled into.
type Class struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	SortOrder   *int      `json:"sort_order,omitempty" db:"sort_order"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
