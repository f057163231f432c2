package database

import (
	"github.com/jmoiron/sqlx"

	"github.com/itxparadoxarc-wq/educoreportal/app/models"
)

func ListClasses(db *sqlx.DB, activeOnly bool) ([]models.Class, error) {
	query := `SELECT id, name, description, is_active, sort_order, created_at FROM classes`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY sort_order NULLS LAST, name`

	classes := []models.Class{}
	if err := db.Select(&classes, query); err != nil {
		return nil, err
	}
	return classes, nil
}

func CreateClass(db *sqlx.DB, class *models.Class) error {
	return db.Get(class, `INSERT INTO classes (name, description, is_active, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, description, is_active, sort_order, created_at`,
		class.Name, class.Description, class.IsActive, class.SortOrder)
}

func UpdateClass(db *sqlx.DB, class *models.Class) error {
	return db.Get(class, `UPDATE classes SET name = $2, description = $3, is_active = $4, sort_order = $5
		WHERE id = $1
		RETURNING id, name, description, is_active, sort_order, created_at`,
		class.ID, class.Name, class.Description, class.IsActive, class.SortOrder)
}
