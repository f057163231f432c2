package database

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/itxparadoxarc-wq/educoreportal/app/models"
)

// StudentFilters represents filtering options for student listings.
type StudentFilters struct {
	Class  string
	Status string
	Search string
}

const studentColumns = `id, student_id, first_name, last_name, class, section, status,
	admission_date, date_of_birth, gender, guardian_name, guardian_phone,
	guardian_relation, phone, address, notes, created_by, created_at, updated_at`

func ListStudents(db *sqlx.DB, f StudentFilters) ([]models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students`

	var conditions []string
	var args []interface{}
	argIndex := 1

	if f.Class != "" && f.Class != "all" {
		conditions = append(conditions, fmt.Sprintf("class = $%d", argIndex))
		args = append(args, f.Class)
		argIndex++
	}
	if f.Status != "" && f.Status != "all" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, f.Status)
		argIndex++
	}
	if f.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(student_id ILIKE $%d OR first_name ILIKE $%d OR last_name ILIKE $%d OR guardian_phone ILIKE $%d)",
			argIndex, argIndex, argIndex, argIndex))
		args = append(args, "%"+f.Search+"%")
		argIndex++
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	students := []models.Student{}
	if err := db.Select(&students, query, args...); err != nil {
		return nil, err
	}
	return students, nil
}

func GetStudent(db *sqlx.DB, id string) (*models.Student, error) {
	student := &models.Student{}
	err := db.Get(student, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return student, nil
}

func CreateStudent(db *sqlx.DB, s *models.Student) error {
	return db.Get(s, `INSERT INTO students
		(student_id, first_name, last_name, class, section, status, admission_date,
		 date_of_birth, gender, guardian_name, guardian_phone, guardian_relation,
		 phone, address, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING `+studentColumns,
		s.StudentID, s.FirstName, s.LastName, s.Class, s.Section, s.Status,
		s.AdmissionDate, s.DateOfBirth, s.Gender, s.GuardianName, s.GuardianPhone,
		s.GuardianRelation, s.Phone, s.Address, s.Notes, s.CreatedBy)
}

func UpdateStudent(db *sqlx.DB, s *models.Student) error {
	return db.Get(s, `UPDATE students SET
		student_id = $2, first_name = $3, last_name = $4, class = $5, section = $6,
		status = $7, admission_date = $8, date_of_birth = $9, gender = $10,
		guardian_name = $11, guardian_phone = $12, guardian_relation = $13,
		phone = $14, address = $15, notes = $16, updated_at = now()
		WHERE id = $1
		RETURNING `+studentColumns,
		s.ID, s.StudentID, s.FirstName, s.LastName, s.Class, s.Section, s.Status,
		s.AdmissionDate, s.DateOfBirth, s.Gender, s.GuardianName, s.GuardianPhone,
		s.GuardianRelation, s.Phone, s.Address, s.Notes)
}

func DeleteStudent(db *sqlx.DB, id string) error {
	res, err := db.Exec(`DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("student %s not found", id)
	}
	return nil
}

// ListActiveStudentIDs returns ids of active students in a class, for bulk
// fee generation.
func ListActiveStudentIDs(db *sqlx.DB, class string) ([]string, error) {
	ids := []string{}
	err := db.Select(&ids, `SELECT id FROM students WHERE class = $1 AND status = 'active'`, class)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ListStudentStatusRows fetches the thin snapshot the dashboard stats
// reduction consumes.
func ListStudentStatusRows(db *sqlx.DB) ([]models.Student, error) {
	students := []models.Student{}
	err := db.Select(&students, `SELECT id, student_id, first_name, last_name, class, status,
		admission_date, guardian_name, guardian_phone, created_at, updated_at FROM students`)
	if err != nil {
		return nil, err
	}
	return students, nil
}
