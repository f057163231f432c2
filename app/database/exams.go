package database

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/itxparadoxarc-wq/educoreportal/app/models"
)

// ExamFilters represents filtering options for exam listings.
type ExamFilters struct {
	Class        string
	AcademicYear string
}

func ListExams(db *sqlx.DB, f ExamFilters) ([]models.Exam, error) {
	query := `SELECT id, name, class, academic_year, exam_date, is_active, created_by, created_at
		FROM exams WHERE is_active = true`

	var args []interface{}
	argIndex := 1
	if f.Class != "" && f.Class != "all" {
		query += fmt.Sprintf(" AND class = $%d", argIndex)
		args = append(args, f.Class)
		argIndex++
	}
	if f.AcademicYear != "" && f.AcademicYear != "all" {
		query += fmt.Sprintf(" AND academic_year = $%d", argIndex)
		args = append(args, f.AcademicYear)
		argIndex++
	}
	query += " ORDER BY exam_date DESC"

	exams := []models.Exam{}
	if err := db.Select(&exams, query, args...); err != nil {
		return nil, err
	}
	return exams, nil
}

func CreateExam(db *sqlx.DB, exam *models.Exam) error {
	return db.Get(exam, `INSERT INTO exams (name, class, academic_year, exam_date, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, class, academic_year, exam_date, is_active, created_by, created_at`,
		exam.Name, exam.Class, exam.AcademicYear, exam.ExamDate, exam.CreatedBy)
}

func ListExamMarks(db *sqlx.DB, examID, search string) ([]models.ExamMarkWithStudent, error) {
	query := `SELECT m.id, m.exam_id, m.student_id, m.subject, m.marks_obtained, m.total_marks,
			m.grade, m.remarks, m.recorded_by, m.created_at,
			s.student_id AS student_code,
			s.first_name || ' ' || s.last_name AS student_name,
			s.class AS student_class,
			e.name AS exam_name,
			e.exam_date AS exam_date
		FROM exam_marks m
		JOIN students s ON m.student_id = s.id
		JOIN exams e ON m.exam_id = e.id`

	var conditions []string
	var args []interface{}
	argIndex := 1
	if examID != "" && examID != "all" {
		conditions = append(conditions, fmt.Sprintf("m.exam_id = $%d", argIndex))
		args = append(args, examID)
		argIndex++
	}
	if search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(s.student_id ILIKE $%d OR s.first_name ILIKE $%d OR s.last_name ILIKE $%d)",
			argIndex, argIndex, argIndex))
		args = append(args, "%"+search+"%")
		argIndex++
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY m.created_at DESC"

	marks := []models.ExamMarkWithStudent{}
	if err := db.Select(&marks, query, args...); err != nil {
		return nil, err
	}
	return marks, nil
}

// InsertExamMarks saves a batch of marks for one exam in one transaction.
func InsertExamMarks(db *sqlx.DB, marks []models.ExamMark) error {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i := range marks {
		m := &marks[i]
		if _, err := tx.Exec(`INSERT INTO exam_marks
			(exam_id, student_id, subject, marks_obtained, total_marks, grade, remarks, recorded_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			m.ExamID, m.StudentID, m.Subject, m.MarksObtained, m.TotalMarks,
			m.Grade, m.Remarks, m.RecordedBy); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListMarksForStudent fetches all marks for one student, for the profile view.
func ListMarksForStudent(db *sqlx.DB, studentID string) ([]models.ExamMarkWithStudent, error) {
	marks := []models.ExamMarkWithStudent{}
	err := db.Select(&marks, `SELECT m.id, m.exam_id, m.student_id, m.subject, m.marks_obtained,
			m.total_marks, m.grade, m.remarks, m.recorded_by, m.created_at,
			s.student_id AS student_code,
			s.first_name || ' ' || s.last_name AS student_name,
			s.class AS student_class,
			e.name AS exam_name,
			e.exam_date AS exam_date
		FROM exam_marks m
		JOIN students s ON m.student_id = s.id
		JOIN exams e ON m.exam_id = e.id
		WHERE m.student_id = $1
		ORDER BY e.exam_date DESC`, studentID)
	if err != nil {
		return nil, err
	}
	return marks, nil
}
