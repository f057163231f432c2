package database

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/itxparadoxarc-wq/educoreportal/app/models"
)

const attendanceColumns = `id, student_id, class, date, status, notes, recorded_by, created_at`

func GetAttendanceByClassDate(db *sqlx.DB, class string, date time.Time) ([]models.Attendance, error) {
	records := []models.Attendance{}
	err := db.Select(&records, `SELECT `+attendanceColumns+`
		FROM attendance WHERE class = $1 AND date = $2`, class, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	return records, nil
}

// AttendanceEntry is one student's status in a save request.
type AttendanceEntry struct {
	StudentID string
	Status    models.AttendanceStatus
	Notes     *string
}

// SaveAttendance replaces the attendance sheet for a class on a date. The
// whole sheet is rewritten in one transaction, matching how marking works: a
// re-save is a correction, not an append.
func SaveAttendance(db *sqlx.DB, class string, date time.Time, entries []AttendanceEntry, recordedBy *string) error {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	day := date.Format("2006-01-02")
	if _, err := tx.Exec(`DELETE FROM attendance WHERE class = $1 AND date = $2`, class, day); err != nil {
		return err
	}

	for _, e := range entries {
		if _, err := tx.Exec(`INSERT INTO attendance (student_id, class, date, status, notes, recorded_by)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			e.StudentID, class, day, e.Status, e.Notes, recordedBy); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListAttendanceForMonth fetches the rows for a month ("2006-01"), optionally
// scoped to a class, for the summary reduction.
func ListAttendanceForMonth(db *sqlx.DB, class, month string) ([]models.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance
		WHERE to_char(date, 'YYYY-MM') = $1`
	args := []interface{}{month}
	if class != "" && class != "all" {
		query += ` AND class = $2`
		args = append(args, class)
	}

	records := []models.Attendance{}
	if err := db.Select(&records, query, args...); err != nil {
		return nil, err
	}
	return records, nil
}
