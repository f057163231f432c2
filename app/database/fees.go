package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/itxparadoxarc-wq/educoreportal/app/models"
)

// FeeFilters represents filtering options for fee listings.
type FeeFilters struct {
	Status      string
	Description string
	Search      string
	StudentID   string
}

const feeColumns = `f.id, f.student_id, f.description, f.amount, f.paid_amount, f.status,
	f.due_date, f.month_year, f.payment_method, f.paid_date, f.receipt_number,
	f.notes, f.created_by, f.created_at, f.updated_at`

const feeStudentColumns = feeColumns + `,
	s.student_id AS student_code,
	s.first_name || ' ' || s.last_name AS student_name,
	s.class AS student_class,
	s.section AS student_section`

func ListFees(db *sqlx.DB, f FeeFilters) ([]models.FeeWithStudent, error) {
	query := `SELECT ` + feeStudentColumns + `
		FROM fees f
		JOIN students s ON f.student_id = s.id`

	var conditions []string
	var args []interface{}
	argIndex := 1

	if f.Status != "" && f.Status != "all" {
		conditions = append(conditions, fmt.Sprintf("f.status = $%d", argIndex))
		args = append(args, f.Status)
		argIndex++
	}
	if f.Description != "" && f.Description != "all" {
		conditions = append(conditions, fmt.Sprintf("f.description = $%d", argIndex))
		args = append(args, f.Description)
		argIndex++
	}
	if f.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("f.student_id = $%d", argIndex))
		args = append(args, f.StudentID)
		argIndex++
	}
	if f.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(s.student_id ILIKE $%d OR s.first_name ILIKE $%d OR s.last_name ILIKE $%d OR f.receipt_number ILIKE $%d)",
			argIndex, argIndex, argIndex, argIndex))
		args = append(args, "%"+f.Search+"%")
		argIndex++
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY f.created_at DESC"

	fees := []models.FeeWithStudent{}
	if err := db.Select(&fees, query, args...); err != nil {
		return nil, err
	}
	return fees, nil
}

func GetFee(db *sqlx.DB, id string) (*models.Fee, error) {
	fee := &models.Fee{}
	err := db.Get(fee, `SELECT `+strings.ReplaceAll(feeColumns, "f.", "")+` FROM fees WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return fee, nil
}

func CreateFee(db *sqlx.DB, fee *models.Fee) error {
	return db.Get(fee, `INSERT INTO fees
		(student_id, description, amount, paid_amount, status, due_date, month_year, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+strings.ReplaceAll(feeColumns, "f.", ""),
		fee.StudentID, fee.Description, fee.Amount, fee.PaidAmount, fee.Status,
		fee.DueDate, fee.MonthYear, fee.Notes, fee.CreatedBy)
}

// BulkCreateFees raises the same invoice for every given student.
func BulkCreateFees(db *sqlx.DB, studentIDs []string, description string, amount float64, dueDate time.Time, monthYear string, createdBy *string) (int, error) {
	tx, err := db.Beginx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	for _, id := range studentIDs {
		if _, err := tx.Exec(`INSERT INTO fees (student_id, description, amount, status, due_date, month_year, created_by)
			VALUES ($1, $2, $3, 'pending', $4, $5, $6)`,
			id, description, amount, dueDate, monthYear, createdBy); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(studentIDs), nil
}

// RecordPayment adds a payment against a fee. Status flips to paid once the
// cumulative paid amount covers the invoice; partial payments stay pending.
func RecordPayment(db *sqlx.DB, id string, amount float64, method string, receiptNumber string) (*models.Fee, error) {
	tx, err := db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	fee := &models.Fee{}
	err = tx.Get(fee, `SELECT `+strings.ReplaceAll(feeColumns, "f.", "")+` FROM fees WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		return nil, err
	}

	newPaid := fee.PaidAmount + amount
	newStatus := models.FeePending
	var paidDate interface{}
	if newPaid >= fee.Amount {
		newStatus = models.FeePaid
		paidDate = time.Now()
	}

	err = tx.Get(fee, `UPDATE fees SET paid_amount = $2, status = $3, payment_method = $4,
		paid_date = $5, receipt_number = $6, updated_at = now()
		WHERE id = $1
		RETURNING `+strings.ReplaceAll(feeColumns, "f.", ""),
		id, newPaid, newStatus, method, paidDate, receiptNumber)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return fee, nil
}

func DeleteFee(db *sqlx.DB, id string) error {
	res, err := db.Exec(`DELETE FROM fees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("fee %s not found", id)
	}
	return nil
}

// ListOverdueFees fetches the unpaid rows due before today, joined with
// student info, for the defaulter aggregation.
func ListOverdueFees(db *sqlx.DB, today time.Time) ([]models.FeeWithStudent, error) {
	boundary := today.Format("2006-01-02")
	fees := []models.FeeWithStudent{}
	err := db.Select(&fees, `SELECT `+feeStudentColumns+`
		FROM fees f
		JOIN students s ON f.student_id = s.id
		WHERE f.status IN ('pending', 'overdue') AND f.due_date < $1`, boundary)
	if err != nil {
		return nil, err
	}
	return fees, nil
}

// ListFeeRows fetches the thin snapshot the dashboard stats reduction
// consumes.
func ListFeeRows(db *sqlx.DB) ([]models.Fee, error) {
	fees := []models.Fee{}
	err := db.Select(&fees, `SELECT id, student_id, description, amount, paid_amount, status,
		due_date, created_at, updated_at FROM fees`)
	if err != nil {
		return nil, err
	}
	return fees, nil
}
