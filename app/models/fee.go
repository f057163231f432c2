package models

import "time"

// Fee represents a charge raised against a single student.
type Fee struct {
	ID            string     `json:"id" db:"id"`
	StudentID     string     `json:"student_id" db:"student_id"`
	Description   string     `json:"description" db:"description"`
	Amount        float64    `json:"amount" db:"amount"`
	PaidAmount    float64    `json:"paid_amount" db:"paid_amount"`
	Status        FeeStatus  `json:"status" db:"status"`
	DueDate       time.Time  `json:"due_date" db:"due_date"`
	MonthYear     *string    `json:"month_year,omitempty" db:"month_year"`
	PaymentMethod *string    `json:"payment_method,omitempty" db:"payment_method"`
	PaidDate      *time.Time `json:"paid_date,omitempty" db:"paid_date"`
	ReceiptNumber *string    `json:"receipt_number,omitempty" db:"receipt_number"`
	Notes         *string    `json:"notes,omitempty" db:"notes"`
	CreatedBy     *string    `json:"created_by,omitempty" db:"created_by"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// PendingAmount is the outstanding balance. Not clamped at zero: an
// overpayment surfaces as negative rather than being silently hidden.
func (f *Fee) PendingAmount() float64 {
	return f.Amount - f.PaidAmount
}

// FeeWithStudent is a fee row joined with display fields of its student.
type FeeWithStudent struct {
	Fee
	StudentCode    string  `json:"student_code" db:"student_code"`
	StudentName    string  `json:"student_name" db:"student_name"`
	StudentClass   string  `json:"student_class" db:"student_class"`
	StudentSection *string `json:"student_section,omitempty" db:"student_section"`
}
