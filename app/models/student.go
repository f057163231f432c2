package models

import "time"

type Student struct {
	ID               string        `json:"id" db:"id"`
	StudentID        string        `json:"student_id" db:"student_id"`
	FirstName        string        `json:"first_name" db:"first_name"`
	LastName         string        `json:"last_name" db:"last_name"`
	Class            string        `json:"class" db:"class"`
	Section          *string       `json:"section,omitempty" db:"section"`
	Status           StudentStatus `json:"status" db:"status"`
	AdmissionDate    time.Time     `json:"admission_date" db:"admission_date"`
	DateOfBirth      *time.Time    `json:"date_of_birth,omitempty" db:"date_of_birth"`
	Gender           *string       `json:"gender,omitempty" db:"gender"`
	GuardianName     string        `json:"guardian_name" db:"guardian_name"`
	GuardianPhone    string        `json:"guardian_phone" db:"guardian_phone"`
	GuardianRelation *string       `json:"guardian_relation,omitempty" db:"guardian_relation"`
	Phone            *string       `json:"phone,omitempty" db:"phone"`
	Address          *string       `json:"address,omitempty" db:"address"`
	Notes            *string       `json:"notes,omitempty" db:"notes"`
	CreatedBy        *string       `json:"created_by,omitempty" db:"created_by"`
	CreatedAt        time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at" db:"updated_at"`
}

// FullName joins the name parts the way lists and receipts display them.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
