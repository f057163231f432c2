package models

import "time"

type Attendance struct {
	ID         string           `json:"id" db:"id"`
	StudentID  string           `json:"student_id" db:"student_id"`
	Class      string           `json:"class" db:"class"`
	Date       time.Time        `json:"date" db:"date"`
	Status     AttendanceStatus `json:"status" db:"status"`
	Notes      *string          `json:"notes,omitempty" db:"notes"`
	RecordedBy *string          `json:"recorded_by,omitempty" db:"recorded_by"`
	CreatedAt  time.Time        `json:"created_at" db:"created_at"`
}
