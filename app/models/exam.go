package models

import "time"

type Exam struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Class        string    `json:"class" db:"class"`
	AcademicYear string    `json:"academic_year" db:"academic_year"`
	ExamDate     time.Time `json:"exam_date" db:"exam_date"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedBy    *string   `json:"created_by,omitempty" db:"created_by"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type ExamMark struct {
	ID            string    `json:"id" db:"id"`
	ExamID        string    `json:"exam_id" db:"exam_id"`
	StudentID     string    `json:"student_id" db:"student_id"`
	Subject       string    `json:"subject" db:"subject"`
	MarksObtained float64   `json:"marks_obtained" db:"marks_obtained"`
	TotalMarks    float64   `json:"total_marks" db:"total_marks"`
	Grade         string    `json:"grade" db:"grade"`
	Remarks       *string   `json:"remarks,omitempty" db:"remarks"`
	RecordedBy    *string   `json:"recorded_by,omitempty" db:"recorded_by"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// ExamMarkWithStudent is a mark row joined with student and exam display fields.
type ExamMarkWithStudent struct {
	ExamMark
	StudentCode  string    `json:"student_code" db:"student_code"`
	StudentName  string    `json:"student_name" db:"student_name"`
	StudentClass string    `json:"student_class" db:"student_class"`
	ExamName     string    `json:"exam_name" db:"exam_name"`
	ExamDate     time.Time `json:"exam_date" db:"exam_date"`
}
