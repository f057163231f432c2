package models

// DashboardStats is the reduction of student and fee rows shown on the
// dashboard. All fields are zero on empty input.
type DashboardStats struct {
	TotalStudents          int     `json:"total_students"`
	ActiveStudents         int     `json:"active_students"`
	InactiveStudents       int     `json:"inactive_students"`
	AlumniStudents         int     `json:"alumni_students"`
	LeftStudents           int     `json:"left_students"`
	NewEnrollmentsThisYear int     `json:"new_enrollments_this_year"`
	TotalFeesCollected     float64 `json:"total_fees_collected"`
	TotalFeesPending       float64 `json:"total_fees_pending"`
	PendingStudentCount    int     `json:"pending_student_count"`
}

// Defaulter is one student's aggregated overdue position. Derived, never
// persisted.
type Defaulter struct {
	StudentID     string  `json:"student_id"`
	StudentCode   string  `json:"student_code"`
	StudentName   string  `json:"student_name"`
	Class         string  `json:"class"`
	PendingAmount float64 `json:"pending_amount"`
	DaysOverdue   int     `json:"days_overdue"`
}

// RecentActivityItem is an audit row shaped for the dashboard feed.
type RecentActivityItem struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Timestamp   string  `json:"timestamp"`
	User        *string `json:"user,omitempty"`
}
