package reports

import (
	"time"

	"github.com/itxparadoxarc-wq/educoreportal/app/models"
)

// ComputeDashboardStats reduces student and fee snapshots into the dashboard
// counters. Empty input yields all-zero stats.
func ComputeDashboardStats(students []models.Student, fees []models.Fee, now time.Time) models.DashboardStats {
	stats := models.DashboardStats{}
	currentYear := now.Year()

	stats.TotalStudents = len(students)
	for i := range students {
		s := &students[i]
		switch s.Status {
		case models.StudentActive:
			stats.ActiveStudents++
		case models.StudentInactive:
			stats.InactiveStudents++
		case models.StudentAlumni:
			stats.AlumniStudents++
		case models.StudentLeft:
			stats.LeftStudents++
		}
		if s.AdmissionDate.Year() == currentYear {
			stats.NewEnrollmentsThisYear++
		}
	}

	pendingStudents := make(map[string]struct{})
	for i := range fees {
		f := &fees[i]
		stats.TotalFeesCollected += f.PaidAmount
		if f.Status == models.FeePending || f.Status == models.FeeOverdue {
			stats.TotalFeesPending += f.Amount - f.PaidAmount
			pendingStudents[f.StudentID] = struct{}{}
		}
	}
	stats.PendingStudentCount = len(pendingStudents)

	return stats
}

// AttendanceSummary counts statuses over attendance rows.
type AttendanceStats struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Leave   int `json:"leave"`
	Total   int `json:"total"`
}

func AttendanceSummary(records []models.Attendance) AttendanceStats {
	stats := AttendanceStats{Total: len(records)}
	for i := range records {
		switch records[i].Status {
		case models.Present:
			stats.Present++
		case models.Absent:
			stats.Absent++
		case models.Leave:
			stats.Leave++
		}
	}
	return stats
}
