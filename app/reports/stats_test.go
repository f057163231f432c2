package reports

import (
	"testing"
	"time"

	"github.com/itxparadoxarc-wq/educoreportal/app/models"
)

func TestComputeDashboardStatsEmpty(t *testing.T) {
	stats := ComputeDashboardStats(nil, nil, time.Now())
	if stats != (models.DashboardStats{}) {
		t.Fatalf("expected zero stats on empty input, got %+v", stats)
	}
}

func TestComputeDashboardStats(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	students := []models.Student{
		{ID: "1", Status: models.StudentActive, AdmissionDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "2", Status: models.StudentActive, AdmissionDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "3", Status: models.StudentInactive, AdmissionDate: time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "4", Status: models.StudentAlumni, AdmissionDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "5", Status: models.StudentLeft, AdmissionDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)},
	}
	fees := []models.Fee{
		{StudentID: "1", Status: models.FeePending, Amount: 100, PaidAmount: 30},
		{StudentID: "1", Status: models.FeeOverdue, Amount: 50, PaidAmount: 0},
		{StudentID: "2", Status: models.FeePaid, Amount: 200, PaidAmount: 200},
	}

	stats := ComputeDashboardStats(students, fees, now)
	if stats.TotalStudents != 5 || stats.ActiveStudents != 2 || stats.InactiveStudents != 1 ||
		stats.AlumniStudents != 1 || stats.LeftStudents != 1 {
		t.Fatalf("status counts wrong: %+v", stats)
	}
	if stats.NewEnrollmentsThisYear != 2 {
		t.Errorf("new enrollments = %d, want 2", stats.NewEnrollmentsThisYear)
	}
	if stats.TotalFeesCollected != 230 {
		t.Errorf("collected = %v, want 230", stats.TotalFeesCollected)
	}
	if stats.TotalFeesPending != 120 {
		t.Errorf("pending = %v, want 120", stats.TotalFeesPending)
	}
	if stats.PendingStudentCount != 1 {
		t.Errorf("pending students = %d, want 1", stats.PendingStudentCount)
	}
}

func TestAttendanceSummary(t *testing.T) {
	records := []models.Attendance{
		{Status: models.Present},
		{Status: models.Present},
		{Status: models.Absent},
		{Status: models.Leave},
	}
	stats := AttendanceSummary(records)
	if stats.Present != 2 || stats.Absent != 1 || stats.Leave != 1 || stats.Total != 4 {
		t.Fatalf("unexpected summary: %+v", stats)
	}

	empty := AttendanceSummary(nil)
	if empty != (AttendanceStats{}) {
		t.Fatalf("expected zero summary on empty input, got %+v", empty)
	}
}
