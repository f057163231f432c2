package reports

import (
	"testing"
	"time"

	"github.com/itxparadoxarc-wq/educoreportal/app/models"
)

func overdueFee(studentID string, status models.FeeStatus, amount, paid float64, daysAgo int, today time.Time) models.FeeWithStudent {
	return models.FeeWithStudent{
		Fee: models.Fee{
			StudentID:  studentID,
			Status:     status,
			Amount:     amount,
			PaidAmount: paid,
			DueDate:    today.AddDate(0, 0, -daysAgo),
		},
		StudentCode:  "S-" + studentID,
		StudentName:  "Student " + studentID,
		StudentClass: "5",
	}
}

func TestAggregateDefaultersSingleStudent(t *testing.T) {
	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	fees := []models.FeeWithStudent{
		overdueFee("stu1", models.FeePending, 100, 0, 10, today),
		overdueFee("stu1", models.FeeOverdue, 50, 20, 90, today),
	}

	report := AggregateDefaulters(fees, today, DefaulterPreviewLimit)
	if report.Total != 1 {
		t.Fatalf("expected 1 defaulter, got %d", report.Total)
	}
	d := report.Defaulters[0]
	if d.PendingAmount != 130 {
		t.Errorf("pending amount = %v, want 130", d.PendingAmount)
	}
	if d.DaysOverdue != 90 {
		t.Errorf("days overdue = %d, want 90", d.DaysOverdue)
	}
}

func TestAggregateDefaultersExcludesPaidAndFuture(t *testing.T) {
	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	fees := []models.FeeWithStudent{
		overdueFee("stu1", models.FeePaid, 100, 100, 30, today),
		overdueFee("stu2", models.FeePending, 100, 0, -5, today), // due in the future
		overdueFee("stu3", models.FeePending, 100, 0, 0, today),  // due today, not yet overdue
	}
	report := AggregateDefaulters(fees, today, DefaulterPreviewLimit)
	if report.Total != 0 {
		t.Fatalf("expected no defaulters, got %d", report.Total)
	}
}

func TestAggregateDefaultersSortAndCap(t *testing.T) {
	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	var fees []models.FeeWithStudent
	for i := 1; i <= 15; i++ {
		fees = append(fees, overdueFee(string(rune('a'+i)), models.FeePending, 100, 0, i, today))
	}

	report := AggregateDefaulters(fees, today, DefaulterPreviewLimit)
	if report.Total != 15 {
		t.Fatalf("expected total 15, got %d", report.Total)
	}
	if len(report.Defaulters) != DefaulterPreviewLimit {
		t.Fatalf("expected preview capped at %d, got %d", DefaulterPreviewLimit, len(report.Defaulters))
	}
	for i := 1; i < len(report.Defaulters); i++ {
		if report.Defaulters[i].DaysOverdue > report.Defaulters[i-1].DaysOverdue {
			t.Fatalf("defaulters not sorted descending by days overdue")
		}
	}
	if report.Defaulters[0].DaysOverdue != 15 {
		t.Fatalf("most overdue first: got %d days", report.Defaulters[0].DaysOverdue)
	}
}

// A fee due yesterday must count as one day overdue regardless of the offset
// between the scanned due date (midnight UTC) and the server's wall clock.
func TestAggregateDefaultersDayBoundaryAcrossZones(t *testing.T) {
	zone := time.FixedZone("UTC+14", 14*3600)
	today := time.Date(2026, 9, 1, 10, 0, 0, 0, zone) // 2026-08-31 20:00 UTC
	due := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	fees := []models.FeeWithStudent{{
		Fee: models.Fee{
			StudentID: "stu1",
			Status:    models.FeePending,
			Amount:    100,
			DueDate:   due,
		},
		StudentCode: "S-stu1",
	}}

	report := AggregateDefaulters(fees, today, DefaulterPreviewLimit)
	if report.Total != 1 {
		t.Fatalf("boundary defaulter dropped: total = %d, want 1", report.Total)
	}
	if report.Defaulters[0].DaysOverdue != 1 {
		t.Errorf("days overdue = %d, want 1", report.Defaulters[0].DaysOverdue)
	}
}

func TestAggregateDefaultersOverpaymentNotClamped(t *testing.T) {
	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	fees := []models.FeeWithStudent{
		overdueFee("stu1", models.FeePending, 100, 120, 10, today),
	}
	report := AggregateDefaulters(fees, today, DefaulterPreviewLimit)
	if report.Total != 1 {
		t.Fatalf("expected 1 defaulter, got %d", report.Total)
	}
	if report.Defaulters[0].PendingAmount != -20 {
		t.Errorf("pending amount = %v, want -20 (no clamping)", report.Defaulters[0].PendingAmount)
	}
}
