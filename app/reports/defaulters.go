package reports

import (
	"sort"
	"time"

	"github.com/itxparadoxarc-wq/educoreportal/app/models"
)

// DefaulterReport is the capped preview plus the uncapped count.
type DefaulterReport struct {
	Defaulters []models.Defaulter `json:"defaulters"`
	Total      int                `json:"total"`
}

// DefaulterPreviewLimit caps the dashboard preview list.
const DefaulterPreviewLimit = 10

// AggregateDefaulters groups unpaid fee rows due before today by student,
// summing pending amounts and keeping the worst days-overdue per student.
// Rows due today or later, and rows already paid, do not contribute. The
// result is sorted most-overdue first and capped to limit; Total reports the
// uncapped defaulter count.
func AggregateDefaulters(fees []models.FeeWithStudent, today time.Time, limit int) DefaulterReport {
	byStudent := make(map[string]*models.Defaulter)

	for i := range fees {
		fee := &fees[i]
		if fee.Status != models.FeePending && fee.Status != models.FeeOverdue {
			continue
		}
		days := daysBetween(fee.DueDate, today)
		if days <= 0 {
			continue
		}

		pending := fee.Amount - fee.PaidAmount
		if entry, ok := byStudent[fee.StudentID]; ok {
			entry.PendingAmount += pending
			if days > entry.DaysOverdue {
				entry.DaysOverdue = days
			}
		} else {
			byStudent[fee.StudentID] = &models.Defaulter{
				StudentID:     fee.StudentID,
				StudentCode:   fee.StudentCode,
				StudentName:   fee.StudentName,
				Class:         fee.StudentClass,
				PendingAmount: pending,
				DaysOverdue:   days,
			}
		}
	}

	defaulters := make([]models.Defaulter, 0, len(byStudent))
	for _, d := range byStudent {
		defaulters = append(defaulters, *d)
	}
	sort.Slice(defaulters, func(i, j int) bool {
		if defaulters[i].DaysOverdue != defaulters[j].DaysOverdue {
			return defaulters[i].DaysOverdue > defaulters[j].DaysOverdue
		}
		return defaulters[i].StudentCode < defaulters[j].StudentCode
	})

	total := len(defaulters)
	if limit > 0 && len(defaulters) > limit {
		defaulters = defaulters[:limit]
	}
	return DefaulterReport{Defaulters: defaulters, Total: total}
}

// daysBetween is the whole number of calendar days from due to today. Both
// values are truncated to their own date first: due dates scan as midnight
// UTC while today carries wall-clock time in server local, and comparing raw
// instants undercounts a day across that offset.
func daysBetween(due, today time.Time) int {
	d := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(d).Hours() / 24)
}
