package reports

import (
	"testing"
	"time"

	"github.com/itxparadoxarc-wq/educoreportal/app/models"
)

func TestShapeRecentActivity(t *testing.T) {
	email := "clerk@school.test"
	ts := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)

	logs := []models.AuditLog{
		{ID: "1", TableName: "students", Action: models.AuditInsert, UserEmail: &email, Timestamp: ts},
		{ID: "2", TableName: "fees", Action: models.AuditUpdate, Timestamp: ts},
		{ID: "3", TableName: "attendance", Action: models.AuditInsert, Timestamp: ts},
		{ID: "4", TableName: "exam_marks", Action: models.AuditInsert, Timestamp: ts},
		{ID: "5", TableName: "user_roles", Action: models.AuditDelete, Timestamp: ts},
	}

	items := ShapeRecentActivity(logs)
	if len(items) != 5 {
		t.Fatalf("got %d items, want 5", len(items))
	}

	wantTypes := []string{"student_added", "fee_paid", "attendance", "exam_added", "record_changed"}
	for i, want := range wantTypes {
		if items[i].Type != want {
			t.Errorf("item %d type = %q, want %q", i, items[i].Type, want)
		}
	}

	if items[0].User == nil || *items[0].User != email {
		t.Errorf("item 0 user not carried through")
	}
	if items[1].Description != "Fee payment recorded" {
		t.Errorf("fee update description = %q", items[1].Description)
	}
	if items[0].Timestamp != ts.Format(time.RFC3339) {
		t.Errorf("timestamp = %q", items[0].Timestamp)
	}
}

func TestShapeRecentActivityEmpty(t *testing.T) {
	items := ShapeRecentActivity(nil)
	if len(items) != 0 {
		t.Fatalf("got %d items from no logs", len(items))
	}
}
