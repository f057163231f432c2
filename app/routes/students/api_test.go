package students

import (
	"testing"
	"time"

	"github.com/itxparadoxarc-wq/educoreportal/app/models"
)

func minimalRequest() studentRequest {
	return studentRequest{
		StudentID:     "S-001",
		FirstName:     "Amina",
		LastName:      "Kato",
		Class:         "P7",
		GuardianName:  "J. Kato",
		GuardianPhone: "0700123456",
	}
}

func TestToModelCreateDefaults(t *testing.T) {
	req := minimalRequest()
	s, err := req.toModel(nil)
	if err != nil {
		t.Fatalf("toModel: %v", err)
	}
	if s.Status != models.StudentActive {
		t.Errorf("status = %q, want active on create", s.Status)
	}
	if time.Since(s.AdmissionDate) > time.Minute {
		t.Errorf("admission date should default to today, got %s", s.AdmissionDate)
	}
}

func TestToModelUpdateKeepsExistingStatusAndAdmission(t *testing.T) {
	admitted := time.Date(2019, 2, 4, 0, 0, 0, 0, time.UTC)
	existing := &models.Student{Status: models.StudentAlumni, AdmissionDate: admitted}

	// update request omitting status and admission_date
	req := minimalRequest()
	s, err := req.toModel(existing)
	if err != nil {
		t.Fatalf("toModel: %v", err)
	}
	if s.Status != models.StudentAlumni {
		t.Errorf("status = %q, want alumni preserved from the existing row", s.Status)
	}
	if !s.AdmissionDate.Equal(admitted) {
		t.Errorf("admission date = %s, want %s preserved", s.AdmissionDate, admitted)
	}
}

func TestToModelUpdateExplicitValuesWin(t *testing.T) {
	existing := &models.Student{
		Status:        models.StudentAlumni,
		AdmissionDate: time.Date(2019, 2, 4, 0, 0, 0, 0, time.UTC),
	}

	req := minimalRequest()
	req.Status = "left"
	req.AdmissionDate = "2020-06-15"
	s, err := req.toModel(existing)
	if err != nil {
		t.Fatalf("toModel: %v", err)
	}
	if s.Status != models.StudentLeft {
		t.Errorf("status = %q, want left", s.Status)
	}
	want := time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC)
	if !s.AdmissionDate.Equal(want) {
		t.Errorf("admission date = %s, want %s", s.AdmissionDate, want)
	}
}

func TestToModelRejectsBadDate(t *testing.T) {
	req := minimalRequest()
	req.AdmissionDate = "15/06/2020"
	if _, err := req.toModel(nil); err == nil {
		t.Fatal("expected error for malformed admission date")
	}
}
