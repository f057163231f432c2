package academics

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/itxparadoxarc-wq/educoreportal/app/database"
	"github.com/itxparadoxarc-wq/educoreportal/app/models"
	"github.com/itxparadoxarc-wq/educoreportal/app/reports"
	"github.com/itxparadoxarc-wq/educoreportal/app/routes/helpers"
)

type Handler struct {
	DB  *sqlx.DB
	Log *zap.Logger
}

func NewHandler(db *sqlx.DB, log *zap.Logger) *Handler {
	return &Handler{DB: db, Log: log}
}

func (h *Handler) ListExamsAPI(c *fiber.Ctx) error {
	filters := database.ExamFilters{
		Class:        c.Query("class"),
		AcademicYear: c.Query("academic_year"),
	}

	exams, err := database.ListExams(h.DB, filters)
	if err != nil {
		h.Log.Error("exam list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch exams"})
	}
	return c.JSON(fiber.Map{"exams": exams})
}

type examRequest struct {
	Name         string `json:"name" validate:"required"`
	Class        string `json:"class" validate:"required"`
	AcademicYear string `json:"academic_year" validate:"required"`
	ExamDate     string `json:"exam_date" validate:"required,datetime=2006-01-02"`
}

func (h *Handler) CreateExamAPI(c *fiber.Ctx) error {
	var req examRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := helpers.ValidateStruct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	examDate, _ := time.Parse("2006-01-02", req.ExamDate)
	exam := &models.Exam{
		Name:         req.Name,
		Class:        req.Class,
		AcademicYear: req.AcademicYear,
		ExamDate:     examDate,
	}
	if userID, ok := c.Locals("user_id").(string); ok {
		exam.CreatedBy = &userID
	}

	if err := database.CreateExam(h.DB, exam); err != nil {
		h.Log.Error("exam create failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create exam"})
	}

	helpers.RecordAudit(h.DB, h.Log, c, models.AuditInsert, "exams", exam.ID,
		nil, models.JSONMap{"name": exam.Name, "class": exam.Class, "academic_year": exam.AcademicYear})

	return c.Status(fiber.StatusCreated).JSON(exam)
}

func (h *Handler) ListMarksAPI(c *fiber.Ctx) error {
	marks, err := database.ListExamMarks(h.DB, c.Params("id"), c.Query("search"))
	if err != nil {
		h.Log.Error("mark list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch marks"})
	}
	return c.JSON(fiber.Map{"marks": marks})
}

type markEntry struct {
	StudentID     string  `json:"student_id" validate:"required,uuid4"`
	Subject       string  `json:"subject" validate:"required"`
	MarksObtained float64 `json:"marks_obtained" validate:"min=0"`
	TotalMarks    float64 `json:"total_marks" validate:"min=0"`
	Grade         string  `json:"grade"`
	Remarks       *string `json:"remarks"`
}

type marksRequest struct {
	Marks []markEntry `json:"marks" validate:"required,min=1,dive"`
}

// SaveMarksAPI records a batch of marks for an exam. A grade left blank is
// derived from the percentage bands.
func (h *Handler) SaveMarksAPI(c *fiber.Ctx) error {
	examID := c.Params("id")

	var req marksRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := helpers.ValidateStruct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	var recordedBy *string
	if userID, ok := c.Locals("user_id").(string); ok {
		recordedBy = &userID
	}

	marks := make([]models.ExamMark, 0, len(req.Marks))
	for _, m := range req.Marks {
		if m.MarksObtained > m.TotalMarks {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Marks obtained cannot exceed total marks"})
		}
		grade := m.Grade
		if grade == "" {
			grade = reports.CalculateGrade(m.MarksObtained, m.TotalMarks)
		}
		marks = append(marks, models.ExamMark{
			ExamID:        examID,
			StudentID:     m.StudentID,
			Subject:       m.Subject,
			MarksObtained: m.MarksObtained,
			TotalMarks:    m.TotalMarks,
			Grade:         grade,
			Remarks:       m.Remarks,
			RecordedBy:    recordedBy,
		})
	}

	if err := database.InsertExamMarks(h.DB, marks); err != nil {
		h.Log.Error("mark save failed", zap.Error(err), zap.String("exam_id", examID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save marks"})
	}

	helpers.RecordAudit(h.DB, h.Log, c, models.AuditInsert, "exam_marks", examID,
		nil, models.JSONMap{"exam_id": examID, "count": len(marks)})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Marks saved", "count": len(marks)})
}
