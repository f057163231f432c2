package attendance

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

// SheetAPI returns the roster for a class on a date alongside whatever
// attendance has already been marked, so the sheet can be pre-filled.
func (h *Handler) SheetAPI(c *fiber.Ctx) error {
	class := c.Query("class")
	if class == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "class is required"})
	}
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be YYYY-MM-DD"})
	}

	students, err := database.ListStudents(h.DB, database.StudentFilters{Class: class, Status: string(models.StudentActive)})
	if err != nil {
		h.Log.Error("roster fetch failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch roster"})
	}

	records, err := database.GetAttendanceByClassDate(h.DB, class, date)
	if err != nil {
		h.Log.Error("attendance fetch failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}

	return c.JSON(fiber.Map{"students": students, "records": records})
}

type attendanceEntry struct {
	StudentID string  `json:"student_id" validate:"required,uuid4"`
	Status    string  `json:"status" validate:"required,oneof=present absent leave"`
	Notes     *string `json:"notes"`
}

type saveRequest struct {
	Class   string            `json:"class" validate:"required"`
	Date    string            `json:"date" validate:"required,datetime=2006-01-02"`
	Entries []attendanceEntry `json:"entries" validate:"required,min=1,dive"`
}

// SaveAPI writes the attendance sheet for a class and date. Saving again for
// the same class and date replaces the earlier sheet.
func (h *Handler) SaveAPI(c *fiber.Ctx) error {
	var req saveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := helpers.ValidateStruct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	entries := make([]database.AttendanceEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		entries = append(entries, database.AttendanceEntry{
			StudentID: e.StudentID,
			Status:    models.AttendanceStatus(e.Status),
			Notes:     e.Notes,
		})
	}

	var recordedBy *string
	if userID, ok := c.Locals("user_id").(string); ok {
		recordedBy = &userID
	}

	if err := database.SaveAttendance(h.DB, req.Class, date, entries, recordedBy); err != nil {
		h.Log.Error("attendance save failed", zap.Error(err),
			zap.String("class", req.Class), zap.String("date", req.Date))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save attendance"})
	}

	helpers.RecordAudit(h.DB, h.Log, c, models.AuditInsert, "attendance", "",
		nil, models.JSONMap{"class": req.Class, "date": req.Date, "count": len(entries)})

	return c.JSON(fiber.Map{"message": "Attendance saved", "count": len(entries)})
}

// SummaryAPI reduces a month of attendance rows into per-status counts.
func (h *Handler) SummaryAPI(c *fiber.Ctx) error {
	month := c.Query("month")
	if _, err := time.Parse("2006-01", month); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "month must be YYYY-MM"})
	}

	records, err := database.ListAttendanceForMonth(h.DB, c.Query("class"), month)
	if err != nil {
		h.Log.Error("attendance summary fetch failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}

	return c.JSON(reports.AttendanceSummary(records))
}
