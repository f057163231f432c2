package students

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/itxparadoxarc-wq/educoreportal/app/database"
	"github.com/itxparadoxarc-wq/educoreportal/app/models"
	"github.com/itxparadoxarc-wq/educoreportal/app/routes/helpers"
)

type Handler struct {
	DB  *sqlx.DB
	Log *zap.Logger
}

func NewHandler(db *sqlx.DB, log *zap.Logger) *Handler {
	return &Handler{DB: db, Log: log}
}

// ListAPI returns students with optional class/status/search filters.
func (h *Handler) ListAPI(c *fiber.Ctx) error {
	filters := database.StudentFilters{
		Class:  c.Query("class"),
		Status: c.Query("status"),
		Search: c.Query("search"),
	}

	students, err := database.ListStudents(h.DB, filters)
	if err != nil {
		h.Log.Error("student list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch students"})
	}
	return c.JSON(fiber.Map{"students": students, "total": len(students)})
}

func (h *Handler) GetAPI(c *fiber.Ctx) error {
	student, err := database.GetStudent(h.DB, c.Params("id"))
	if err != nil {
		if database.IsNoRows(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
		}
		h.Log.Error("student fetch failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch student"})
	}
	return c.JSON(student)
}

type studentRequest struct {
	StudentID        string  `json:"student_id" validate:"required"`
	FirstName        string  `json:"first_name" validate:"required"`
	LastName         string  `json:"last_name" validate:"required"`
	Class            string  `json:"class" validate:"required"`
	Section          *string `json:"section"`
	Status           string  `json:"status" validate:"omitempty,oneof=active inactive alumni left"`
	AdmissionDate    string  `json:"admission_date" validate:"omitempty,datetime=2006-01-02"`
	DateOfBirth      *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender           *string `json:"gender"`
	GuardianName     string  `json:"guardian_name" validate:"required"`
	GuardianPhone    string  `json:"guardian_phone" validate:"required"`
	GuardianRelation *string `json:"guardian_relation"`
	Phone            *string `json:"phone"`
	Address          *string `json:"address"`
	Notes            *string `json:"notes"`
}

// toModel builds a row from the request. For updates, omitted status and
// admission_date keep the existing row's values; only a create falls back to
// active/today.
func (r *studentRequest) toModel(existing *models.Student) (*models.Student, error) {
	s := &models.Student{
		StudentID:        r.StudentID,
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		Class:            r.Class,
		Section:          r.Section,
		Status:           models.StudentActive,
		AdmissionDate:    time.Now(),
		Gender:           r.Gender,
		GuardianName:     r.GuardianName,
		GuardianPhone:    r.GuardianPhone,
		GuardianRelation: r.GuardianRelation,
		Phone:            r.Phone,
		Address:          r.Address,
		Notes:            r.Notes,
	}
	if existing != nil {
		s.Status = existing.Status
		s.AdmissionDate = existing.AdmissionDate
	}
	if r.Status != "" {
		s.Status = models.StudentStatus(r.Status)
	}
	if r.AdmissionDate != "" {
		d, err := time.Parse("2006-01-02", r.AdmissionDate)
		if err != nil {
			return nil, err
		}
		s.AdmissionDate = d
	}
	if r.DateOfBirth != nil && *r.DateOfBirth != "" {
		d, err := time.Parse("2006-01-02", *r.DateOfBirth)
		if err != nil {
			return nil, err
		}
		s.DateOfBirth = &d
	}
	return s, nil
}

func (h *Handler) CreateAPI(c *fiber.Ctx) error {
	var req studentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := helpers.ValidateStruct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	student, err := req.toModel(nil)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format"})
	}
	if userID, ok := c.Locals("user_id").(string); ok {
		student.CreatedBy = &userID
	}

	if err := database.CreateStudent(h.DB, student); err != nil {
		h.Log.Error("student create failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create student"})
	}

	helpers.RecordAudit(h.DB, h.Log, c, models.AuditInsert, "students", student.ID,
		nil, models.JSONMap{"student_id": student.StudentID, "name": student.FullName(), "class": student.Class})

	return c.Status(fiber.StatusCreated).JSON(student)
}

func (h *Handler) UpdateAPI(c *fiber.Ctx) error {
	existing, err := database.GetStudent(h.DB, c.Params("id"))
	if err != nil {
		if database.IsNoRows(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch student"})
	}

	var req studentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := helpers.ValidateStruct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	student, err := req.toModel(existing)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format"})
	}
	student.ID = existing.ID

	if err := database.UpdateStudent(h.DB, student); err != nil {
		h.Log.Error("student update failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update student"})
	}

	helpers.RecordAudit(h.DB, h.Log, c, models.AuditUpdate, "students", student.ID,
		models.JSONMap{"student_id": existing.StudentID, "class": existing.Class, "status": string(existing.Status)},
		models.JSONMap{"student_id": student.StudentID, "class": student.Class, "status": string(student.Status)})

	return c.JSON(student)
}

func (h *Handler) DeleteAPI(c *fiber.Ctx) error {
	id := c.Params("id")
	existing, err := database.GetStudent(h.DB, id)
	if err != nil {
		if database.IsNoRows(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch student"})
	}

	if err := database.DeleteStudent(h.DB, id); err != nil {
		h.Log.Error("student delete failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete student"})
	}

	helpers.RecordAudit(h.DB, h.Log, c, models.AuditDelete, "students", id,
		models.JSONMap{"student_id": existing.StudentID, "name": existing.FullName()}, nil)

	return c.JSON(fiber.Map{"message": "Student deleted"})
}

// MarksAPI returns all exam marks for one student (profile view).
func (h *Handler) MarksAPI(c *fiber.Ctx) error {
	marks, err := database.ListMarksForStudent(h.DB, c.Params("id"))
	if err != nil {
		h.Log.Error("student marks fetch failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch marks"})
	}
	return c.JSON(fiber.Map{"marks": marks})
}
