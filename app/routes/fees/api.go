package fees

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

func (h *Handler) ListAPI(c *fiber.Ctx) error {
	filters := database.FeeFilters{
		Status:      c.Query("status"),
		Description: c.Query("description"),
		Search:      c.Query("search"),
		StudentID:   c.Query("student_id"),
	}

	fees, err := database.ListFees(h.DB, filters)
	if err != nil {
		h.Log.Error("fee list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch fees"})
	}
	return c.JSON(fiber.Map{"fees": fees, "total": len(fees)})
}

type feeRequest struct {
	StudentID   string  `json:"student_id" validate:"required,uuid4"`
	Description string  `json:"description" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	DueDate     string  `json:"due_date" validate:"required,datetime=2006-01-02"`
	MonthYear   *string `json:"month_year"`
	Notes       *string `json:"notes"`
}

func (h *Handler) CreateAPI(c *fiber.Ctx) error {
	var req feeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := helpers.ValidateStruct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	dueDate, _ := time.Parse("2006-01-02", req.DueDate)
	fee := &models.Fee{
		StudentID:   req.StudentID,
		Description: req.Description,
		Amount:      req.Amount,
		Status:      models.FeePending,
		DueDate:     dueDate,
		MonthYear:   req.MonthYear,
		Notes:       req.Notes,
	}
	if userID, ok := c.Locals("user_id").(string); ok {
		fee.CreatedBy = &userID
	}

	if err := database.CreateFee(h.DB, fee); err != nil {
		h.Log.Error("fee create failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create fee"})
	}

	helpers.RecordAudit(h.DB, h.Log, c, models.AuditInsert, "fees", fee.ID,
		nil, models.JSONMap{"student_id": fee.StudentID, "description": fee.Description, "amount": fee.Amount})

	return c.Status(fiber.StatusCreated).JSON(fee)
}

type bulkFeeRequest struct {
	Class       string  `json:"class" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	DueDate     string  `json:"due_date" validate:"required,datetime=2006-01-02"`
	MonthYear   string  `json:"month_year" validate:"required"`
}

// BulkCreateAPI raises one invoice per active student of a class, e.g. the
// monthly tuition run.
func (h *Handler) BulkCreateAPI(c *fiber.Ctx) error {
	var req bulkFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := helpers.ValidateStruct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	studentIDs, err := database.ListActiveStudentIDs(h.DB, req.Class)
	if err != nil {
		h.Log.Error("student lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch students"})
	}
	if len(studentIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No active students in class"})
	}

	dueDate, _ := time.Parse("2006-01-02", req.DueDate)
	var createdBy *string
	if userID, ok := c.Locals("user_id").(string); ok {
		createdBy = &userID
	}

	count, err := database.BulkCreateFees(h.DB, studentIDs, req.Description, req.Amount, dueDate, req.MonthYear, createdBy)
	if err != nil {
		h.Log.Error("bulk fee create failed", zap.Error(err), zap.String("class", req.Class))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create fees"})
	}

	helpers.RecordAudit(h.DB, h.Log, c, models.AuditInsert, "fees", "",
		nil, models.JSONMap{"class": req.Class, "description": req.Description, "count": count})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Fees created", "count": count})
}

type paymentRequest struct {
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=cash bank_transfer card online"`
	ReceiptNumber string  `json:"receipt_number" validate:"required"`
}

func (h *Handler) RecordPaymentAPI(c *fiber.Ctx) error {
	id := c.Params("id")

	var req paymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := helpers.ValidateStruct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	before, err := database.GetFee(h.DB, id)
	if err != nil {
		if database.IsNoRows(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Fee not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch fee"})
	}

	fee, err := database.RecordPayment(h.DB, id, req.Amount, req.PaymentMethod, req.ReceiptNumber)
	if err != nil {
		h.Log.Error("payment record failed", zap.Error(err), zap.String("fee_id", id))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record payment"})
	}

	helpers.RecordAudit(h.DB, h.Log, c, models.AuditUpdate, "fees", id,
		models.JSONMap{"paid_amount": before.PaidAmount, "status": string(before.Status)},
		models.JSONMap{"paid_amount": fee.PaidAmount, "status": string(fee.Status), "receipt_number": req.ReceiptNumber})

	return c.JSON(fee)
}

func (h *Handler) DeleteAPI(c *fiber.Ctx) error {
	id := c.Params("id")

	before, err := database.GetFee(h.DB, id)
	if err != nil {
		if database.IsNoRows(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Fee not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch fee"})
	}

	if err := database.DeleteFee(h.DB, id); err != nil {
		h.Log.Error("fee delete failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete fee"})
	}

	helpers.RecordAudit(h.DB, h.Log, c, models.AuditDelete, "fees", id,
		models.JSONMap{"student_id": before.StudentID, "amount": before.Amount, "status": string(before.Status)}, nil)

	return c.JSON(fiber.Map{"message": "Fee deleted"})
}

// DefaultersAPI returns the full defaulter report: every student carrying
// fees past their due date, worst offenders first.
func (h *Handler) DefaultersAPI(c *fiber.Ctx) error {
	today := time.Now()
	rows, err := database.ListOverdueFees(h.DB, today)
	if err != nil {
		h.Log.Error("overdue fee fetch failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch defaulters"})
	}

	report := reports.AggregateDefaulters(rows, today, 0)
	return c.JSON(fiber.Map{"defaulters": report.Defaulters, "total": report.Total})
}
