package classes

import (
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

func (h *Handler) ListAPI(c *fiber.Ctx) error {
	activeOnly := c.Query("active") == "true"
	classes, err := database.ListClasses(h.DB, activeOnly)
	if err != nil {
		h.Log.Error("class list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch classes"})
	}
	return c.JSON(fiber.Map{"classes": classes})
}

type classRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

func (r *classRequest) toModel() *models.Class {
	class := &models.Class{Name: r.Name, Description: r.Description, SortOrder: r.SortOrder, IsActive: true}
	if r.IsActive != nil {
		class.IsActive = *r.IsActive
	}
	return class
}

func (h *Handler) CreateAPI(c *fiber.Ctx) error {
	var req classRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := helpers.ValidateStruct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	class := req.toModel()
	if err := database.CreateClass(h.DB, class); err != nil {
		h.Log.Error("class create failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create class"})
	}

	helpers.RecordAudit(h.DB, h.Log, c, models.AuditInsert, "classes", class.ID,
		nil, models.JSONMap{"name": class.Name})

	return c.Status(fiber.StatusCreated).JSON(class)
}

func (h *Handler) UpdateAPI(c *fiber.Ctx) error {
	var req classRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := helpers.ValidateStruct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	class := req.toModel()
	class.ID = c.Params("id")

	if err := database.UpdateClass(h.DB, class); err != nil {
		if database.IsNoRows(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
		}
		h.Log.Error("class update failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update class"})
	}

	helpers.RecordAudit(h.DB, h.Log, c, models.AuditUpdate, "classes", class.ID,
		nil, models.JSONMap{"name": class.Name, "is_active": class.IsActive})

	return c.JSON(class)
}
