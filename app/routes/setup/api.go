package setup

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/itxparadoxarc-wq/educoreportal/app/database"
	"github.com/itxparadoxarc-wq/educoreportal/app/models"
	"github.com/itxparadoxarc-wq/educoreportal/app/routes/auth"
	"github.com/itxparadoxarc-wq/educoreportal/app/routes/helpers"
)

// Handler owns the one-time first-run flow. Both endpoints are
// unauthenticated: an empty system has no admin yet to gate on.
type Handler struct {
	DB  *sqlx.DB
	Log *zap.Logger
}

func NewHandler(db *sqlx.DB, log *zap.Logger) *Handler {
	return &Handler{DB: db, Log: log}
}

func SetupRoutes(app *fiber.App, h *Handler) {
	app.Get("/api/setup", h.StatusAPI)
	app.Post("/api/setup", h.BootstrapAPI)
}

// StatusAPI reports whether a master admin exists. A failed check reports
// initialized=true: an ambiguous state must never expose the bootstrap path.
func (h *Handler) StatusAPI(c *fiber.Ctx) error {
	initialized, err := database.IsSystemInitialized(h.DB)
	if err != nil {
		h.Log.Error("initialization check failed, reporting initialized", zap.Error(err))
		return c.JSON(fiber.Map{"initialized": true})
	}
	return c.JSON(fiber.Map{"initialized": initialized})
}

// BootstrapAPI creates the first master admin. One-shot enforcement lives in
// the database transaction, not in client state: a second call gets 409 no
// matter what the caller's UI believed.
func (h *Handler) BootstrapAPI(c *fiber.Ctx) error {
	type BootstrapRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		FullName string `json:"full_name" validate:"required"`
	}

	var req BootstrapRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := helpers.ValidateStruct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.Log.Error("password hash failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process password"})
	}

	user, err := database.BootstrapMasterAdmin(h.DB, req.Email, hash, req.FullName)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrAlreadyInitialized):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "System already initialized"})
		case errors.Is(err, database.ErrDuplicateEmail):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already registered"})
		default:
			h.Log.Error("bootstrap failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Bootstrap failed"})
		}
	}

	helpers.RecordAudit(h.DB, h.Log, c, models.AuditInsert, "user_roles", user.ID,
		nil, models.JSONMap{"user_id": user.ID, "role": string(models.RoleMasterAdmin), "bootstrap": true})

	h.Log.Info("system initialized", zap.String("admin_email", user.Email))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Master admin created. Sign in to continue.",
		"user": fiber.Map{
			"id":        user.ID,
			"email":     user.Email,
			"full_name": user.FullName,
		},
	})
}
