package staff

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/itxparadoxarc-wq/educoreportal/app/database"
	"github.com/itxparadoxarc-wq/educoreportal/app/models"
	"github.com/itxparadoxarc-wq/educoreportal/app/routes/auth"
	"github.com/itxparadoxarc-wq/educoreportal/app/routes/helpers"
	"github.com/itxparadoxarc-wq/educoreportal/app/services"
)

type Handler struct {
	DB       *sqlx.DB
	Registry *services.Registry
	Log      *zap.Logger
}

func NewHandler(db *sqlx.DB, registry *services.Registry, log *zap.Logger) *Handler {
	return &Handler{DB: db, Registry: registry, Log: log}
}

// ListAPI returns every account with its role assignment, pending accounts
// included so an admin can find who is waiting for approval.
func (h *Handler) ListAPI(c *fiber.Ctx) error {
	staff, err := database.ListStaff(h.DB)
	if err != nil {
		h.Log.Error("staff list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch staff"})
	}
	return c.JSON(fiber.Map{"staff": staff})
}

type createStaffRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=master_admin staff"`
}

// CreateAPI provisions a staff account directly with a role, skipping the
// self-signup approval queue. The account is created email-verified.
func (h *Handler) CreateAPI(c *fiber.Ctx) error {
	var req createStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := helpers.ValidateStruct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.Log.Error("password hash failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create account"})
	}

	user, err := database.CreateStaffUser(h.DB, req.Email, hash, req.FullName, models.Role(req.Role))
	if err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "An account with this email already exists"})
		}
		h.Log.Error("staff create failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create account"})
	}

	helpers.RecordAudit(h.DB, h.Log, c, models.AuditInsert, "user_roles", user.ID,
		nil, models.JSONMap{"email": user.Email, "role": req.Role})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user_id":   user.ID,
		"email":     user.Email,
		"full_name": user.FullName,
		"role":      req.Role,
	})
}

type roleRequest struct {
	Role string `json:"role" validate:"required,oneof=master_admin staff"`
}

// SetRoleAPI grants or changes a user's role. Live sessions of that user pick
// up the change without re-login.
func (h *Handler) SetRoleAPI(c *fiber.Ctx) error {
	userID := c.Params("id")

	var req roleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := helpers.ValidateStruct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	user, err := database.GetUserByID(h.DB, userID)
	if err != nil {
		if database.IsNoRows(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch user"})
	}

	oldRole, err := database.GetUserRole(c.Context(), h.DB, userID)
	if err != nil && !database.IsNoRows(err) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch role"})
	}

	if err := database.SetUserRole(h.DB, userID, models.Role(req.Role)); err != nil {
		h.Log.Error("role set failed", zap.Error(err), zap.String("user_id", userID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to set role"})
	}

	h.Registry.RefreshRole(userID)

	helpers.RecordAudit(h.DB, h.Log, c, models.AuditUpdate, "user_roles", userID,
		models.JSONMap{"role": string(oldRole)},
		models.JSONMap{"email": user.Email, "role": req.Role})

	return c.JSON(fiber.Map{"user_id": userID, "role": req.Role})
}

// RemoveRoleAPI revokes a user's role, dropping them back to pending. An
// admin cannot revoke their own role; that would lock everyone out one
// removal at a time.
func (h *Handler) RemoveRoleAPI(c *fiber.Ctx) error {
	userID := c.Params("id")

	if selfID, ok := c.Locals(auth.LocalUserID).(string); ok && selfID == userID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot remove your own role"})
	}

	oldRole, err := database.GetUserRole(c.Context(), h.DB, userID)
	if err != nil {
		if database.IsNoRows(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User has no role"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch role"})
	}

	if err := database.RemoveUserRole(h.DB, userID); err != nil {
		h.Log.Error("role remove failed", zap.Error(err), zap.String("user_id", userID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to remove role"})
	}

	h.Registry.RefreshRole(userID)

	helpers.RecordAudit(h.DB, h.Log, c, models.AuditDelete, "user_roles", userID,
		models.JSONMap{"role": string(oldRole)}, nil)

	return c.JSON(fiber.Map{"message": "Role removed"})
}
