package audit

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/itxparadoxarc-wq/educoreportal/app/database"
	"github.com/itxparadoxarc-wq/educoreportal/app/models"
	"github.com/itxparadoxarc-wq/educoreportal/app/routes/auth"
)

type Handler struct {
	DB  *sqlx.DB
	Log *zap.Logger
}

func NewHandler(db *sqlx.DB, log *zap.Logger) *Handler {
	return &Handler{DB: db, Log: log}
}

// ListAPI returns the audit trail, newest first, with optional table/action
// filters and a free-text search over user email and record id.
func (h *Handler) ListAPI(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	filters := database.AuditFilters{
		TableName: c.Query("table"),
		Action:    c.Query("action"),
		Search:    c.Query("search"),
		Limit:     limit,
	}

	logs, err := database.ListAuditLogs(h.DB, filters)
	if err != nil {
		h.Log.Error("audit list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch audit logs"})
	}
	return c.JSON(fiber.Map{"logs": logs, "total": len(logs)})
}

func SetupRoutes(app *fiber.App, h *Handler, authH *auth.Handler) {
	api := app.Group("/api/audit-logs", authH.AuthMiddleware, authH.RequireRole(models.RoleMasterAdmin))

	api.Get("/", h.ListAPI)
}
