package dashboard

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/itxparadoxarc-wq/educoreportal/app/database"
	"github.com/itxparadoxarc-wq/educoreportal/app/models"
	"github.com/itxparadoxarc-wq/educoreportal/app/reports"
	"github.com/itxparadoxarc-wq/educoreportal/app/routes/auth"
)

type Handler struct {
	DB  *sqlx.DB
	Log *zap.Logger
}

func NewHandler(db *sqlx.DB, log *zap.Logger) *Handler {
	return &Handler{DB: db, Log: log}
}

// StatsAPI reduces the student roll and fee book into the headline numbers.
func (h *Handler) StatsAPI(c *fiber.Ctx) error {
	students, err := database.ListStudentStatusRows(h.DB)
	if err != nil {
		h.Log.Error("student rows fetch failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch stats"})
	}

	fees, err := database.ListFeeRows(h.DB)
	if err != nil {
		h.Log.Error("fee rows fetch failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch stats"})
	}

	return c.JSON(reports.ComputeDashboardStats(students, fees, time.Now()))
}

// DefaultersAPI returns the dashboard preview: the ten most overdue
// defaulters plus the uncapped total.
func (h *Handler) DefaultersAPI(c *fiber.Ctx) error {
	today := time.Now()
	rows, err := database.ListOverdueFees(h.DB, today)
	if err != nil {
		h.Log.Error("overdue fee fetch failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch defaulters"})
	}

	report := reports.AggregateDefaulters(rows, today, reports.DefaulterPreviewLimit)
	return c.JSON(fiber.Map{"defaulters": report.Defaulters, "total": report.Total})
}

// ActivityAPI shapes the latest audit rows into the recent-activity feed.
func (h *Handler) ActivityAPI(c *fiber.Ctx) error {
	logs, err := database.ListRecentAuditLogs(h.DB, 10)
	if err != nil {
		h.Log.Error("recent audit fetch failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch activity"})
	}

	return c.JSON(fiber.Map{"activity": reports.ShapeRecentActivity(logs)})
}

func SetupRoutes(app *fiber.App, h *Handler, authH *auth.Handler) {
	api := app.Group("/api/dashboard", authH.AuthMiddleware, authH.RequireRole(models.RoleStaff))

	api.Get("/stats", h.StatsAPI)
	api.Get("/defaulters", h.DefaultersAPI)
	api.Get("/activity", h.ActivityAPI)
}
