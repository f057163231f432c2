package attendance

import (
	"github.com/gofiber/fiber/v2"

	"github.com/itxparadoxarc-wq/educoreportal/app/models"
	"github.com/itxparadoxarc-wq/educoreportal/app/routes/auth"
)

func SetupRoutes(app *fiber.App, h *Handler, authH *auth.Handler) {
	api := app.Group("/api/attendance", authH.AuthMiddleware, authH.RequireRole(models.RoleStaff))

	api.Get("/", h.SheetAPI)
	api.Post("/", h.SaveAPI)
	api.Get("/summary", h.SummaryAPI)
}
