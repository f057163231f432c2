package academics

import (
	"github.com/gofiber/fiber/v2"

	"github.com/itxparadoxarc-wq/educoreportal/app/models"
	"github.com/itxparadoxarc-wq/educoreportal/app/routes/auth"
)

func SetupRoutes(app *fiber.App, h *Handler, authH *auth.Handler) {
	api := app.Group("/api/exams", authH.AuthMiddleware, authH.RequireRole(models.RoleStaff))

	api.Get("/", h.ListExamsAPI)
	api.Post("/", h.CreateExamAPI)
	api.Get("/:id/marks", h.ListMarksAPI)
	api.Post("/:id/marks", h.SaveMarksAPI)
}
