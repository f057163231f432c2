package classes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/itxparadoxarc-wq/educoreportal/app/models"
	"github.com/itxparadoxarc-wq/educoreportal/app/routes/auth"
)

func SetupRoutes(app *fiber.App, h *Handler, authH *auth.Handler) {
	api := app.Group("/api/classes", authH.AuthMiddleware, authH.RequireRole(models.RoleStaff))

	api.Get("/", h.ListAPI)
	api.Post("/", authH.RequireRole(models.RoleMasterAdmin), h.CreateAPI)
	api.Put("/:id", authH.RequireRole(models.RoleMasterAdmin), h.UpdateAPI)
}
