package staff

import (
	"github.com/gofiber/fiber/v2"

	"github.com/itxparadoxarc-wq/educoreportal/app/models"
	"github.com/itxparadoxarc-wq/educoreportal/app/routes/auth"
)

// SetupRoutes registers staff management endpoints, all admin-only.
func SetupRoutes(app *fiber.App, h *Handler, authH *auth.Handler) {
	api := app.Group("/api/staff", authH.AuthMiddleware, authH.RequireRole(models.RoleMasterAdmin))

	api.Get("/", h.ListAPI)
	api.Post("/", h.CreateAPI)
	api.Put("/:id/role", h.SetRoleAPI)
	api.Delete("/:id/role", h.RemoveRoleAPI)
}
