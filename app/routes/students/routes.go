package students

import (
	"github.com/gofiber/fiber/v2"

	"github.com/itxparadoxarc-wq/educoreportal/app/models"
	"github.com/itxparadoxarc-wq/educoreportal/app/routes/auth"
)

// SetupRoutes registers student record endpoints. All routes require an
// authenticated staff session; deleting records is reserved for admins.
func SetupRoutes(app *fiber.App, h *Handler, authH *auth.Handler) {
	api := app.Group("/api/students", authH.AuthMiddleware, authH.RequireRole(models.RoleStaff))

	api.Get("/", h.ListAPI)
	api.Post("/", h.CreateAPI)
	api.Get("/:id", h.GetAPI)
	api.Put("/:id", h.UpdateAPI)
	api.Get("/:id/marks", h.MarksAPI)
	api.Delete("/:id", authH.RequireRole(models.RoleMasterAdmin), h.DeleteAPI)
}
