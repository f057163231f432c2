package fees

import (
	"github.com/gofiber/fiber/v2"

	"github.com/itxparadoxarc-wq/educoreportal/app/models"
	"github.com/itxparadoxarc-wq/educoreportal/app/routes/auth"
)

func SetupRoutes(app *fiber.App, h *Handler, authH *auth.Handler) {
	api := app.Group("/api/fees", authH.AuthMiddleware, authH.RequireRole(models.RoleStaff))

	api.Get("/", h.ListAPI)
	api.Post("/", h.CreateAPI)
	api.Post("/bulk", h.BulkCreateAPI)
	api.Get("/defaulters", h.DefaultersAPI)
	api.Post("/:id/payment", h.RecordPaymentAPI)
	api.Delete("/:id", authH.RequireRole(models.RoleMasterAdmin), h.DeleteAPI)
}
