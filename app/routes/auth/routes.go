package auth

import (
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes registers the auth surface. Everything under /api/auth except
// the session endpoint is public: sign-in, sign-up and the resend flow must
// work for callers with no session at all.
func SetupRoutes(app *fiber.App, h *Handler) {
	group := app.Group("/api/auth")

	group.Post("/login", h.LoginAPI)
	group.Post("/signup", h.SignupAPI)
	group.Post("/logout", h.LogoutAPI)
	group.Post("/resend-verification", h.ResendVerificationAPI)

	group.Get("/session", h.AuthMiddleware, h.SessionAPI)
}
