package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/itxparadoxarc-wq/educoreportal/app/models"
	"github.com/itxparadoxarc-wq/educoreportal/app/services"
)

// Locals keys set by AuthMiddleware for downstream handlers.
const (
	LocalSession = "session"
	LocalUserID  = "user_id"
	LocalEmail   = "user_email"
)

// sessionStatusPath reports session state for the countdown display. Reading
// it is not user activity: a client polling it must still idle out.
const sessionStatusPath = "/api/auth/session"

func isAPIRequest(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/")
}

func tokenFromRequest(c *fiber.Ctx) string {
	if token := c.Cookies(CookieName); token != "" {
		return token
	}
	if auth := c.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func redirectToLogin(c *fiber.Ctx) error {
	// keep the requested path so login can return the user to it
	return c.Redirect("/auth/login?next=" + c.Path())
}

// AuthMiddleware resolves the request's session. A valid token whose session
// has been expired or signed out server-side is rejected: the registry, not
// the token, decides liveness within the token's lifetime. Every
// authenticated request counts as activity except reading the session status
// endpoint itself.
func (h *Handler) AuthMiddleware(c *fiber.Ctx) error {
	token := tokenFromRequest(c)
	if token == "" {
		if isAPIRequest(c) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No token found"})
		}
		return redirectToLogin(c)
	}

	claims, err := ValidateJWT(h.Cfg, token)
	if err != nil {
		if isAPIRequest(c) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		}
		return redirectToLogin(c)
	}

	sessionID, err := parseSessionID(claims)
	if err != nil {
		if isAPIRequest(c) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		}
		return redirectToLogin(c)
	}

	if c.Path() != sessionStatusPath {
		h.Registry.Touch(sessionID)
	}

	// snapshot after the touch decision so remaining time reflects it
	snap, ok := h.Registry.Get(sessionID)
	if !ok {
		if isAPIRequest(c) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Session expired"})
		}
		return redirectToLogin(c)
	}

	c.Locals(LocalSession, snap)
	c.Locals(LocalUserID, snap.UserID)
	c.Locals(LocalEmail, snap.Email)
	return c.Next()
}

// RequireRole gates a route group on an assigned role. The decision ladder
// mirrors sign-in state exactly: unresolved is "not decided yet", an absent
// role is pending approval, a mismatched role is denied. master_admin
// satisfies every requirement.
func (h *Handler) RequireRole(required models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, ok := c.Locals(LocalSession).(services.Snapshot)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No session"})
		}

		if !snap.RoleResolved {
			c.Set("Retry-After", "1")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Authorization still resolving, retry shortly",
			})
		}

		if snap.Role == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":  "pending_approval",
				"detail": "Your account is awaiting role assignment by the Master Admin.",
			})
		}

		if !snap.HasRole(required) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":  "access_denied",
				"detail": "You don't have permission to access this resource.",
			})
		}

		return c.Next()
	}
}

// SessionFromCtx returns the snapshot attached by AuthMiddleware.
func SessionFromCtx(c *fiber.Ctx) (services.Snapshot, bool) {
	snap, ok := c.Locals(LocalSession).(services.Snapshot)
	return snap, ok
}
