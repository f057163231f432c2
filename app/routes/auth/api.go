package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/itxparadoxarc-wq/educoreportal/app/config"
	"github.com/itxparadoxarc-wq/educoreportal/app/database"
	"github.com/itxparadoxarc-wq/educoreportal/app/routes/helpers"
	"github.com/itxparadoxarc-wq/educoreportal/app/services"
)

// Handler carries the dependencies for the auth surface. Constructed once in
// main and shared with the middleware.
type Handler struct {
	DB       *sqlx.DB
	Cfg      *config.Config
	Registry *services.Registry
	Mailer   services.EmailService
	Log      *zap.Logger
}

func NewHandler(db *sqlx.DB, cfg *config.Config, registry *services.Registry, mailer services.EmailService, log *zap.Logger) *Handler {
	return &Handler{DB: db, Cfg: cfg, Registry: registry, Mailer: mailer, Log: log}
}

func (h *Handler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  time.Now().Add(h.Cfg.JWTTTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

func (h *Handler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
}

// LoginAPI verifies credentials and opens a session. Expected auth failures
// come back as typed 4xx JSON, never as a crash or a 500.
func (h *Handler) LoginAPI(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := helpers.ValidateStruct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	user, err := database.GetUserByEmail(h.DB, req.Email)
	if err != nil {
		if database.IsNoRows(err) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		h.Log.Error("login lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	if !CheckPasswordHash(req.Password, user.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}
	if !user.EmailVerified {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Email not verified"})
	}

	snap := h.Registry.Create(user.ID, user.Email)

	token, err := GenerateJWT(h.Cfg, snap.ID, user.ID, user.Email)
	if err != nil {
		h.Registry.Delete(snap.ID)
		h.Log.Error("token generation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate token"})
	}

	h.setSessionCookie(c, token)
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user": fiber.Map{
			"id":        user.ID,
			"email":     user.Email,
			"full_name": user.FullName,
		},
	})
}

// SignupAPI registers a new account. No role is ever assigned here; the
// account stays pending until a master admin grants one.
func (h *Handler) SignupAPI(c *fiber.Ctx) error {
	type SignupRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		FullName string `json:"full_name" validate:"required"`
	}

	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := helpers.ValidateStruct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		h.Log.Error("password hash failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process password"})
	}

	user, err := database.CreateUser(h.DB, req.Email, hash, req.FullName)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already registered"})
		}
		h.Log.Error("signup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create account"})
	}

	if err := h.Mailer.Send(services.EmailMessage{
		To:      user.Email,
		ToName:  user.FullName,
		Subject: "Verify your email",
		Body:    "Welcome to " + h.Cfg.AppName + ". Please verify your email address to activate your account.",
	}); err != nil {
		h.Log.Warn("verification mail failed", zap.String("email", user.Email), zap.Error(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Account created. Access requires role assignment by the Master Admin.",
		"user": fiber.Map{
			"id":        user.ID,
			"email":     user.Email,
			"full_name": user.FullName,
		},
	})
}

// LogoutAPI drops the registry session and expires the cookie.
func (h *Handler) LogoutAPI(c *fiber.Ctx) error {
	if token := tokenFromRequest(c); token != "" {
		if claims, err := ValidateJWT(h.Cfg, token); err == nil {
			if sessionID, err := parseSessionID(claims); err == nil {
				h.Registry.Delete(sessionID)
			}
		}
	}
	h.clearSessionCookie(c)
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// SessionAPI reports the caller's session state: identity, role (with the
// loading/pending distinction), remaining idle time and the warning flag for
// the countdown display.
func (h *Handler) SessionAPI(c *fiber.Ctx) error {
	snap, ok := SessionFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No session"})
	}

	var role interface{}
	if snap.Role != "" {
		role = snap.Role
	}
	return c.JSON(fiber.Map{
		"user_id":           snap.UserID,
		"email":             snap.Email,
		"role":              role,
		"role_resolved":     snap.RoleResolved,
		"is_master_admin":   snap.Role == "master_admin",
		"issued_at":         snap.IssuedAt,
		"last_activity":     snap.LastActivity,
		"remaining_seconds": int(snap.Remaining.Seconds()),
		"warning":           snap.Warning,
	})
}

// ResendVerificationAPI re-sends the verification notice for an unverified
// account. Replies identically whether or not the email exists.
func (h *Handler) ResendVerificationAPI(c *fiber.Ctx) error {
	type ResendRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	var req ResendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := helpers.ValidateStruct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	user, err := database.GetUserByEmail(h.DB, req.Email)
	if err == nil && !user.EmailVerified {
		if sendErr := h.Mailer.Send(services.EmailMessage{
			To:      user.Email,
			ToName:  user.FullName,
			Subject: "Verify your email",
			Body:    "Please verify your email address to activate your " + h.Cfg.AppName + " account.",
		}); sendErr != nil {
			h.Log.Warn("verification mail failed", zap.String("email", user.Email), zap.Error(sendErr))
		}
	} else if err != nil && !database.IsNoRows(err) {
		h.Log.Error("resend lookup failed", zap.Error(err))
	}

	return c.JSON(fiber.Map{"message": "If the account exists, a verification email has been sent."})
}
