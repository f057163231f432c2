package auth

import (
	"context"
	"database/sql"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/itxparadoxarc-wq/educoreportal/app/config"
	"github.com/itxparadoxarc-wq/educoreportal/app/models"
	"github.com/itxparadoxarc-wq/educoreportal/app/services"
)

// stubRoles answers role lookups from a map; a role of "" blocks the fetch
// until release is closed.
type stubRoles struct {
	mu      sync.Mutex
	roles   map[string]models.Role
	release chan struct{}
}

func (s *stubRoles) GetRole(ctx context.Context, userID string) (models.Role, error) {
	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	role, ok := s.roles[userID]
	if !ok {
		return "", sql.ErrNoRows
	}
	return role, nil
}

type guardFixture struct {
	app      *fiber.App
	cfg      *config.Config
	registry *services.Registry
}

func newGuardFixture(t *testing.T, store services.RoleStore) *guardFixture {
	t.Helper()
	cfg := testConfig()
	registry := services.NewRegistry(store, 30*time.Minute, 5*time.Minute, zap.NewNop())
	h := NewHandler(nil, cfg, registry, nil, zap.NewNop())

	app := fiber.New()
	ok := func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) }
	app.Get("/api/records", h.AuthMiddleware, h.RequireRole(models.RoleStaff), ok)
	app.Get("/api/admin", h.AuthMiddleware, h.RequireRole(models.RoleMasterAdmin), ok)
	app.Get("/records", h.AuthMiddleware, h.RequireRole(models.RoleStaff), ok)

	return &guardFixture{app: app, cfg: cfg, registry: registry}
}

// signIn creates a registry session and returns a bearer token bound to it.
func (f *guardFixture) signIn(t *testing.T, userID string) (services.Snapshot, string) {
	t.Helper()
	snap := f.registry.Create(userID, userID+"@school.test")
	token, err := GenerateJWT(f.cfg, snap.ID, userID, userID+"@school.test")
	require.NoError(t, err)
	return snap, token
}

func request(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func waitForRole(t *testing.T, r *services.Registry, id uuid.UUID) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if snap, ok := r.Get(id); ok && snap.RoleResolved {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("role never resolved")
}

func TestGuardRejectsMissingToken(t *testing.T) {
	f := newGuardFixture(t, &stubRoles{roles: map[string]models.Role{}})
	assert.Equal(t, fiber.StatusUnauthorized, request(t, f.app, "/api/records", ""))
}

func TestGuardRejectsGarbageToken(t *testing.T) {
	f := newGuardFixture(t, &stubRoles{roles: map[string]models.Role{}})
	assert.Equal(t, fiber.StatusUnauthorized, request(t, f.app, "/api/records", "bogus"))
}

func TestGuardRejectsSignedOutSession(t *testing.T) {
	f := newGuardFixture(t, &stubRoles{roles: map[string]models.Role{"u1": models.RoleStaff}})
	snap, token := f.signIn(t, "u1")
	f.registry.Delete(snap.ID)

	// the token is still cryptographically valid; the registry decides
	assert.Equal(t, fiber.StatusUnauthorized, request(t, f.app, "/api/records", token))
}

func TestGuardRedirectsBrowserRequests(t *testing.T) {
	f := newGuardFixture(t, &stubRoles{roles: map[string]models.Role{}})

	req := httptest.NewRequest("GET", "/records", nil)
	resp, err := f.app.Test(req, 2000)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "/auth/login?next=/records")
}

func TestGuardAllowsStaff(t *testing.T) {
	f := newGuardFixture(t, &stubRoles{roles: map[string]models.Role{"u1": models.RoleStaff}})
	snap, token := f.signIn(t, "u1")
	waitForRole(t, f.registry, snap.ID)

	assert.Equal(t, fiber.StatusOK, request(t, f.app, "/api/records", token))
}

func TestGuardDeniesStaffOnAdminRoute(t *testing.T) {
	f := newGuardFixture(t, &stubRoles{roles: map[string]models.Role{"u1": models.RoleStaff}})
	snap, token := f.signIn(t, "u1")
	waitForRole(t, f.registry, snap.ID)

	assert.Equal(t, fiber.StatusForbidden, request(t, f.app, "/api/admin", token))
}

func TestGuardMasterAdminSatisfiesStaffRoute(t *testing.T) {
	f := newGuardFixture(t, &stubRoles{roles: map[string]models.Role{"u1": models.RoleMasterAdmin}})
	snap, token := f.signIn(t, "u1")
	waitForRole(t, f.registry, snap.ID)

	assert.Equal(t, fiber.StatusOK, request(t, f.app, "/api/records", token))
	assert.Equal(t, fiber.StatusOK, request(t, f.app, "/api/admin", token))
}

func TestGuardPendingUserForbidden(t *testing.T) {
	// user exists but has no role row
	f := newGuardFixture(t, &stubRoles{roles: map[string]models.Role{}})
	snap, token := f.signIn(t, "u1")
	waitForRole(t, f.registry, snap.ID)

	assert.Equal(t, fiber.StatusForbidden, request(t, f.app, "/api/records", token))
}

func TestGuardUnresolvedRoleAsksForRetry(t *testing.T) {
	store := &stubRoles{roles: map[string]models.Role{"u1": models.RoleStaff}, release: make(chan struct{})}
	f := newGuardFixture(t, store)
	defer close(store.release)

	_, token := f.signIn(t, "u1")

	// fetch still in flight: not denied, not allowed, told to retry
	req := httptest.NewRequest("GET", "/api/records", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := f.app.Test(req, 2000)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("Retry-After"))
}

func TestGuardRedirectsBrowserOnMalformedSessionID(t *testing.T) {
	f := newGuardFixture(t, &stubRoles{roles: map[string]models.Role{}})

	// properly signed token whose session id is not a uuid
	claims := JWTClaims{
		SessionID: "not-a-uuid",
		UserID:    "u1",
		Email:     "u1@school.test",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    f.cfg.JWTIssuer,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(f.cfg.JWTSecret))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, request(t, f.app, "/api/records", token))

	req := httptest.NewRequest("GET", "/records", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := f.app.Test(req, 2000)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "/auth/login")
}

// Polling the session status endpoint must not reset the idle clock; only
// real interactions with data routes do.
func TestSessionPollDoesNotExtendIdle(t *testing.T) {
	cfg := testConfig()
	store := &stubRoles{roles: map[string]models.Role{"u1": models.RoleStaff}}
	registry := services.NewRegistry(store, 100*time.Millisecond, 20*time.Millisecond, zap.NewNop())
	h := NewHandler(nil, cfg, registry, nil, zap.NewNop())

	app := fiber.New()
	app.Get("/api/auth/session", h.AuthMiddleware, h.SessionAPI)

	snap := registry.Create("u1", "u1@school.test")
	token, err := GenerateJWT(cfg, snap.ID, "u1", "u1@school.test")
	require.NoError(t, err)

	deadline := time.Now().Add(250 * time.Millisecond)
	for time.Now().Before(deadline) {
		req := httptest.NewRequest("GET", "/api/auth/session", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, 2000)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		time.Sleep(20 * time.Millisecond)
	}

	expired := registry.ExpireIdle()
	require.Len(t, expired, 1, "session kept alive by status polling alone")
	assert.Equal(t, snap.ID, expired[0].ID)
}

func TestGuardTouchExtendsSession(t *testing.T) {
	f := newGuardFixture(t, &stubRoles{roles: map[string]models.Role{"u1": models.RoleStaff}})
	snap, token := f.signIn(t, "u1")
	waitForRole(t, f.registry, snap.ID)

	before, _ := f.registry.Get(snap.ID)
	time.Sleep(20 * time.Millisecond)
	request(t, f.app, "/api/records", token)
	after, _ := f.registry.Get(snap.ID)

	assert.True(t, after.LastActivity.After(before.LastActivity))
}
