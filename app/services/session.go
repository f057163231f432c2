package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/itxparadoxarc-wq/educoreportal/app/database"
	"github.com/itxparadoxarc-wq/educoreportal/app/models"
)

// RoleStore resolves the single role assigned to a user. Implementations
// signal "pending" (no assignment) with sql.ErrNoRows.
type RoleStore interface {
	GetRole(ctx context.Context, userID string) (models.Role, error)
}

// session is the in-memory state for one signed-in identity. Role resolution
// is asynchronous; gen tags in-flight fetches so a superseded fetch can never
// overwrite fresher state.
type session struct {
	id           uuid.UUID
	userID       string
	email        string
	issuedAt     time.Time
	lastActivity time.Time

	role         models.Role
	roleResolved bool
	gen          uint64
}

// Snapshot is the read-only view handed to middleware and handlers.
type Snapshot struct {
	ID           uuid.UUID
	UserID       string
	Email        string
	Role         models.Role
	RoleResolved bool
	IssuedAt     time.Time
	LastActivity time.Time
	Remaining    time.Duration
	Warning      bool
}

// HasRole reports whether the session holds the required role; master_admin
// satisfies every requirement.
func (s Snapshot) HasRole(required models.Role) bool {
	return s.Role == required || s.Role == models.RoleMasterAdmin
}

// Registry is the single holder of live sessions. It is constructed
// explicitly and injected; nothing else mutates identity or role state.
type Registry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*session

	roles      RoleStore
	timeout    time.Duration
	warnWindow time.Duration
	log        *zap.Logger
	now        func() time.Time
}

func NewRegistry(roles RoleStore, timeout, warnWindow time.Duration, log *zap.Logger) *Registry {
	return &Registry{
		sessions:   make(map[uuid.UUID]*session),
		roles:      roles,
		timeout:    timeout,
		warnWindow: warnWindow,
		log:        log,
		now:        time.Now,
	}
}

// Create registers a session for a signed-in identity and starts the role
// fetch for it. The session is usable immediately; until the fetch lands the
// snapshot reports RoleResolved=false, which guards must treat as "not yet
// decided", never as denied.
func (r *Registry) Create(userID, email string) Snapshot {
	now := r.now()
	s := &session{
		id:           uuid.New(),
		userID:       userID,
		email:        email,
		issuedAt:     now,
		lastActivity: now,
		gen:          1,
	}

	r.mu.Lock()
	r.sessions[s.id] = s
	snap := r.snapshotLocked(s)
	r.mu.Unlock()

	go r.resolveRole(s.id, userID, 1)
	return snap
}

// resolveRole fetches the role for a session and stores it only if the
// session still exists and no newer fetch has been started since. A fetch
// error resolves to no role: access is denied, the session is not torn down.
func (r *Registry) resolveRole(sessionID uuid.UUID, userID string, gen uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	role, err := r.roles.GetRole(ctx, userID)
	resolved := models.Role("")
	switch {
	case err == nil:
		resolved = role
	case database.IsNoRows(err):
		// pending user, no role
	default:
		r.log.Error("role fetch failed, denying access",
			zap.String("user_id", userID), zap.Error(err))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok || s.gen != gen {
		// signed out or superseded while in flight; discard
		return
	}
	s.role = resolved
	s.roleResolved = true
}

// RefreshRole re-resolves the role for every live session of a user, used
// after an admin assigns or removes a role. Each refresh supersedes any
// fetch still in flight.
func (r *Registry) RefreshRole(userID string) {
	r.mu.Lock()
	var pending []struct {
		id  uuid.UUID
		gen uint64
	}
	for _, s := range r.sessions {
		if s.userID == userID {
			s.gen++
			s.roleResolved = false
			pending = append(pending, struct {
				id  uuid.UUID
				gen uint64
			}{s.id, s.gen})
		}
	}
	r.mu.Unlock()

	for _, p := range pending {
		go r.resolveRole(p.id, userID, p.gen)
	}
}

// Touch records user activity, resetting the idle clock.
func (r *Registry) Touch(sessionID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return false
	}
	s.lastActivity = r.now()
	return true
}

// Get returns the current snapshot for a session.
func (r *Registry) Get(sessionID uuid.UUID) (Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return Snapshot{}, false
	}
	return r.snapshotLocked(s), true
}

// Delete removes a session (sign-out).
func (r *Registry) Delete(sessionID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}

// ExpireIdle removes every session idle for the configured timeout and
// returns their final snapshots. Called by the timeout monitor.
func (r *Registry) ExpireIdle() []Snapshot {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()

	var expired []Snapshot
	for id, s := range r.sessions {
		if now.Sub(s.lastActivity) >= r.timeout {
			expired = append(expired, r.snapshotLocked(s))
			delete(r.sessions, id)
		}
	}
	return expired
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) snapshotLocked(s *session) Snapshot {
	remaining := r.timeout - r.now().Sub(s.lastActivity)
	if remaining < 0 {
		remaining = 0
	}
	return Snapshot{
		ID:           s.id,
		UserID:       s.userID,
		Email:        s.email,
		Role:         s.role,
		RoleResolved: s.roleResolved,
		IssuedAt:     s.issuedAt,
		LastActivity: s.lastActivity,
		Remaining:    remaining,
		Warning:      remaining > 0 && remaining <= r.warnWindow,
	}
}
