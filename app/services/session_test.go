package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/itxparadoxarc-wq/educoreportal/app/models"
)

// stubRoleStore serves canned roles and can hold a fetch open until released.
type stubRoleStore struct {
	mu      sync.Mutex
	roles   map[string]models.Role
	err     error
	gate    chan struct{} // when set, GetRole blocks until the channel closes
	started chan struct{} // when set, signalled once a gated call has begun
}

func (s *stubRoleStore) GetRole(ctx context.Context, userID string) (models.Role, error) {
	// capture the answer first so a gated call replies with the value that
	// was current when the fetch started, like a slow network round-trip
	s.mu.Lock()
	gate := s.gate
	started := s.started
	err := s.err
	role, ok := s.roles[userID]
	s.mu.Unlock()

	if gate != nil {
		if started != nil {
			started <- struct{}{}
		}
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if err != nil {
		return "", err
	}
	if !ok {
		return "", sql.ErrNoRows
	}
	return role, nil
}

func (s *stubRoleStore) setGate(gate chan struct{}) {
	s.mu.Lock()
	s.gate = gate
	s.mu.Unlock()
}

func waitResolved(t *testing.T, r *Registry, id uuid.UUID) Snapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		snap, ok := r.Get(id)
		if !ok {
			t.Fatal("session disappeared while waiting for role resolution")
		}
		if snap.RoleResolved {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("role never resolved")
	return Snapshot{}
}

func newTestRegistry(store RoleStore) *Registry {
	return NewRegistry(store, 30*time.Minute, 5*time.Minute, zap.NewNop())
}

func TestRoleResolution(t *testing.T) {
	store := &stubRoleStore{roles: map[string]models.Role{"u1": models.RoleStaff}}
	r := newTestRegistry(store)

	snap := r.Create("u1", "u1@school.test")
	if snap.RoleResolved {
		t.Fatal("role must not be resolved synchronously")
	}
	snap = waitResolved(t, r, snap.ID)
	if snap.Role != models.RoleStaff {
		t.Fatalf("role = %q, want staff", snap.Role)
	}
}

func TestPendingUserResolvesToNoRole(t *testing.T) {
	store := &stubRoleStore{roles: map[string]models.Role{}}
	r := newTestRegistry(store)

	snap := r.Create("u1", "u1@school.test")
	snap = waitResolved(t, r, snap.ID)
	if snap.Role != "" {
		t.Fatalf("pending user resolved role %q, want none", snap.Role)
	}
}

func TestRoleFetchErrorFailsClosed(t *testing.T) {
	store := &stubRoleStore{err: context.DeadlineExceeded}
	r := newTestRegistry(store)

	snap := r.Create("u1", "u1@school.test")
	snap = waitResolved(t, r, snap.ID)
	if snap.Role != "" {
		t.Fatalf("fetch error resolved role %q, want none", snap.Role)
	}
}

// A refresh started after an in-flight fetch must win even when the older
// fetch completes later.
func TestStaleRoleFetchDiscarded(t *testing.T) {
	store := &stubRoleStore{
		roles:   map[string]models.Role{"u1": models.RoleStaff},
		started: make(chan struct{}, 1),
	}
	gate := make(chan struct{})
	store.setGate(gate)

	r := newTestRegistry(store)
	snap := r.Create("u1", "u1@school.test") // fetch #1 blocks on gate
	<-store.started                          // fetch #1 captured "staff"

	// Role changes and a refresh supersedes the blocked fetch.
	store.mu.Lock()
	store.roles["u1"] = models.RoleMasterAdmin
	store.mu.Unlock()
	store.setGate(nil)
	r.RefreshRole("u1")

	got := waitResolved(t, r, snap.ID)
	if got.Role != models.RoleMasterAdmin {
		t.Fatalf("role = %q, want master_admin from the newer fetch", got.Role)
	}

	// Now let the stale fetch complete; it must not overwrite.
	close(gate)
	time.Sleep(50 * time.Millisecond)
	final, ok := r.Get(snap.ID)
	if !ok {
		t.Fatal("session gone")
	}
	if final.Role != models.RoleMasterAdmin {
		t.Fatalf("stale fetch overwrote role: got %q", final.Role)
	}
}

func TestTouchResetsIdleClock(t *testing.T) {
	store := &stubRoleStore{roles: map[string]models.Role{"u1": models.RoleStaff}}
	r := newTestRegistry(store)

	base := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	now := base
	r.now = func() time.Time { return now }

	snap := r.Create("u1", "u1@school.test")

	now = base.Add(29 * time.Minute)
	if !r.Touch(snap.ID) {
		t.Fatal("touch on live session failed")
	}

	now = base.Add(45 * time.Minute) // 16m after touch, under the 30m limit
	if expired := r.ExpireIdle(); len(expired) != 0 {
		t.Fatalf("session expired despite activity: %+v", expired)
	}

	now = base.Add(90 * time.Minute)
	expired := r.ExpireIdle()
	if len(expired) != 1 {
		t.Fatalf("expected 1 expired session, got %d", len(expired))
	}
	if _, ok := r.Get(snap.ID); ok {
		t.Fatal("expired session still retrievable")
	}
}

func TestWarningWindow(t *testing.T) {
	store := &stubRoleStore{roles: map[string]models.Role{"u1": models.RoleStaff}}
	r := newTestRegistry(store)

	base := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	now := base
	r.now = func() time.Time { return now }

	snap := r.Create("u1", "u1@school.test")

	now = base.Add(10 * time.Minute)
	if got, _ := r.Get(snap.ID); got.Warning {
		t.Fatal("warning raised with 20m remaining")
	}

	now = base.Add(26 * time.Minute)
	got, _ := r.Get(snap.ID)
	if !got.Warning {
		t.Fatal("no warning with 4m remaining")
	}
	if got.Remaining != 4*time.Minute {
		t.Fatalf("remaining = %s, want 4m", got.Remaining)
	}

	now = base.Add(31 * time.Minute)
	got, _ = r.Get(snap.ID)
	if got.Remaining != 0 {
		t.Fatalf("remaining = %s past expiry, want 0", got.Remaining)
	}
	if got.Warning {
		t.Fatal("warning must clear at zero remaining")
	}
}

func TestMonitorExpiresWithinOneTick(t *testing.T) {
	store := &stubRoleStore{roles: map[string]models.Role{"u1": models.RoleStaff}}
	r := NewRegistry(store, 50*time.Millisecond, 10*time.Millisecond, zap.NewNop())

	var mu sync.Mutex
	var expired []Snapshot
	m := NewMonitor(r, time.Minute, func(s Snapshot) {
		mu.Lock()
		expired = append(expired, s)
		mu.Unlock()
	}, zap.NewNop())

	// drive the sweep directly rather than waiting on the real ticker
	r.Create("u1", "u1@school.test")
	time.Sleep(60 * time.Millisecond)
	m.sweep()

	mu.Lock()
	defer mu.Unlock()
	if len(expired) != 1 {
		t.Fatalf("expected 1 expiry callback, got %d", len(expired))
	}
	if r.Len() != 0 {
		t.Fatalf("registry still holds %d sessions", r.Len())
	}
}

func TestSignOutDeletesSession(t *testing.T) {
	store := &stubRoleStore{roles: map[string]models.Role{"u1": models.RoleStaff}}
	r := newTestRegistry(store)

	snap := r.Create("u1", "u1@school.test")
	r.Delete(snap.ID)
	if _, ok := r.Get(snap.ID); ok {
		t.Fatal("deleted session still retrievable")
	}
}
