package services

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Monitor periodically expires idle sessions. It is a UX layer, not a
// security boundary: the JWT carries the authoritative expiry.
type Monitor struct {
	registry *Registry
	interval time.Duration
	onExpire func(Snapshot)
	log      *zap.Logger
}

// NewMonitor builds a monitor. onExpire runs once per expired session (audit
// logging is wired there) and may be nil.
func NewMonitor(registry *Registry, interval time.Duration, onExpire func(Snapshot), log *zap.Logger) *Monitor {
	if interval <= 0 || interval > time.Minute {
		interval = time.Minute
	}
	return &Monitor{registry: registry, interval: interval, onExpire: onExpire, log: log}
}

// Start runs the check loop until ctx is cancelled, so no timer outlives the
// registry it watches.
func (m *Monitor) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		m.log.Info("session timeout monitor started", zap.Duration("interval", m.interval))
		for {
			select {
			case <-ctx.Done():
				m.log.Info("session timeout monitor stopped")
				return
			case <-ticker.C:
				m.sweep()
			}
		}
	}()
}

func (m *Monitor) sweep() {
	for _, snap := range m.registry.ExpireIdle() {
		m.log.Info("session expired due to inactivity",
			zap.String("user_id", snap.UserID),
			zap.String("email", snap.Email),
			zap.Time("last_activity", snap.LastActivity))
		if m.onExpire != nil {
			m.onExpire(snap)
		}
	}
}
