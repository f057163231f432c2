package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.SessionTimeout != 30*time.Minute {
		t.Fatalf("expected 30m session timeout, got %s", cfg.SessionTimeout)
	}
	if cfg.WarningWindow != 5*time.Minute {
		t.Fatalf("expected 5m warning window, got %s", cfg.WarningWindow)
	}
	if cfg.MonitorInterval != time.Minute {
		t.Fatalf("expected 1m monitor interval, got %s", cfg.MonitorInterval)
	}
	if cfg.MailBackend != "console" {
		t.Fatalf("expected console mail backend, got %s", cfg.MailBackend)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":19090")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SESSION_TIMEOUT", "10m")
	t.Setenv("SESSION_WARNING_WINDOW", "120")
	t.Setenv("SESSION_CHECK_INTERVAL", "5m")

	cfg := Load()
	if cfg.ListenAddr != ":19090" {
		t.Fatalf("expected LISTEN_ADDR override, got %s", cfg.ListenAddr)
	}
	if cfg.JWTSecret != "test-secret" {
		t.Fatalf("expected JWT_SECRET override, got %s", cfg.JWTSecret)
	}
	if cfg.SessionTimeout != 10*time.Minute {
		t.Fatalf("expected SESSION_TIMEOUT 10m, got %s", cfg.SessionTimeout)
	}
	if cfg.WarningWindow != 2*time.Minute {
		t.Fatalf("expected bare-seconds warning window 2m, got %s", cfg.WarningWindow)
	}
	// The evaluation cadence is capped at one minute.
	if cfg.MonitorInterval != time.Minute {
		t.Fatalf("expected monitor interval capped at 1m, got %s", cfg.MonitorInterval)
	}
}
