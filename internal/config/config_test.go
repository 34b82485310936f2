package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.NewContactSLA != 48*time.Hour {
		t.Errorf("expected 48h new-contact SLA, got %s", cfg.NewContactSLA)
	}
	if cfg.DefaultFollowUpDays != 2 {
		t.Errorf("expected 2 default follow-up days, got %d", cfg.DefaultFollowUpDays)
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Errorf("expected 12h session TTL, got %s", cfg.SessionTTL)
	}
	if cfg.DashboardTimezone != "Asia/Dubai" {
		t.Errorf("expected Asia/Dubai timezone, got %s", cfg.DashboardTimezone)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SWEEP_INTERVAL", "30s")
	t.Setenv("NEW_CONTACT_SLA", "24h")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.NewContactSLA != 24*time.Hour {
		t.Errorf("expected 24h new-contact SLA, got %s", cfg.NewContactSLA)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("expected 1h session TTL, got %s", cfg.SessionTTL)
	}
	if cfg.SweepInterval != 30*time.Second {
		t.Errorf("expected 30s sweep interval, got %s", cfg.SweepInterval)
	}
	if !cfg.RedisTLS {
		t.Error("expected redis TLS enabled")
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLocationFallback(t *testing.T) {
	cfg := &Config{DashboardTimezone: "Not/AZone"}
	if loc := cfg.Location(); loc != time.UTC {
		t.Errorf("expected UTC fallback, got %v", loc)
	}
}
