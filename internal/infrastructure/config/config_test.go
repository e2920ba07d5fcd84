package config_test

import (
	"testing"
	"time"

	"github.com/vecopay/vecopay/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Backend != config.BackendSupabase {
		t.Errorf("backend = %q, want supabase", cfg.Backend)
	}
	if cfg.SessionFile != ".vecopay-session.json" {
		t.Errorf("session file = %q", cfg.SessionFile)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("http timeout = %v", cfg.HTTPTimeout)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("timezone = %q", cfg.Timezone)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "console" {
		t.Errorf("logging = %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BACKEND", "memory")
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("DATABASE_MAX_CONNS", "25")
	t.Setenv("RETRY_MAX_ELAPSED", "3s")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Backend != config.BackendMemory {
		t.Errorf("backend = %q", cfg.Backend)
	}
	if cfg.SupabaseURL != "https://example.supabase.co" {
		t.Errorf("supabase url = %q", cfg.SupabaseURL)
	}
	if cfg.DatabaseMaxConns != 25 {
		t.Errorf("max conns = %d", cfg.DatabaseMaxConns)
	}
	if cfg.RetryMaxElapsed != 3*time.Second {
		t.Errorf("retry max elapsed = %v", cfg.RetryMaxElapsed)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("BACKEND", "sqlite")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected an error for an unknown backend")
	}
}
