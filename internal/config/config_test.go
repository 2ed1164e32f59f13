package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Empty values fall through to the defaults, so this also shields the
	// test from ambient environment variables.
	for _, key := range []string{"PORT", "COMPASS_ADDR", "COMPASS_ENV", "GHL_API_KEY", "RATE_LIMIT_WINDOW"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Addr != ":3000" {
		t.Fatalf("Addr=%q", cfg.Addr)
	}
	if cfg.Env != "development" || cfg.Production() {
		t.Fatalf("Env=%q", cfg.Env)
	}
	if cfg.RateLimitWindow != 15*time.Minute || cfg.RateLimitMax != 100 {
		t.Fatalf("rate limit %v/%d", cfg.RateLimitWindow, cfg.RateLimitMax)
	}
	if cfg.GHL.APIURL != "https://rest.gohighlevel.com/v1" {
		t.Fatalf("GHL APIURL=%q", cfg.GHL.APIURL)
	}
	if cfg.GHL.Configured() {
		t.Fatal("GHL should be unconfigured without an API key")
	}
	if cfg.BackupMaxAge != 7*24*time.Hour {
		t.Fatalf("BackupMaxAge=%v", cfg.BackupMaxAge)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("COMPASS_ENV", "production")
	t.Setenv("GHL_API_KEY", "secret")
	t.Setenv("GHL_DRIVER_WORKFLOW_ID", "wf-123")
	t.Setenv("RATE_LIMIT_WINDOW", "5")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "20")
	t.Setenv("ALLOWED_ORIGINS", "https://purelifewarrior.com, https://www.purelifewarrior.com")

	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("Addr=%q", cfg.Addr)
	}
	if !cfg.Production() {
		t.Fatal("expected production mode")
	}
	if !cfg.GHL.Configured() {
		t.Fatal("expected configured GHL")
	}
	if cfg.GHL.Workflows["DRIVER"] != "wf-123" {
		t.Fatalf("DRIVER workflow=%q", cfg.GHL.Workflows["DRIVER"])
	}
	if cfg.RateLimitWindow != 5*time.Minute || cfg.RateLimitMax != 20 {
		t.Fatalf("rate limit %v/%d", cfg.RateLimitWindow, cfg.RateLimitMax)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://www.purelifewarrior.com" {
		t.Fatalf("AllowedOrigins=%v", cfg.AllowedOrigins)
	}
}

func TestLoadExplicitAddrWins(t *testing.T) {
	t.Setenv("COMPASS_ADDR", "127.0.0.1:9000")
	t.Setenv("PORT", "8080")
	if cfg := Load(); cfg.Addr != "127.0.0.1:9000" {
		t.Fatalf("Addr=%q", cfg.Addr)
	}
}

func TestLoadBadIntFallsBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "lots")
	if cfg := Load(); cfg.RateLimitMax != 100 {
		t.Fatalf("RateLimitMax=%d", cfg.RateLimitMax)
	}
}
