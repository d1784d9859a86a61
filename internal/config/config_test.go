package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test,,")
	t.Setenv("JWT_ACCESS_TTL", "not-a-duration")
	t.Setenv("RATE_LIMIT_CLAIMS_PER_MINUTE", "3")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Fatalf("expected port 9090, got %s", cfg.Port)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %#v", cfg.AllowedOrigins)
	}
	if cfg.JWTAccessTTL != 15*time.Minute {
		t.Fatalf("expected fallback access ttl, got %s", cfg.JWTAccessTTL)
	}
	if cfg.RateLimitClaimsPerMinute != 3 {
		t.Fatalf("expected 3 claims/minute, got %d", cfg.RateLimitClaimsPerMinute)
	}
	if cfg.DefaultTimezone == "" {
		t.Fatal("expected default timezone")
	}
}

func TestStorageEnabled(t *testing.T) {
	cfg := &Config{}
	if cfg.StorageEnabled() {
		t.Fatal("expected storage disabled without credentials")
	}
	cfg.S3AccessKey, cfg.S3SecretKey = "key", "secret"
	if !cfg.StorageEnabled() {
		t.Fatal("expected storage enabled")
	}
}
