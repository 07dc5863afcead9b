package config

import (
	"slices"
	"testing"
	"time"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CORS_ORIGINS", "https://pisikahvalti.com, http://localhost:5173 ,")
	t.Setenv("ARRANGE_DRAFT_TTL", "45m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Storage.Driver != "local" {
		t.Errorf("storage driver = %q, want local", cfg.Storage.Driver)
	}
	if cfg.JWT.AccessTokenExpiry != 15*time.Minute {
		t.Errorf("access expiry = %v", cfg.JWT.AccessTokenExpiry)
	}
	if cfg.Arrange.DraftTTL != 45*time.Minute {
		t.Errorf("draft ttl = %v", cfg.Arrange.DraftTTL)
	}
	want := []string{"https://pisikahvalti.com", "http://localhost:5173"}
	if !slices.Equal(cfg.Server.CORSOrigins, want) {
		t.Errorf("cors origins = %v, want %v", cfg.Server.CORSOrigins, want)
	}
}

func TestLoadValidatesDrivers(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Setenv("STORAGE_DRIVER", "s3")
	t.Setenv("S3_BUCKET", "")
	if _, err := Load(); err == nil {
		t.Error("expected error for s3 without bucket")
	}

	t.Setenv("STORAGE_DRIVER", "local")
	t.Setenv("EMAIL_PROVIDER", "pigeon")
	if _, err := Load(); err == nil {
		t.Error("expected error for unknown email provider")
	}
}

func TestInvalidDuration(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STAGING_TTL", "two hours")
	if _, err := Load(); err == nil {
		t.Error("expected error for invalid STAGING_TTL")
	}
}
