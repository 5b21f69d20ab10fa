package main

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/legallens")
	for _, key := range []string{
		"ADDR", "JWT_ACCESS_TOKEN_EXPIRES_MINUTES", "JWT_REFRESH_TOKEN_EXPIRES_MINUTES",
		"PASSWORD_MIN_LENGTH", "AI_TIMEOUT_SECONDS", "OPENROUTER_BASE_URL", "LLM_MODEL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig error: %v", err)
	}
	if cfg.Addr != ":8081" {
		t.Fatalf("addr default: %q", cfg.Addr)
	}
	if cfg.AccessTTL != 15*time.Minute {
		t.Fatalf("access TTL default: %v", cfg.AccessTTL)
	}
	if cfg.RefreshTTL != 30*24*time.Hour {
		t.Fatalf("refresh TTL default: %v", cfg.RefreshTTL)
	}
	if cfg.PasswordMinLength != 8 {
		t.Fatalf("password min length default: %d", cfg.PasswordMinLength)
	}
	if cfg.AITimeout != 60*time.Second {
		t.Fatalf("ai timeout default: %v", cfg.AITimeout)
	}
	if cfg.OpenRouterBaseURL != "https://openrouter.ai/api/v1" {
		t.Fatalf("base url default: %q", cfg.OpenRouterBaseURL)
	}
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")
	if _, err := loadConfig(); err == nil {
		t.Fatal("expected error without JWT_SECRET_KEY")
	}
}

func TestLoadConfig_BadNumber(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("JWT_ACCESS_TOKEN_EXPIRES_MINUTES", "soon")
	if _, err := loadConfig(); err == nil {
		t.Fatal("expected error for non-numeric TTL")
	}
}
