package main

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is assembled once at startup and handed to the services that need
// it. Nothing reads the environment after loadConfig returns.
type Config struct {
	Addr        string
	DatabaseURL string

	JWTSecret  []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	PasswordMinLength int

	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	LLMModel          string
	AITimeout         time.Duration
}

func loadConfig() (Config, error) {
	cfg := Config{
		Addr:              envOr("ADDR", ":8081"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		OpenRouterAPIKey:  os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterBaseURL: envOr("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		LLMModel:          envOr("LLM_MODEL", "mistralai/mistral-7b-instruct:free"),
	}

	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		return cfg, fmt.Errorf("JWT_SECRET_KEY is not set")
	}
	cfg.JWTSecret = []byte(secret)

	accessMin, err := envInt("JWT_ACCESS_TOKEN_EXPIRES_MINUTES", 15)
	if err != nil {
		return cfg, err
	}
	refreshMin, err := envInt("JWT_REFRESH_TOKEN_EXPIRES_MINUTES", 30*24*60)
	if err != nil {
		return cfg, err
	}
	cfg.AccessTTL = time.Duration(accessMin) * time.Minute
	cfg.RefreshTTL = time.Duration(refreshMin) * time.Minute

	cfg.PasswordMinLength, err = envInt("PASSWORD_MIN_LENGTH", 8)
	if err != nil {
		return cfg, err
	}

	aiSec, err := envInt("AI_TIMEOUT_SECONDS", 60)
	if err != nil {
		return cfg, err
	}
	cfg.AITimeout = time.Duration(aiSec) * time.Second

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
