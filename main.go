package main

import (
	"bufio"
	"log"
	"os"
	"path/filepath"
	"strings"

	"legallens/pkg/aiengine"

	"github.com/gin-gonic/gin"
)

func main() {
	// Auto-load ./.env if present (no external dependency) before reading vars
	loadDotEnv()
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal("config: ", err)
	}

	// Support a lightweight migrate command: `./legallens migrate`
	// It runs AutoMigrate then exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := initDB(cfg); err != nil {
			log.Fatal(err)
		}
		log.Println("migration completed")
		return
	}

	if err := initDB(cfg); err != nil {
		log.Fatal(err)
	}

	ai := aiengine.New(aiengine.Config{
		APIKey:  cfg.OpenRouterAPIKey,
		BaseURL: cfg.OpenRouterBaseURL,
		Model:   cfg.LLMModel,
		Timeout: cfg.AITimeout,
	})
	auths = NewAuthService(db, cfg.PasswordMinLength)
	tokens = NewTokenService(db, cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)
	docs = NewDocumentService(db, ai)

	r := gin.Default()

	setupRoutes(r)

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}

// loadDotEnv loads key=value pairs from a local .env file into the environment
// without overwriting variables that are already set. Lines starting with # are ignored.
func loadDotEnv() {
	path := ".env"
	if _, err := os.Stat(path); err != nil {
		return // no .env file
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// split on first '='
		if eq := strings.IndexByte(line, '='); eq > 0 {
			key := strings.TrimSpace(line[:eq])
			val := strings.TrimSpace(line[eq+1:])
			if _, exists := os.LookupEnv(key); !exists {
				_ = os.Setenv(key, val)
			}
		}
	}
}
