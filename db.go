package main

import (
	"fmt"

	"legallens/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

func initDB(cfg Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is not set; this project requires a Postgres DSN")
	}
	var err error
	db, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	return migrate(db)
}

// migrate is separate from initDB so tests can run it against their own handle.
func migrate(db *gorm.DB) error {
	// Migrate models individually so a failure names the offending table.
	for _, m := range []any{&models.User{}, &models.RefreshToken{}, &models.Document{}} {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("migration failed (%T): %w", m, err)
		}
	}
	return nil
}
