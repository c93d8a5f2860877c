package database

import (
	"log"

	"moviebot-backend/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewConnection opens the application database. Postgres is used when
// DATABASE_URL is configured; otherwise a local SQLite file keeps local
// development self-contained.
func NewConnection(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DatabaseURL != "" {
		return gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	}

	log.Printf("DATABASE_URL not set, using SQLite at %s", cfg.SQLitePath)
	return gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
}
