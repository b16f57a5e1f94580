package db

import (
	"fmt"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Pool limits. Permission resolution fans out several queries per
// request, so the ceiling is higher than gorm's default.
const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = time.Hour
)

// Config holds database connection configuration.
type Config struct {
	// URL overrides the DATABASE_URL environment variable.
	URL string
}

// Connect opens the application database. Query logging stays silent
// unless FIELDGATE_LOG_LEVEL=debug.
func Connect(cfg Config) (*gorm.DB, error) {
	url := cfg.URL
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	logMode := logger.Silent
	if os.Getenv("FIELDGATE_LOG_LEVEL") == "debug" {
		logMode = logger.Info
	}

	db, err := gorm.Open(
		postgres.New(postgres.Config{
			DSN: url,
			// Simple protocol avoids implicit prepared statements,
			// which break behind transaction-mode poolers.
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{Logger: logger.Default.LogMode(logMode)},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	return db, nil
}

// URL returns DATABASE_URL, empty when unset.
func URL() string {
	return os.Getenv("DATABASE_URL")
}
