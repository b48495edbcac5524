package database

import (
	"fmt"

	"edp-shifts/internal/config"
	"edp-shifts/internal/logging"
	"edp-shifts/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to the configured database and migrates the schema.
func Open(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DatabaseDSN)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logging.Gorm(log),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("database ready",
		zap.String("driver", cfg.DBDriver),
		zap.String("dsn", redact(cfg)),
	)
	return db, nil
}

// Migrate creates the users and shifts tables and the idx_staff lookup index.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Shift{}); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// OpenSQLite opens a migrated SQLite database at path. Used by tests and the CLI.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func redact(cfg *config.Config) string {
	if cfg.DBDriver == config.DriverSQLite {
		return cfg.DatabaseDSN
	}
	return "<postgres>"
}
