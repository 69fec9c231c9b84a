package db

import (
	"fmt"
	"time"

	"video-share/internal/domain/entities"
	"video-share/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB opens a pooled gorm connection. TranslateError turns
// unique-constraint violations into gorm.ErrDuplicatedKey so the
// repository can report title conflicts.
func NewPostgresDB(cfg *config.DBConfig) (*gorm.DB, error) {
	database, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxConns)
	sqlDB.SetMaxIdleConns(cfg.MaxConns / 2)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return database, nil
}

// AutoMigrate creates missing columns for dev setups. Production schema
// changes go through the goose migrations, which also add the partial
// unique index on title that AutoMigrate cannot express.
func AutoMigrate(database *gorm.DB) error {
	return database.AutoMigrate(&entities.Video{})
}
