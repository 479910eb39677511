package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/config"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultDelayBetweenTry = 2 * time.Second

func dialector(cfg *config.Config) gorm.Dialector {
	if cfg.DBDriver == config.DriverSQLite {
		return sqlite.Open(cfg.DSN())
	}
	return postgres.Open(cfg.DSN())
}

func gormConfig(cfg *config.Config) *gorm.Config {
	level := logger.Warn
	if cfg.GinMode == "release" {
		level = logger.Silent
	}
	return &gorm.Config{
		Logger: logger.Default.LogMode(level),
	}
}

// ConnectWithRetry opens the database and pings it, retrying while the
// server comes up. It gives up after cfg.DBMaxAttempts or when ctx ends.
func ConnectWithRetry(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	attempts := cfg.DBMaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		var db *gorm.DB
		db, err = open(ctx, cfg)
		if err == nil {
			return db, nil
		}

		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_attempts", attempts).
			Str("driver", cfg.DBDriver).
			Msg("db not ready")

		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(defaultDelayBetweenTry):
		}
	}

	return nil, fmt.Errorf("could not connect to db after %d attempts: %w", attempts, err)
}

func open(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(dialector(cfg), gormConfig(cfg))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Book{})
}
