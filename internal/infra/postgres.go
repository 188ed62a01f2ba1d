package infra

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"flowstate/internal/config"
	"flowstate/internal/logging"
)

// gormWriter routes gorm's own diagnostics (slow queries, driver errors)
// through the application logger.
type gormWriter struct{}

func (gormWriter) Printf(format string, args ...any) {
	logging.Warn().Str("component", "gorm").Msgf(format, args...)
}

func newGormLogger(slow time.Duration) logger.Interface {
	return logger.New(gormWriter{}, logger.Config{
		SlowThreshold:             slow,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// InitPostgresql opens the shared pool and verifies it with a ping.
func InitPostgresql(ctx context.Context, cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: cfg.URL}), &gorm.Config{
		Logger: newGormLogger(cfg.SlowQuery),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := ConfigurePool(db, cfg); err != nil {
		return nil, err
	}
	if err := Ping(ctx, db); err != nil {
		ClosePostgresql(db)
		return nil, err
	}

	logging.Info().
		Int("max_open_conns", cfg.MaxOpenConns).
		Int("max_idle_conns", cfg.MaxIdleConns).
		Dur("acquire_timeout", cfg.AcquireTimeout).
		Msg("PostgreSQL pool ready")
	return db, nil
}

// ConfigurePool applies pool bounds to the underlying *sql.DB.
func ConfigurePool(db *gorm.DB, cfg config.DatabaseConfig) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return nil
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get database instance: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logging.Error().Err(err).Msg("Error getting database instance")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing database connection")
	} else {
		logging.Info().Msg("PostgreSQL database connection closed successfully")
	}
}

func StartTransaction(ctx context.Context, db *gorm.DB) *gorm.DB {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		logging.Error().Err(tx.Error).Msg("Error starting transaction")
	}
	return tx
}

// ReleaseTransaction commits tx, or rolls it back when err is non-nil.
func ReleaseTransaction(tx *gorm.DB, err error) error {
	if err != nil {
		if rollbackErr := tx.Rollback().Error; rollbackErr != nil {
			logging.Error().Err(rollbackErr).Msg("Error rolling back transaction")
		}
		return err
	}
	if commitErr := tx.Commit().Error; commitErr != nil {
		logging.Error().Err(commitErr).Msg("Error committing transaction")
		return commitErr
	}
	return nil
}
