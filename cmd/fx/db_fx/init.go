package db_fx

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"flowstate/internal/config"
	"flowstate/internal/infra"
	"flowstate/internal/repositories"
)

var Module = fx.Provide(
	provideDB, provideRepositoryConfig)

func provideDB(lc fx.Lifecycle, cfg config.DatabaseConfig) (*gorm.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), fx.DefaultTimeout)
	defer cancel()

	db, err := infra.InitPostgresql(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.BootstrapSchema {
		if err := infra.Bootstrap(ctx, db); err != nil {
			infra.ClosePostgresql(db)
			return nil, err
		}
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			infra.ClosePostgresql(db)
			return nil
		},
	})
	return db, nil
}

func provideRepositoryConfig(cfg config.DatabaseConfig) repositories.Config {
	return repositories.Config{AcquireTimeout: cfg.AcquireTimeout}
}
