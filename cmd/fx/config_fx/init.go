package config_fx

import (
	"go.uber.org/fx"

	"flowstate/internal/config"
	"flowstate/internal/logging"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(
		func(cfg *config.Config) config.ServerConfig { return cfg.Server },
		func(cfg *config.Config) config.DatabaseConfig { return cfg.Database },
		func(cfg *config.Config) config.AuthConfig { return cfg.Auth },
		func(cfg *config.Config) config.StorageConfig { return cfg.Storage },
		func(cfg *config.Config) config.OpenAIConfig { return cfg.OpenAI },
		func(cfg *config.Config) config.MailConfig { return cfg.Mail },
	),
)

// provideConfig loads settings and reconfigures the global logger before any
// other component logs.
func provideConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	return cfg, nil
}
