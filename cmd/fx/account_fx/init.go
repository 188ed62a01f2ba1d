package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"flowstate/internal/config"
	"flowstate/internal/repositories"
	"flowstate/internal/services"
	mem "flowstate/pkg/memcache"
	"flowstate/pkg/utils"
)

var Module = fx.Provide(
	provideAccountService, provideUserRepo, provideSettingsRepo, provideTokenIssuer)

func provideUserRepo(db *gorm.DB, cfg repositories.Config) repositories.UserRepository {
	return repositories.NewUserRepository(db, cfg)
}

func provideSettingsRepo(db *gorm.DB, cfg repositories.Config) repositories.UserSettingsRepository {
	return repositories.NewUserSettingsRepository(db, cfg)
}

func provideTokenIssuer(cfg config.AuthConfig) *utils.TokenIssuer {
	return utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)
}

func provideAccountService(
	users repositories.UserRepository,
	settings repositories.UserSettingsRepository,
	mailService services.IMailService,
	tokens mem.ResetTokenStore,
	issuer *utils.TokenIssuer,
	cfg config.AuthConfig,
) services.AccountServiceInterface {
	return services.NewAccountService(users, settings, mailService, tokens, issuer, cfg)
}
