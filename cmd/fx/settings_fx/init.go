package settings_fx

import (
	"go.uber.org/fx"

	"flowstate/internal/repositories"
	"flowstate/internal/services"
)

var Module = fx.Provide(provideSettingsService)

func provideSettingsService(settings repositories.UserSettingsRepository) services.SettingsService {
	return services.NewSettingsService(settings)
}
