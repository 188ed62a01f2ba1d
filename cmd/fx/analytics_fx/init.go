package analytics_fx

import (
	"go.uber.org/fx"

	"flowstate/internal/repositories"
	"flowstate/internal/services"
)

var Module = fx.Provide(provideAnalyticsService)

func provideAnalyticsService(sessions repositories.FlowSessionRepository) services.AnalyticsService {
	return services.NewAnalyticsService(sessions)
}
