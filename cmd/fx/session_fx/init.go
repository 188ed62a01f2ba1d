package session_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"flowstate/internal/repositories"
	"flowstate/internal/services"
)

var Module = fx.Provide(provideSessionRepo, provideSessionService)

func provideSessionRepo(db *gorm.DB, cfg repositories.Config) repositories.FlowSessionRepository {
	return repositories.NewFlowSessionRepository(db, cfg)
}

func provideSessionService(sessions repositories.FlowSessionRepository) services.SessionService {
	return services.NewSessionService(sessions)
}
