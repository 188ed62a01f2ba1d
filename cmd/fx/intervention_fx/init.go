package intervention_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"flowstate/internal/api/controllers"
	"flowstate/internal/repositories"
	"flowstate/internal/services"
)

var Module = fx.Provide(
	provideInterventionRepo, provideInterventionService, provideInterventionController,
)

func provideInterventionRepo(db *gorm.DB, cfg repositories.Config) repositories.InterventionRepository {
	return repositories.NewInterventionRepository(db, cfg)
}

func provideInterventionService(interventions repositories.InterventionRepository, sessions repositories.FlowSessionRepository) services.InterventionService {
	return services.NewInterventionService(interventions, sessions)
}

func provideInterventionController(interventionService services.InterventionService) *controllers.InterventionController {
	return controllers.NewInterventionController(interventionService)
}
