package controllers_fx

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"flowstate/internal/api/controllers"
	"flowstate/internal/infra"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewSessionController),
	fx.Provide(controllers.NewSettingsController),
	fx.Provide(controllers.NewAnalyticsController),
	fx.Provide(provideHealthController))

func provideHealthController(db *gorm.DB) *controllers.HealthController {
	return controllers.NewHealthController(func(ctx context.Context) error {
		return infra.Ping(ctx, db)
	})
}
