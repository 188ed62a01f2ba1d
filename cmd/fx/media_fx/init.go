package media_fx

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"flowstate/internal/api/controllers"
	"flowstate/internal/blob"
	"flowstate/internal/config"
	"flowstate/internal/repositories"
	"flowstate/internal/services"
)

var Module = fx.Provide(
	provideBlobStore, provideMediaRepo, provideMediaService, provideMediaController)

func provideBlobStore(cfg config.StorageConfig) (blob.Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), fx.DefaultTimeout)
	defer cancel()
	return blob.Open(ctx, cfg)
}

func provideMediaRepo(db *gorm.DB, cfg repositories.Config) repositories.MediaRepository {
	return repositories.NewMediaRepository(db, cfg)
}

func provideMediaService(media repositories.MediaRepository, sessions repositories.FlowSessionRepository, store blob.Store) services.MediaService {
	return services.NewMediaService(media, sessions, store)
}

func provideMediaController(mediaService services.MediaService, cfg config.ServerConfig) *controllers.MediaController {
	return controllers.NewMediaController(mediaService, cfg.MaxUploadBytes)
}
