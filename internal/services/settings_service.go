package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"flowstate/internal/fieldmap"
	"flowstate/internal/models/db_models"
	"flowstate/internal/repositories"
)

type SettingsService interface {
	Get(ctx context.Context, userID uuid.UUID) (*db_models.UserSettings, error)
	Update(ctx context.Context, userID uuid.UUID, payload map[string]any) (*db_models.UserSettings, error)
}

type settingsService struct {
	settings repositories.UserSettingsRepository
}

func NewSettingsService(settings repositories.UserSettingsRepository) SettingsService {
	return &settingsService{settings: settings}
}

// Get returns the user's settings, creating the default row on first access.
func (s *settingsService) Get(ctx context.Context, userID uuid.UUID) (*db_models.UserSettings, error) {
	settings, err := s.settings.FindOne(ctx, userID)
	if err != nil {
		return nil, repoError("find settings", err)
	}
	if settings != nil {
		return settings, nil
	}

	settings, err = s.settings.Create(ctx, userID, nil)
	if errors.Is(err, repositories.ErrUniqueViolation) {
		// Lost a race with a concurrent first access.
		settings, err = s.settings.FindOne(ctx, userID)
	}
	if err != nil {
		return nil, repoError("create settings", err)
	}
	return settings, nil
}

// Update makes sure the row exists first so the payload is applied; an
// upsert on an absent row would only write defaults.
func (s *settingsService) Update(ctx context.Context, userID uuid.UUID, payload map[string]any) (*db_models.UserSettings, error) {
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}
	settings, err := s.settings.Update(ctx, userID, fieldmap.Patch(payload), repositories.UpdateOptions{Upsert: true})
	if err != nil {
		return nil, repoError("update settings", err)
	}
	return settings, nil
}
