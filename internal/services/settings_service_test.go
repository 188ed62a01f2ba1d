package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"flowstate/internal/fieldmap"
	"flowstate/internal/models/db_models"
	"flowstate/internal/repositories"
)

func TestSettingsService_GetCreatesDefaults(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	repo := new(MockSettingsRepository)
	svc := NewSettingsService(repo)

	created := &db_models.UserSettings{UserID: owner}
	repo.On("FindOne", ctx, owner).Return(nil, nil).Once()
	repo.On("Create", ctx, owner, mock.Anything).Return(created, nil)

	out, err := svc.Get(ctx, owner)
	require.NoError(t, err)
	assert.Same(t, created, out)
	repo.AssertExpectations(t)
}

func TestSettingsService_GetRecoversFromCreateRace(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	repo := new(MockSettingsRepository)
	svc := NewSettingsService(repo)

	existing := &db_models.UserSettings{UserID: owner}
	repo.On("FindOne", ctx, owner).Return(nil, nil).Once()
	repo.On("Create", ctx, owner, mock.Anything).Return(nil, repositories.ErrUniqueViolation)
	repo.On("FindOne", ctx, owner).Return(existing, nil).Once()

	out, err := svc.Get(ctx, owner)
	require.NoError(t, err)
	assert.Same(t, existing, out)
}

func TestSettingsService_UpdateAppliesPayload(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	repo := new(MockSettingsRepository)
	svc := NewSettingsService(repo)

	payload := map[string]any{"notifications": map[string]any{"enabled": false}}
	repo.On("FindOne", ctx, owner).Return(&db_models.UserSettings{UserID: owner}, nil)
	repo.On("Update", ctx, owner, fieldmap.Patch(payload), repositories.UpdateOptions{Upsert: true}).
		Return(&db_models.UserSettings{UserID: owner}, nil)

	_, err := svc.Update(ctx, owner, payload)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
