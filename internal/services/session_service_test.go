package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"flowstate/internal/fieldmap"
	"flowstate/internal/models/db_models"
	"flowstate/internal/models/request_models"
	"flowstate/internal/repositories"
	"flowstate/pkg/utils"
)

func TestSessionService_CreateRequiresStartTime(t *testing.T) {
	repo := new(MockSessionRepository)
	svc := NewSessionService(repo)

	_, err := svc.Create(context.Background(), uuid.New(), map[string]any{"duration": 30})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionService_CreateFillsScores(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	start := "2024-05-15T09:00:00Z"

	tests := []struct {
		name    string
		payload map[string]any
		score   any
	}{
		{"focus wins", map[string]any{"startTime": start, "focusScore": 8, "qualityScore": 3}, 8},
		{"quality fallback", map[string]any{"startTime": start, "qualityScore": 6}, 6},
		{"neither", map[string]any{"startTime": start}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockSessionRepository)
			svc := NewSessionService(repo)
			repo.On("Create", ctx, owner, mock.MatchedBy(func(p fieldmap.Patch) bool {
				return p["focusScore"] == tt.score && p["qualityScore"] == tt.score && p["startTime"] == start
			})).Return(&db_models.FlowSession{UserID: owner}, nil)

			_, err := svc.Create(ctx, owner, tt.payload)
			require.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}

func TestSessionService_ListDefaults(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	repo := new(MockSessionRepository)
	svc := NewSessionService(repo)

	repo.On("Find", ctx, owner, repositories.FindOptions{From: &from, Limit: 50, Skip: 10}).
		Return([]*db_models.FlowSession{}, nil)

	out, err := svc.List(ctx, owner, request_models.ListSessionsRequest{From: &from, Skip: 10})
	require.NoError(t, err)
	assert.Empty(t, out)
	repo.AssertExpectations(t)

	_, err = svc.List(ctx, owner, request_models.ListSessionsRequest{Skip: -1})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestSessionService_NotFound(t *testing.T) {
	ctx := context.Background()
	owner, id := uuid.New(), uuid.New()
	repo := new(MockSessionRepository)
	svc := NewSessionService(repo)

	repo.On("FindOne", ctx, id, owner).Return(nil, nil)
	repo.On("Update", ctx, id, owner, mock.Anything, repositories.UpdateOptions{}).Return(nil, nil)
	repo.On("Delete", ctx, id, owner).Return(nil, nil)

	_, err := svc.Get(ctx, owner, id)
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)
	_, err = svc.Update(ctx, owner, id, map[string]any{"notes": "x"})
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, owner, id), utils.ErrSessionNotFound)
}

func TestSessionService_InvalidPayloadIsBadInput(t *testing.T) {
	ctx := context.Background()
	owner, id := uuid.New(), uuid.New()
	repo := new(MockSessionRepository)
	svc := NewSessionService(repo)

	repo.On("Update", ctx, id, owner, mock.Anything, mock.Anything).
		Return(nil, fieldmap.ErrInvalidValue)

	_, err := svc.Update(ctx, owner, id, map[string]any{"duration": "long"})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}
