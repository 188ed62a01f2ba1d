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

func TestInterventionService_Create(t *testing.T) {
	ctx := context.Background()
	owner, sessionID := uuid.New(), uuid.New()
	items := new(MockInterventionRepository)
	sessions := new(MockSessionRepository)
	svc := NewInterventionService(items, sessions)

	sessions.On("FindOne", ctx, sessionID, owner).Return(&db_models.FlowSession{UserID: owner}, nil)
	items.On("Create", ctx, owner, fieldmap.Patch{
		"type":      "breathing",
		"sessionId": sessionID,
		"duration":  90,
	}).Return(&db_models.Intervention{Type: "breathing"}, nil)

	sid := sessionID.String()
	duration := 90
	out, err := svc.Create(ctx, owner, request_models.CreateInterventionRequest{
		SessionID: &sid,
		Type:      "breathing",
		Duration:  &duration,
	})
	require.NoError(t, err)
	assert.Equal(t, "breathing", out.Type)
	items.AssertExpectations(t)
}

func TestInterventionService_CreateRejectsUnknownType(t *testing.T) {
	items := new(MockInterventionRepository)
	svc := NewInterventionService(items, new(MockSessionRepository))

	_, err := svc.Create(context.Background(), uuid.New(), request_models.CreateInterventionRequest{Type: "nap"})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
	items.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestInterventionService_CreateRejectsForeignSession(t *testing.T) {
	ctx := context.Background()
	owner, sessionID := uuid.New(), uuid.New()
	items := new(MockInterventionRepository)
	sessions := new(MockSessionRepository)
	svc := NewInterventionService(items, sessions)

	sessions.On("FindOne", ctx, sessionID, owner).Return(nil, nil)

	sid := sessionID.String()
	_, err := svc.Create(ctx, owner, request_models.CreateInterventionRequest{SessionID: &sid, Type: "posture"})
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)
	items.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestInterventionService_UpdateSendsOnlyMutableFields(t *testing.T) {
	ctx := context.Background()
	owner, id := uuid.New(), uuid.New()
	items := new(MockInterventionRepository)
	svc := NewInterventionService(items, new(MockSessionRepository))

	items.On("Update", ctx, id, owner, fieldmap.Patch{"completed": true, "effectiveness": 4}, repositories.UpdateOptions{}).
		Return(&db_models.Intervention{Completed: true}, nil)

	done, score := true, 4
	out, err := svc.Update(ctx, owner, id, request_models.UpdateInterventionRequest{Completed: &done, Effectiveness: &score})
	require.NoError(t, err)
	assert.True(t, out.Completed)
}

func TestInterventionService_ListBySession(t *testing.T) {
	ctx := context.Background()
	owner, sessionID := uuid.New(), uuid.New()
	items := new(MockInterventionRepository)
	svc := NewInterventionService(items, new(MockSessionRepository))

	items.On("Find", ctx, owner, repositories.FindOptions{SessionID: &sessionID, Limit: 20}).
		Return([]*db_models.Intervention{{Timestamp: time.Now()}}, nil)

	out, err := svc.List(ctx, owner, request_models.ListInterventionsRequest{Limit: 20, SessionID: sessionID.String()})
	require.NoError(t, err)
	assert.Len(t, out, 1)

	_, err = svc.List(ctx, owner, request_models.ListInterventionsRequest{SessionID: "nope"})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestInterventionService_Delete(t *testing.T) {
	ctx := context.Background()
	owner, id := uuid.New(), uuid.New()
	items := new(MockInterventionRepository)
	svc := NewInterventionService(items, new(MockSessionRepository))

	items.On("Delete", ctx, id, owner).Return(nil, nil).Once()
	assert.ErrorIs(t, svc.Delete(ctx, owner, id), utils.ErrInterventionNotFound)

	items.On("Delete", ctx, id, owner).Return(&db_models.Intervention{}, nil).Once()
	assert.NoError(t, svc.Delete(ctx, owner, id))
}
