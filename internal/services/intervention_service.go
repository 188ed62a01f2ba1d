package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"flowstate/internal/fieldmap"
	"flowstate/internal/models/db_models"
	"flowstate/internal/models/request_models"
	"flowstate/internal/repositories"
	"flowstate/pkg/utils"
)

type InterventionService interface {
	List(ctx context.Context, userID uuid.UUID, request request_models.ListInterventionsRequest) ([]*db_models.Intervention, error)
	Create(ctx context.Context, userID uuid.UUID, request request_models.CreateInterventionRequest) (*db_models.Intervention, error)
	Update(ctx context.Context, userID, id uuid.UUID, request request_models.UpdateInterventionRequest) (*db_models.Intervention, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type interventionService struct {
	interventions repositories.InterventionRepository
	sessions      repositories.FlowSessionRepository
}

func NewInterventionService(interventions repositories.InterventionRepository, sessions repositories.FlowSessionRepository) InterventionService {
	return &interventionService{interventions: interventions, sessions: sessions}
}

func (s *interventionService) List(ctx context.Context, userID uuid.UUID, request request_models.ListInterventionsRequest) ([]*db_models.Intervention, error) {
	opts := repositories.FindOptions{Limit: listLimit(request.Limit)}
	if request.SessionID != "" {
		id, err := uuid.Parse(request.SessionID)
		if err != nil {
			return nil, fmt.Errorf("%w: sessionId is not a valid id", utils.ErrInvalidInput)
		}
		opts.SessionID = &id
	}
	items, err := s.interventions.Find(ctx, userID, opts)
	if err != nil {
		return nil, repoError("list interventions", err)
	}
	return items, nil
}

func (s *interventionService) Create(ctx context.Context, userID uuid.UUID, request request_models.CreateInterventionRequest) (*db_models.Intervention, error) {
	if !slices.Contains(db_models.InterventionTypes, request.Type) {
		return nil, fmt.Errorf("%w: type must be one of %s", utils.ErrInvalidInput, strings.Join(db_models.InterventionTypes, ", "))
	}

	patch := fieldmap.Patch{"type": request.Type}
	if request.SessionID != nil {
		sessionID, err := ownedSession(ctx, s.sessions, userID, *request.SessionID)
		if err != nil {
			return nil, err
		}
		patch["sessionId"] = sessionID
	}
	if request.Timestamp != nil {
		patch["timestamp"] = *request.Timestamp
	}
	if request.Duration != nil {
		patch["duration"] = *request.Duration
	}
	if request.Completed != nil {
		patch["completed"] = *request.Completed
	}
	if request.Effectiveness != nil {
		patch["effectiveness"] = *request.Effectiveness
	}

	item, err := s.interventions.Create(ctx, userID, patch)
	if err != nil {
		return nil, repoError("create intervention", err)
	}
	return item, nil
}

func (s *interventionService) Update(ctx context.Context, userID, id uuid.UUID, request request_models.UpdateInterventionRequest) (*db_models.Intervention, error) {
	patch := fieldmap.Patch{}
	if request.Completed != nil {
		patch["completed"] = *request.Completed
	}
	if request.Effectiveness != nil {
		patch["effectiveness"] = *request.Effectiveness
	}

	item, err := s.interventions.Update(ctx, id, userID, patch, repositories.UpdateOptions{})
	if err != nil {
		return nil, repoError("update intervention", err)
	}
	if item == nil {
		return nil, utils.ErrInterventionNotFound
	}
	return item, nil
}

func (s *interventionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	item, err := s.interventions.Delete(ctx, id, userID)
	if err != nil {
		return repoError("delete intervention", err)
	}
	if item == nil {
		return utils.ErrInterventionNotFound
	}
	return nil
}

// ownedSession checks that raw names a session of userID. The foreign key
// alone would accept another user's session.
func ownedSession(ctx context.Context, sessions repositories.FlowSessionRepository, userID uuid.UUID, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: sessionId is not a valid id", utils.ErrInvalidInput)
	}
	session, err := sessions.FindOne(ctx, id, userID)
	if err != nil {
		return uuid.Nil, repoError("find session", err)
	}
	if session == nil {
		return uuid.Nil, utils.ErrSessionNotFound
	}
	return id, nil
}
