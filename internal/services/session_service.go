package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"flowstate/internal/fieldmap"
	"flowstate/internal/models/db_models"
	"flowstate/internal/models/request_models"
	"flowstate/internal/repositories"
	"flowstate/pkg/utils"
)

const maxListLimit = 500

type SessionService interface {
	List(ctx context.Context, userID uuid.UUID, request request_models.ListSessionsRequest) ([]*db_models.FlowSession, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*db_models.FlowSession, error)
	Create(ctx context.Context, userID uuid.UUID, payload map[string]any) (*db_models.FlowSession, error)
	Update(ctx context.Context, userID, id uuid.UUID, payload map[string]any) (*db_models.FlowSession, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type sessionService struct {
	sessions repositories.FlowSessionRepository
}

func NewSessionService(sessions repositories.FlowSessionRepository) SessionService {
	return &sessionService{sessions: sessions}
}

func listLimit(limit int) int {
	switch {
	case limit <= 0:
		return request_models.DefaultListLimit
	case limit > maxListLimit:
		return maxListLimit
	}
	return limit
}

func (s *sessionService) List(ctx context.Context, userID uuid.UUID, request request_models.ListSessionsRequest) ([]*db_models.FlowSession, error) {
	if request.Skip < 0 {
		return nil, fmt.Errorf("%w: skip must not be negative", utils.ErrInvalidInput)
	}
	sessions, err := s.sessions.Find(ctx, userID, repositories.FindOptions{
		From:  request.From,
		To:    request.To,
		Limit: listLimit(request.Limit),
		Skip:  request.Skip,
	})
	if err != nil {
		return nil, repoError("list sessions", err)
	}
	return sessions, nil
}

func (s *sessionService) Get(ctx context.Context, userID, id uuid.UUID) (*db_models.FlowSession, error) {
	session, err := s.sessions.FindOne(ctx, id, userID)
	if err != nil {
		return nil, repoError("find session", err)
	}
	if session == nil {
		return nil, utils.ErrSessionNotFound
	}
	return session, nil
}

// Create requires a start time. focusScore and qualityScore are kept equal:
// whichever is supplied fills the other, focusScore winning.
func (s *sessionService) Create(ctx context.Context, userID uuid.UUID, payload map[string]any) (*db_models.FlowSession, error) {
	if payload["startTime"] == nil {
		return nil, fmt.Errorf("%w: startTime is required", utils.ErrInvalidInput)
	}

	patch := make(fieldmap.Patch, len(payload)+2)
	for k, v := range payload {
		patch[k] = v
	}
	var score any = 0
	if v := payload["focusScore"]; v != nil {
		score = v
	} else if v := payload["qualityScore"]; v != nil {
		score = v
	}
	patch["focusScore"] = score
	patch["qualityScore"] = score

	session, err := s.sessions.Create(ctx, userID, patch)
	if err != nil {
		return nil, repoError("create session", err)
	}
	return session, nil
}

func (s *sessionService) Update(ctx context.Context, userID, id uuid.UUID, payload map[string]any) (*db_models.FlowSession, error) {
	session, err := s.sessions.Update(ctx, id, userID, fieldmap.Patch(payload), repositories.UpdateOptions{})
	if err != nil {
		return nil, repoError("update session", err)
	}
	if session == nil {
		return nil, utils.ErrSessionNotFound
	}
	return session, nil
}

// Delete removes the session. Interventions and media that pointed at it are
// detached by the store, not removed.
func (s *sessionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	session, err := s.sessions.Delete(ctx, id, userID)
	if err != nil {
		return repoError("delete session", err)
	}
	if session == nil {
		return utils.ErrSessionNotFound
	}
	return nil
}
