package controllers

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"flowstate/internal/models/db_models"
	"flowstate/internal/models/request_models"
	resp "flowstate/internal/models/response_models"
	"flowstate/internal/services"
)

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Register(ctx context.Context, request request_models.SignUpRequest) (*resp.AuthResponse, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resp.AuthResponse), args.Error(1)
}

func (m *MockAccountService) Login(ctx context.Context, request request_models.LoginRequest) (*resp.AuthResponse, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resp.AuthResponse), args.Error(1)
}

func (m *MockAccountService) GetProfile(ctx context.Context, userID uuid.UUID) (*db_models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.User), args.Error(1)
}

func (m *MockAccountService) UpdateProfile(ctx context.Context, userID uuid.UUID, payload map[string]any) (*db_models.User, error) {
	args := m.Called(ctx, userID, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.User), args.Error(1)
}

func (m *MockAccountService) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAccountService) ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest) error {
	return m.Called(ctx, request).Error(0)
}

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) List(ctx context.Context, userID uuid.UUID, request request_models.ListSessionsRequest) ([]*db_models.FlowSession, error) {
	args := m.Called(ctx, userID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*db_models.FlowSession), args.Error(1)
}

func (m *MockSessionService) Get(ctx context.Context, userID, id uuid.UUID) (*db_models.FlowSession, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.FlowSession), args.Error(1)
}

func (m *MockSessionService) Create(ctx context.Context, userID uuid.UUID, payload map[string]any) (*db_models.FlowSession, error) {
	args := m.Called(ctx, userID, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.FlowSession), args.Error(1)
}

func (m *MockSessionService) Update(ctx context.Context, userID, id uuid.UUID, payload map[string]any) (*db_models.FlowSession, error) {
	args := m.Called(ctx, userID, id, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.FlowSession), args.Error(1)
}

func (m *MockSessionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

type MockInterventionService struct {
	mock.Mock
}

func (m *MockInterventionService) List(ctx context.Context, userID uuid.UUID, request request_models.ListInterventionsRequest) ([]*db_models.Intervention, error) {
	args := m.Called(ctx, userID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*db_models.Intervention), args.Error(1)
}

func (m *MockInterventionService) Create(ctx context.Context, userID uuid.UUID, request request_models.CreateInterventionRequest) (*db_models.Intervention, error) {
	args := m.Called(ctx, userID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Intervention), args.Error(1)
}

func (m *MockInterventionService) Update(ctx context.Context, userID, id uuid.UUID, request request_models.UpdateInterventionRequest) (*db_models.Intervention, error) {
	args := m.Called(ctx, userID, id, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Intervention), args.Error(1)
}

func (m *MockInterventionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

type MockMediaService struct {
	mock.Mock
	// uploaded holds the body read during the last Upload call.
	uploaded []byte
}

func (m *MockMediaService) List(ctx context.Context, userID uuid.UUID, request request_models.ListMediaRequest) ([]*db_models.Media, error) {
	args := m.Called(ctx, userID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*db_models.Media), args.Error(1)
}

func (m *MockMediaService) Get(ctx context.Context, userID, id uuid.UUID) (*db_models.Media, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Media), args.Error(1)
}

func (m *MockMediaService) Upload(ctx context.Context, userID uuid.UUID, in services.UploadInput) (*db_models.Media, error) {
	if in.Body != nil {
		m.uploaded, _ = io.ReadAll(in.Body)
		in.Body = nil
	}
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Media), args.Error(1)
}

func (m *MockMediaService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get(ctx context.Context, userID uuid.UUID) (*db_models.UserSettings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.UserSettings), args.Error(1)
}

func (m *MockSettingsService) Update(ctx context.Context, userID uuid.UUID, payload map[string]any) (*db_models.UserSettings, error) {
	args := m.Called(ctx, userID, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.UserSettings), args.Error(1)
}

type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) Report(ctx context.Context, userID uuid.UUID, period string) (*resp.AnalyticsReport, error) {
	args := m.Called(ctx, userID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resp.AnalyticsReport), args.Error(1)
}

type MockInsightsService struct {
	mock.Mock
}

func (m *MockInsightsService) Chat(ctx context.Context, request request_models.ChatRequest) (string, error) {
	args := m.Called(ctx, request)
	return args.String(0), args.Error(1)
}
