package services

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/mock"

	"flowstate/internal/blob"
	"flowstate/internal/fieldmap"
	"flowstate/internal/models/db_models"
	"flowstate/internal/repositories"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Find(ctx context.Context, id uuid.UUID, opts repositories.FindOptions) ([]*db_models.User, error) {
	args := m.Called(ctx, id, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*db_models.User), args.Error(1)
}

func (m *MockUserRepository) FindOne(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, fields fieldmap.Patch) (*db_models.User, error) {
	args := m.Called(ctx, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id uuid.UUID, set fieldmap.Patch, opts repositories.UpdateOptions) (*db_models.User, error) {
	args := m.Called(ctx, id, set, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.User), args.Error(1)
}

// MockSettingsRepository is a mock implementation of repositories.UserSettingsRepository.
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Find(ctx context.Context, ownerID uuid.UUID, opts repositories.FindOptions) ([]*db_models.UserSettings, error) {
	args := m.Called(ctx, ownerID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*db_models.UserSettings), args.Error(1)
}

func (m *MockSettingsRepository) FindOne(ctx context.Context, ownerID uuid.UUID) (*db_models.UserSettings, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.UserSettings), args.Error(1)
}

func (m *MockSettingsRepository) Create(ctx context.Context, ownerID uuid.UUID, fields fieldmap.Patch) (*db_models.UserSettings, error) {
	args := m.Called(ctx, ownerID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.UserSettings), args.Error(1)
}

func (m *MockSettingsRepository) Update(ctx context.Context, ownerID uuid.UUID, set fieldmap.Patch, opts repositories.UpdateOptions) (*db_models.UserSettings, error) {
	args := m.Called(ctx, ownerID, set, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.UserSettings), args.Error(1)
}

func (m *MockSettingsRepository) Delete(ctx context.Context, ownerID uuid.UUID) (*db_models.UserSettings, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.UserSettings), args.Error(1)
}

// MockSessionRepository is a mock implementation of repositories.FlowSessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Find(ctx context.Context, ownerID uuid.UUID, opts repositories.FindOptions) ([]*db_models.FlowSession, error) {
	args := m.Called(ctx, ownerID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*db_models.FlowSession), args.Error(1)
}

func (m *MockSessionRepository) FindOne(ctx context.Context, id, ownerID uuid.UUID) (*db_models.FlowSession, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.FlowSession), args.Error(1)
}

func (m *MockSessionRepository) Create(ctx context.Context, ownerID uuid.UUID, fields fieldmap.Patch) (*db_models.FlowSession, error) {
	args := m.Called(ctx, ownerID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.FlowSession), args.Error(1)
}

func (m *MockSessionRepository) Update(ctx context.Context, id, ownerID uuid.UUID, set fieldmap.Patch, opts repositories.UpdateOptions) (*db_models.FlowSession, error) {
	args := m.Called(ctx, id, ownerID, set, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.FlowSession), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) (*db_models.FlowSession, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.FlowSession), args.Error(1)
}

// MockInterventionRepository is a mock implementation of repositories.InterventionRepository.
type MockInterventionRepository struct {
	mock.Mock
}

func (m *MockInterventionRepository) Find(ctx context.Context, ownerID uuid.UUID, opts repositories.FindOptions) ([]*db_models.Intervention, error) {
	args := m.Called(ctx, ownerID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*db_models.Intervention), args.Error(1)
}

func (m *MockInterventionRepository) FindOne(ctx context.Context, id, ownerID uuid.UUID) (*db_models.Intervention, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Intervention), args.Error(1)
}

func (m *MockInterventionRepository) Create(ctx context.Context, ownerID uuid.UUID, fields fieldmap.Patch) (*db_models.Intervention, error) {
	args := m.Called(ctx, ownerID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Intervention), args.Error(1)
}

func (m *MockInterventionRepository) Update(ctx context.Context, id, ownerID uuid.UUID, set fieldmap.Patch, opts repositories.UpdateOptions) (*db_models.Intervention, error) {
	args := m.Called(ctx, id, ownerID, set, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Intervention), args.Error(1)
}

func (m *MockInterventionRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) (*db_models.Intervention, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Intervention), args.Error(1)
}

// MockMediaRepository is a mock implementation of repositories.MediaRepository.
type MockMediaRepository struct {
	mock.Mock
}

func (m *MockMediaRepository) Find(ctx context.Context, ownerID uuid.UUID, opts repositories.FindOptions) ([]*db_models.Media, error) {
	args := m.Called(ctx, ownerID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*db_models.Media), args.Error(1)
}

func (m *MockMediaRepository) FindOne(ctx context.Context, id, ownerID uuid.UUID) (*db_models.Media, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Media), args.Error(1)
}

func (m *MockMediaRepository) Create(ctx context.Context, ownerID uuid.UUID, fields fieldmap.Patch) (*db_models.Media, error) {
	args := m.Called(ctx, ownerID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Media), args.Error(1)
}

func (m *MockMediaRepository) Update(ctx context.Context, id, ownerID uuid.UUID, set fieldmap.Patch, opts repositories.UpdateOptions) (*db_models.Media, error) {
	args := m.Called(ctx, id, ownerID, set, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Media), args.Error(1)
}

func (m *MockMediaRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) (*db_models.Media, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Media), args.Error(1)
}

// MockMailService is a mock implementation of IMailService.
type MockMailService struct {
	mock.Mock
}

func (m *MockMailService) SendMailToNotifyUser(ctx context.Context, to, subject, body, ctaText, ctaURL string) error {
	args := m.Called(ctx, to, subject, body, ctaText, ctaURL)
	return args.Error(0)
}

func (m *MockMailService) SendMailToResetPassword(ctx context.Context, to, token string) error {
	args := m.Called(ctx, to, token)
	return args.Error(0)
}

// MockChatCompleter is a mock implementation of ChatCompleter.
type MockChatCompleter struct {
	mock.Mock
}

func (m *MockChatCompleter) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(openai.ChatCompletionResponse), args.Error(1)
}

// failingStore rejects every write.
type failingStore struct {
	blob.Store
}

func (failingStore) Put(context.Context, string, io.Reader, blob.PutOptions) (blob.Object, error) {
	return blob.Object{}, errors.New("bucket unreachable")
}
