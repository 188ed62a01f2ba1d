package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"flowstate/internal/config"
	"flowstate/internal/fieldmap"
	"flowstate/internal/logging"
	"flowstate/internal/models/db_models"
	"flowstate/internal/models/request_models"
	resp "flowstate/internal/models/response_models"
	"flowstate/internal/repositories"
	mem "flowstate/pkg/memcache"
	"flowstate/pkg/utils"
)

const MinPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// profileProtected are user fields PATCH /profile may not touch.
var profileProtected = []string{"email", "password", "musicAccessToken", "musicRefreshToken", "musicTokenExpiry"}

type AccountServiceInterface interface {
	Register(ctx context.Context, request request_models.SignUpRequest) (*resp.AuthResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*resp.AuthResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*db_models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, payload map[string]any) (*db_models.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest) error
}

type AccountService struct {
	users      repositories.UserRepository
	settings   repositories.UserSettingsRepository
	mail       IMailService
	tokens     mem.ResetTokenStore
	issuer     *utils.TokenIssuer
	bcryptCost int
}

func NewAccountService(
	users repositories.UserRepository,
	settings repositories.UserSettingsRepository,
	mail IMailService,
	tokens mem.ResetTokenStore,
	issuer *utils.TokenIssuer,
	cfg config.AuthConfig,
) AccountServiceInterface {
	return &AccountService{
		users:      users,
		settings:   settings,
		mail:       mail,
		tokens:     tokens,
		issuer:     issuer,
		bcryptCost: cfg.BcryptCost,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", utils.ErrInvalidInput, MinPasswordLength)
	}
	return nil
}

func (a *AccountService) Register(ctx context.Context, request request_models.SignUpRequest) (*resp.AuthResponse, error) {
	email := normalizeEmail(request.Email)
	name := strings.TrimSpace(request.Name)
	if email == "" || name == "" || request.Password == "" {
		return nil, fmt.Errorf("%w: email, password, and name are required", utils.ErrInvalidInput)
	}
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", utils.ErrInvalidInput)
	}
	if err := validatePassword(request.Password); err != nil {
		return nil, err
	}

	existing, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, repoError("find user", err)
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password, a.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := a.users.Create(ctx, fieldmap.Patch{
		"email":    email,
		"name":     name,
		"password": hashedPassword,
	})
	if errors.Is(err, repositories.ErrUniqueViolation) {
		return nil, utils.ErrEmailAlreadyExists
	}
	if err != nil {
		return nil, repoError("create user", err)
	}

	// Settings are also created lazily on first read.
	if _, err := a.settings.Create(ctx, user.ID, nil); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to create default settings")
	}

	return a.authResponse(user)
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*resp.AuthResponse, error) {
	user, err := a.users.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		return nil, repoError("find user", err)
	}
	if user == nil {
		return nil, utils.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(user.Password, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}
	return a.authResponse(user)
}

func (a *AccountService) authResponse(user *db_models.User) (*resp.AuthResponse, error) {
	token, err := a.issuer.CreateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}
	return &resp.AuthResponse{
		User:  resp.UserSummary{ID: user.ID, Email: user.Email, Name: user.Name},
		Token: token,
	}, nil
}

func (a *AccountService) GetProfile(ctx context.Context, userID uuid.UUID) (*db_models.User, error) {
	user, err := a.users.FindOne(ctx, userID)
	if err != nil {
		return nil, repoError("find user", err)
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	return user, nil
}

func (a *AccountService) UpdateProfile(ctx context.Context, userID uuid.UUID, payload map[string]any) (*db_models.User, error) {
	patch := make(fieldmap.Patch, len(payload))
	for k, v := range payload {
		patch[k] = v
	}
	for _, k := range profileProtected {
		delete(patch, k)
	}

	user, err := a.users.Update(ctx, userID, patch, repositories.UpdateOptions{})
	if err != nil {
		return nil, repoError("update user", err)
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	return user, nil
}

// ForgotPassword never reveals whether the address is registered.
func (a *AccountService) ForgotPassword(ctx context.Context, email string) error {
	user, err := a.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return repoError("find user", err)
	}
	if user == nil {
		logging.Ctx(ctx).Debug().Msg("password reset requested for unknown email")
		return nil
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	a.tokens.Set(token, user.ID)

	if err := a.mail.SendMailToResetPassword(ctx, user.Email, token); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to send password reset mail")
	}
	return nil
}

func (a *AccountService) ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest) error {
	if err := validatePassword(request.Password); err != nil {
		return err
	}
	userID, ok := a.tokens.Consume(request.Token)
	if !ok {
		return utils.ErrInvalidResetToken
	}

	hashedPassword, err := utils.HashPassword(request.Password, a.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user, err := a.users.Update(ctx, userID, fieldmap.Patch{"password": hashedPassword}, repositories.UpdateOptions{})
	if err != nil {
		return repoError("update password", err)
	}
	if user == nil {
		return utils.ErrInvalidResetToken
	}

	if err := a.mail.SendMailToNotifyUser(ctx, user.Email,
		"Your password was changed",
		"The password for your account was just reset. If this was not you, reset it again right away.",
		"", ""); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to send password change notice")
	}
	return nil
}
