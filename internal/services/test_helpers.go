package services

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
	"github.com/DOOMSDAY101/MultiQuote-backend/internal/mocks"
)

// createAuthServiceForTest creates an AuthService with mock dependencies for testing
func createAuthServiceForTest(t *testing.T,
	userRepo domain.UserRepository,
	codeRepo domain.VerificationCodeRepository,
	sessionRepo domain.LoginSessionRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	notificationSvc domain.NotificationService,
	config *AuthConfig) domain.AuthService {
	t.Helper()

	// Use provided mocks or create defaults
	if userRepo == nil {
		userRepo = mocks.NewMockUserRepository()
	}
	if codeRepo == nil {
		codeRepo = mocks.NewMockVerificationCodeRepository()
	}
	if sessionRepo == nil {
		sessionRepo = mocks.NewMockLoginSessionRepository()
	}
	if passwordSvc == nil {
		passwordSvc = mocks.NewMockPasswordService()
	}
	if tokenSvc == nil {
		tokenSvc = mocks.NewMockTokenService()
	}
	if notificationSvc == nil {
		notificationSvc = mocks.NewMockNotificationService()
	}
	if config == nil {
		config = &AuthConfig{
			CodeTTL:      10 * time.Minute,
			ResendWindow: 10 * time.Minute,
			ResendLimit:  3,
		}
	}

	return NewAuthService(userRepo, codeRepo, sessionRepo, passwordSvc, tokenSvc, notificationSvc, mocks.NewMockGeoResolver(), *config, zap.NewNop().Sugar())
}

// createUserServiceForTest creates a UserService with mock dependencies for testing
func createUserServiceForTest(t *testing.T,
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	notificationSvc domain.NotificationService,
	fileStorage domain.FileStorage) domain.UserService {
	t.Helper()

	if userRepo == nil {
		userRepo = mocks.NewMockUserRepository()
	}
	if passwordSvc == nil {
		passwordSvc = mocks.NewMockPasswordService()
	}
	if notificationSvc == nil {
		notificationSvc = mocks.NewMockNotificationService()
	}
	if fileStorage == nil {
		fileStorage = mocks.NewMockFileStorage()
	}

	return NewUserService(userRepo, passwordSvc, notificationSvc, fileStorage, zap.NewNop().Sugar())
}

// createActiveUser creates a valid active user entity for testing
func createActiveUser(t *testing.T) *domain.User {
	t.Helper()

	return &domain.User{
		ID:           "user-1",
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        "jane@example.com",
		PhoneNumber:  "+2348012345678",
		PasswordHash: "hashed_password123",
		Role:         domain.RoleAdmin,
		Status:       domain.StatusActive,
		CreatedAt:    time.Now(),
	}
}

// createLiveCode creates an unexpired verification code for testing
func createLiveCode(t *testing.T, userID string) *domain.VerificationCode {
	t.Helper()

	now := time.Now()
	return &domain.VerificationCode{
		UserID:         userID,
		Code:           "123456",
		ExpiresAt:      now.Add(10 * time.Minute),
		ResendAttempts: 1,
		LastAttemptAt:  now,
	}
}

// createTestContext creates a context for testing
func createTestContext(t *testing.T) context.Context {
	t.Helper()
	return context.Background()
}
