package mocks

import (
	"context"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	InitiateFunc           func(ctx context.Context, email, password string) error
	VerifyFunc             func(ctx context.Context, email, code string, client domain.ClientInfo) (*domain.AuthResult, error)
	ResendFunc             func(ctx context.Context, email string) error
	RefreshAccessTokenFunc func(ctx context.Context, refreshToken string) (string, error)
	VerifyAccessTokenFunc  func(ctx context.Context, token string) (*domain.User, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Initiate starts the two-factor login flow
func (m *MockAuthService) Initiate(ctx context.Context, email, password string) error {
	if m.InitiateFunc != nil {
		return m.InitiateFunc(ctx, email, password)
	}
	// Default behavior: success
	return nil
}

// Verify consumes a verification code
func (m *MockAuthService) Verify(ctx context.Context, email, code string, client domain.ClientInfo) (*domain.AuthResult, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, email, code, client)
	}
	// Default behavior: reject
	return nil, domain.ErrInvalidOrExpiredCode
}

// Resend re-dispatches the live code
func (m *MockAuthService) Resend(ctx context.Context, email string) error {
	if m.ResendFunc != nil {
		return m.ResendFunc(ctx, email)
	}
	// Default behavior: success
	return nil
}

// RefreshAccessToken mints a new access token
func (m *MockAuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	if m.RefreshAccessTokenFunc != nil {
		return m.RefreshAccessTokenFunc(ctx, refreshToken)
	}
	// Default behavior: reject
	return "", domain.ErrInvalidRefreshToken
}

// VerifyAccessToken introspects an access token
func (m *MockAuthService) VerifyAccessToken(ctx context.Context, token string) (*domain.User, error) {
	if m.VerifyAccessTokenFunc != nil {
		return m.VerifyAccessTokenFunc(ctx, token)
	}
	// Default behavior: reject
	return nil, domain.ErrInvalidAccessToken
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
