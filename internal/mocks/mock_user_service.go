package mocks

import (
	"context"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
)

// MockUserService implements domain.UserService interface for testing
type MockUserService struct {
	CreateUserFunc   func(ctx context.Context, in domain.CreateUserInput) (*domain.User, error)
	EditUserFunc     func(ctx context.Context, id string, in domain.EditUserInput, actorRole domain.UserRole) (*domain.User, error)
	ToggleStatusFunc func(ctx context.Context, id string) (*domain.User, error)
}

// NewMockUserService creates a new MockUserService with default behaviors
func NewMockUserService() *MockUserService {
	return &MockUserService{}
}

// CreateUser creates a new user account
func (m *MockUserService) CreateUser(ctx context.Context, in domain.CreateUserInput) (*domain.User, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, in)
	}
	// Default behavior: echo the input back
	return &domain.User{
		ID:        "mock-user-id",
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Role:      in.Role,
		Status:    domain.StatusActive,
	}, nil
}

// EditUser updates an existing account
func (m *MockUserService) EditUser(ctx context.Context, id string, in domain.EditUserInput, actorRole domain.UserRole) (*domain.User, error) {
	if m.EditUserFunc != nil {
		return m.EditUserFunc(ctx, id, in, actorRole)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// ToggleStatus flips an account's status
func (m *MockUserService) ToggleStatus(ctx context.Context, id string) (*domain.User, error) {
	if m.ToggleStatusFunc != nil {
		return m.ToggleStatusFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// Compile-time interface compliance verification
var _ domain.UserService = (*MockUserService)(nil)
