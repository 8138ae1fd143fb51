package mocks

import (
	"context"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
)

// MockLoginSessionRepository implements domain.LoginSessionRepository for testing
type MockLoginSessionRepository struct {
	CreateFunc   func(ctx context.Context, session *domain.LoginSession) error
	FindByIDFunc func(ctx context.Context, id string) (*domain.LoginSession, error)
}

// NewMockLoginSessionRepository creates a new mock with default behaviors
func NewMockLoginSessionRepository() *MockLoginSessionRepository {
	return &MockLoginSessionRepository{}
}

// Create records a login session
func (m *MockLoginSessionRepository) Create(ctx context.Context, session *domain.LoginSession) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	// Default behavior: assign a stable id
	if session.ID == "" {
		session.ID = "session-1"
	}
	return nil
}

// FindByID finds a session by ID
func (m *MockLoginSessionRepository) FindByID(ctx context.Context, id string) (*domain.LoginSession, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrSessionNotFound
}

// Compile-time interface compliance verification
var _ domain.LoginSessionRepository = (*MockLoginSessionRepository)(nil)
