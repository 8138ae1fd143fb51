package mocks

import (
	"context"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
)

// MockVerificationCodeRepository implements domain.VerificationCodeRepository for testing
type MockVerificationCodeRepository struct {
	CreateFunc func(ctx context.Context, code *domain.VerificationCode) (bool, error)
	FindFunc   func(ctx context.Context, userID string) (*domain.VerificationCode, error)
	UpdateFunc func(ctx context.Context, code *domain.VerificationCode) error
	DeleteFunc func(ctx context.Context, userID string) error
}

// NewMockVerificationCodeRepository creates a new mock with default behaviors
func NewMockVerificationCodeRepository() *MockVerificationCodeRepository {
	return &MockVerificationCodeRepository{}
}

// Create stores a new verification code
func (m *MockVerificationCodeRepository) Create(ctx context.Context, code *domain.VerificationCode) (bool, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, code)
	}
	// Default behavior: stored as the only live code
	return true, nil
}

// Find looks up the live code for a user
func (m *MockVerificationCodeRepository) Find(ctx context.Context, userID string) (*domain.VerificationCode, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, userID)
	}
	// Default behavior: no live code
	return nil, domain.ErrCodeNotFound
}

// Update rewrites the live code record
func (m *MockVerificationCodeRepository) Update(ctx context.Context, code *domain.VerificationCode) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, code)
	}
	// Default behavior: success
	return nil
}

// Delete removes the live code for a user
func (m *MockVerificationCodeRepository) Delete(ctx context.Context, userID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.VerificationCodeRepository = (*MockVerificationCodeRepository)(nil)
