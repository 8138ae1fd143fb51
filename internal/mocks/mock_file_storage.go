package mocks

import (
	"context"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
)

// MockFileStorage implements domain.FileStorage interface for testing
type MockFileStorage struct {
	UploadFunc func(ctx context.Context, data []byte, folder string) (string, error)
}

// NewMockFileStorage creates a new MockFileStorage with default behaviors
func NewMockFileStorage() *MockFileStorage {
	return &MockFileStorage{}
}

// Upload stores a file and returns its public URL
func (m *MockFileStorage) Upload(ctx context.Context, data []byte, folder string) (string, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, data, folder)
	}
	// Default behavior: fixed URL
	return "https://cdn.example.com/" + folder + "/mock-upload", nil
}

// Compile-time interface compliance verification
var _ domain.FileStorage = (*MockFileStorage)(nil)
