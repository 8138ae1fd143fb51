package mocks

import (
	"context"
	"sync"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
)

// MockAuditLogRepository implements domain.AuditLogRepository for testing.
// Created entries are retained for inspection; Entries is safe to read
// after the handler under test finished its async write.
type MockAuditLogRepository struct {
	CreateFunc func(ctx context.Context, entry *domain.AuditLog) error
	ListFunc   func(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLogEntry, int64, error)

	mu      sync.Mutex
	entries []domain.AuditLog
}

// NewMockAuditLogRepository creates a new mock with default behaviors
func NewMockAuditLogRepository() *MockAuditLogRepository {
	return &MockAuditLogRepository{}
}

// Create persists an audit entry
func (m *MockAuditLogRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	// Default behavior: record in memory
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *entry)
	return nil
}

// List returns filtered audit entries
func (m *MockAuditLogRepository) List(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLogEntry, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	// Default behavior: empty page
	return nil, 0, nil
}

// Entries returns a copy of everything recorded so far
func (m *MockAuditLogRepository) Entries() []domain.AuditLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.AuditLog, len(m.entries))
	copy(out, m.entries)
	return out
}

// Compile-time interface compliance verification
var _ domain.AuditLogRepository = (*MockAuditLogRepository)(nil)
