package mocks

import (
	"sync"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
)

// SentMail is one captured outbound message.
type SentMail struct {
	To   string
	Name string
	Code string
}

// MockNotificationService implements domain.NotificationService for
// testing. Dispatched codes are captured for inspection.
type MockNotificationService struct {
	SendVerificationCodeFunc  func(to, name, code string) error
	SendGeneratedPasswordFunc func(to, firstName, password string, created bool) error

	mu   sync.Mutex
	sent []SentMail
}

// NewMockNotificationService creates a new mock with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendVerificationCode dispatches a login code email
func (m *MockNotificationService) SendVerificationCode(to, name, code string) error {
	if m.SendVerificationCodeFunc != nil {
		return m.SendVerificationCodeFunc(to, name, code)
	}
	// Default behavior: capture
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SentMail{To: to, Name: name, Code: code})
	return nil
}

// SendGeneratedPassword dispatches a generated-credentials email
func (m *MockNotificationService) SendGeneratedPassword(to, firstName, password string, created bool) error {
	if m.SendGeneratedPasswordFunc != nil {
		return m.SendGeneratedPasswordFunc(to, firstName, password, created)
	}
	// Default behavior: capture
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SentMail{To: to, Name: firstName, Code: password})
	return nil
}

// Sent returns a copy of everything dispatched so far
func (m *MockNotificationService) Sent() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMail, len(m.sent))
	copy(out, m.sent)
	return out
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
