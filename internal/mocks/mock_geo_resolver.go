package mocks

import (
	"context"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
)

// MockGeoResolver implements domain.GeoResolver interface for testing
type MockGeoResolver struct {
	ResolveFunc func(ctx context.Context, ip string) (*domain.GeoLocation, error)
}

// NewMockGeoResolver creates a new MockGeoResolver with default behaviors
func NewMockGeoResolver() *MockGeoResolver {
	return &MockGeoResolver{}
}

// Resolve looks up the location of an IP
func (m *MockGeoResolver) Resolve(ctx context.Context, ip string) (*domain.GeoLocation, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, ip)
	}
	// Default behavior: unknown location
	return &domain.GeoLocation{}, nil
}

// Compile-time interface compliance verification
var _ domain.GeoResolver = (*MockGeoResolver)(nil)
