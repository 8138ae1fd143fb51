package services

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
	"github.com/DOOMSDAY101/MultiQuote-backend/internal/mocks"
)

func TestEnsureInitialAdmins(t *testing.T) {
	tests := []struct {
		name            string
		admins          []BootstrapAdmin
		setupMocks      func(*mocks.MockUserRepository)
		expectedCreates int
	}{
		{
			name: "missing accounts are created",
			admins: []BootstrapAdmin{
				{Email: "root@example.com", Password: "secret", FirstName: "Super", LastName: "Admin", Role: domain.RoleSuperAdmin},
				{Email: "ops@example.com", Password: "secret", FirstName: "System", LastName: "Admin", Role: domain.RoleAdmin},
			},
			setupMocks:      func(userRepo *mocks.MockUserRepository) {},
			expectedCreates: 2,
		},
		{
			name: "existing accounts are skipped",
			admins: []BootstrapAdmin{
				{Email: "root@example.com", Password: "secret", FirstName: "Super", LastName: "Admin", Role: domain.RoleSuperAdmin},
			},
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return &domain.User{ID: "existing", Email: email}, nil
				}
			},
			expectedCreates: 0,
		},
		{
			name: "entries without credentials are skipped",
			admins: []BootstrapAdmin{
				{Email: "", Password: "secret", Role: domain.RoleSuperAdmin},
				{Email: "ops@example.com", Password: "", Role: domain.RoleAdmin},
			},
			setupMocks:      func(userRepo *mocks.MockUserRepository) {},
			expectedCreates: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			tt.setupMocks(userRepo)

			var creates []*domain.User
			baseCreate := userRepo.CreateFunc
			userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
				creates = append(creates, user)
				if baseCreate != nil {
					return baseCreate(ctx, user)
				}
				return nil
			}

			err := EnsureInitialAdmins(context.Background(), userRepo, mocks.NewMockPasswordService(), tt.admins, zap.NewNop().Sugar())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(creates) != tt.expectedCreates {
				t.Fatalf("expected %d creates, got %d", tt.expectedCreates, len(creates))
			}
			for _, user := range creates {
				if user.Status != domain.StatusActive {
					t.Error("expected bootstrap admins to start active")
				}
				if user.PasswordHash == "" || user.PasswordHash == "secret" {
					t.Error("expected the password to be hashed")
				}
			}
		})
	}
}
