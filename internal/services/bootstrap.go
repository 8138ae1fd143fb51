package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
)

// BootstrapAdmin describes one admin account seeded at process start.
type BootstrapAdmin struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      domain.UserRole
}

// EnsureInitialAdmins creates the configured admin accounts if they do
// not already exist. Entries with missing credentials are skipped.
func EnsureInitialAdmins(ctx context.Context, userRepo domain.UserRepository, passwordSvc domain.PasswordService, admins []BootstrapAdmin, logger *zap.SugaredLogger) error {
	for _, admin := range admins {
		if admin.Email == "" || admin.Password == "" {
			continue
		}

		_, err := userRepo.FindByEmail(ctx, admin.Email)
		if err == nil {
			logger.Infow("bootstrap admin already exists, skipping", "role", admin.Role)
			continue
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			return err
		}

		hashed, err := passwordSvc.Hash(admin.Password)
		if err != nil {
			return err
		}

		user := &domain.User{
			FirstName:    admin.FirstName,
			LastName:     admin.LastName,
			Email:        admin.Email,
			PasswordHash: hashed,
			Img:          GravatarURL(admin.Email),
			Role:         admin.Role,
			Status:       domain.StatusActive,
		}

		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		logger.Infow("bootstrap admin created", "role", admin.Role)
	}
	return nil
}
