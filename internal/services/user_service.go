package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
)

const (
	userImageFolder     = "/Multiquote/users"
	userSignatureFolder = "/Multiquote/signatures"

	generatedPasswordLength = 12
)

// UserServiceImpl implements domain.UserService.
type UserServiceImpl struct {
	userRepo        domain.UserRepository
	passwordSvc     domain.PasswordService
	notificationSvc domain.NotificationService
	fileStorage     domain.FileStorage
	logger          *zap.SugaredLogger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	notificationSvc domain.NotificationService,
	fileStorage domain.FileStorage,
	logger *zap.SugaredLogger,
) domain.UserService {
	return &UserServiceImpl{
		userRepo:        userRepo,
		passwordSvc:     passwordSvc,
		notificationSvc: notificationSvc,
		fileStorage:     fileStorage,
		logger:          logger,
	}
}

// CreateUser implements domain.UserService. The account gets a generated
// password which is emailed to the new user, never returned in the API
// response.
func (s *UserServiceImpl) CreateUser(ctx context.Context, in domain.CreateUserInput) (*domain.User, error) {
	if existing, err := s.userRepo.FindByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, domain.ErrEmailInUse
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}

	user := &domain.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Role:      role,
		Status:    domain.StatusActive,
	}

	if in.PhoneNumber != "" {
		formatted, err := FormatPhoneNumber(in.PhoneNumber)
		if err != nil {
			return nil, err
		}
		if existing, err := s.userRepo.FindByPhone(ctx, formatted); err == nil && existing != nil {
			return nil, domain.ErrPhoneInUse
		}
		user.PhoneNumber = formatted
	}

	if len(in.Img) > 0 {
		url, err := s.fileStorage.Upload(ctx, in.Img, userImageFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to upload image: %w", err)
		}
		user.Img = url
	} else {
		user.Img = GravatarURL(in.Email)
	}

	if len(in.Signature) > 0 {
		url, err := s.fileStorage.Upload(ctx, in.Signature, userSignatureFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to upload signature: %w", err)
		}
		user.Signature = url
	}

	plainPassword, err := GenerateRandomPassword(generatedPasswordLength)
	if err != nil {
		return nil, err
	}

	hashed, err := s.passwordSvc.Hash(plainPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hashed

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.notificationSvc.SendGeneratedPassword(user.Email, user.FirstName, plainPassword, true); err != nil {
		s.logger.Errorw("password email dispatch failed", "user_id", user.ID, "error", err)
	}

	return user, nil
}

// EditUser implements domain.UserService. SUPER_ADMIN rows are only
// editable by a SUPER_ADMIN changing the password, and their role is
// never changed.
func (s *UserServiceImpl) EditUser(ctx context.Context, id string, in domain.EditUserInput, actorRole domain.UserRole) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.Role == domain.RoleSuperAdmin && !(actorRole == domain.RoleSuperAdmin && in.Password != "") {
		return nil, domain.ErrForbidden
	}

	if in.Email != "" && in.Email != user.Email {
		if existing, err := s.userRepo.FindByEmail(ctx, in.Email); err == nil && existing != nil {
			return nil, domain.ErrEmailInUse
		}
		user.Email = in.Email
	}

	if in.PhoneNumber != "" {
		formatted, err := FormatPhoneNumber(in.PhoneNumber)
		if err != nil {
			return nil, err
		}
		if formatted != user.PhoneNumber {
			if existing, err := s.userRepo.FindByPhone(ctx, formatted); err == nil && existing != nil && existing.ID != user.ID {
				return nil, domain.ErrPhoneInUse
			}
			user.PhoneNumber = formatted
		}
	}

	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	if in.Role != "" && user.Role != domain.RoleSuperAdmin {
		user.Role = in.Role
	}

	if len(in.Img) > 0 {
		url, err := s.fileStorage.Upload(ctx, in.Img, userImageFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to upload image: %w", err)
		}
		user.Img = url
	}
	if len(in.Signature) > 0 {
		url, err := s.fileStorage.Upload(ctx, in.Signature, userSignatureFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to upload signature: %w", err)
		}
		user.Signature = url
	}

	if in.Password != "" {
		hashed, err := s.passwordSvc.Hash(in.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if in.Password != "" {
		if err := s.notificationSvc.SendGeneratedPassword(user.Email, user.FirstName, in.Password, false); err != nil {
			s.logger.Errorw("password email dispatch failed", "user_id", user.ID, "error", err)
		}
	}

	return user, nil
}

// ToggleStatus implements domain.UserService. SUPER_ADMIN status never
// changes.
func (s *UserServiceImpl) ToggleStatus(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.Role == domain.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}

	if user.Status == domain.StatusActive {
		user.Status = domain.StatusInactive
	} else {
		user.Status = domain.StatusActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}
