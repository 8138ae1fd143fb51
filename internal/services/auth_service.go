package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
	"github.com/DOOMSDAY101/MultiQuote-backend/internal/infrastructure/clientinfo"
)

// AuthConfig tunes the two-factor login flow. Code validity and the
// resend window are independent knobs even though they default to the
// same length.
type AuthConfig struct {
	CodeTTL      time.Duration
	ResendWindow time.Duration
	ResendLimit  int
}

// AuthServiceImpl implements domain.AuthService.
type AuthServiceImpl struct {
	userRepo        domain.UserRepository
	codeRepo        domain.VerificationCodeRepository
	sessionRepo     domain.LoginSessionRepository
	passwordSvc     domain.PasswordService
	tokenSvc        domain.TokenService
	notificationSvc domain.NotificationService
	geoResolver     domain.GeoResolver
	config          AuthConfig
	logger          *zap.SugaredLogger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	codeRepo domain.VerificationCodeRepository,
	sessionRepo domain.LoginSessionRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	notificationSvc domain.NotificationService,
	geoResolver domain.GeoResolver,
	config AuthConfig,
	logger *zap.SugaredLogger,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:        userRepo,
		codeRepo:        codeRepo,
		sessionRepo:     sessionRepo,
		passwordSvc:     passwordSvc,
		tokenSvc:        tokenSvc,
		notificationSvc: notificationSvc,
		geoResolver:     geoResolver,
		config:          config,
		logger:          logger,
	}
}

// Initiate implements domain.AuthService. A live code is reused rather
// than rotated, so repeated logins within the validity window keep email
// volume bounded.
func (s *AuthServiceImpl) Initiate(ctx context.Context, email, password string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return domain.ErrInvalidCredentials
	}

	if user.Status != domain.StatusActive {
		return domain.ErrAccountInactive
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return domain.ErrInvalidCredentials
	}

	code, err := s.findOrCreateCode(ctx, user.ID)
	if err != nil {
		return err
	}

	// The code is already persisted; a dispatch failure leaves a
	// retryable state, not an orphaned login.
	if err := s.notificationSvc.SendVerificationCode(user.Email, user.FullName(), code.Code); err != nil {
		s.logger.Errorw("verification code dispatch failed", "user_id", user.ID, "error", err)
		return domain.ErrDispatchFailed
	}

	return nil
}

func (s *AuthServiceImpl) findOrCreateCode(ctx context.Context, userID string) (*domain.VerificationCode, error) {
	code, err := s.codeRepo.Find(ctx, userID)
	if err == nil {
		return code, nil
	}
	if !errors.Is(err, domain.ErrCodeNotFound) {
		return nil, fmt.Errorf("failed to look up verification code: %w", err)
	}

	value, err := generateVerificationCode()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	code = &domain.VerificationCode{
		UserID:         userID,
		Code:           value,
		ExpiresAt:      now.Add(s.config.CodeTTL),
		ResendAttempts: 1,
		LastAttemptAt:  now,
	}

	created, err := s.codeRepo.Create(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to store verification code: %w", err)
	}
	if !created {
		// Lost the race against a concurrent login; use the winner's code.
		code, err = s.codeRepo.Find(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to re-read verification code: %w", err)
		}
	}
	return code, nil
}

// Verify implements domain.AuthService. The code is single use: it is
// deleted before the session is recorded and tokens are minted.
func (s *AuthServiceImpl) Verify(ctx context.Context, email, code string, client domain.ClientInfo) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	record, err := s.codeRepo.Find(ctx, user.ID)
	if err != nil || record.Code != code {
		return nil, domain.ErrInvalidOrExpiredCode
	}

	if err := s.codeRepo.Delete(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to consume verification code: %w", err)
	}

	session, err := s.recordLoginSession(ctx, user.ID, client)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID, string(user.Role), session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokenSvc.GenerateRefreshToken(user.ID, string(user.Role), session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    session.ID,
	}, nil
}

func (s *AuthServiceImpl) recordLoginSession(ctx context.Context, userID string, client domain.ClientInfo) (*domain.LoginSession, error) {
	location := &domain.GeoLocation{}
	if loc, err := s.geoResolver.Resolve(ctx, client.IP); err != nil {
		s.logger.Warnw("geo lookup failed", "ip", client.IP, "error", err)
	} else if loc != nil {
		location = loc
	}

	device := clientinfo.Parse(client.UserAgent)

	session := &domain.LoginSession{
		UserID:     userID,
		IPAddress:  client.IP,
		City:       location.City,
		Region:     location.Region,
		Country:    location.Country,
		Browser:    device.Browser,
		OS:         device.OS,
		DeviceType: device.DeviceType,
		UserAgent:  client.UserAgent,
		LoginTime:  time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to record login session: %w", err)
	}
	return session, nil
}

// Resend implements domain.AuthService. The same live code is
// re-dispatched; without one the caller must restart at Initiate.
func (s *AuthServiceImpl) Resend(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return domain.ErrInvalidCredentials
	}

	if user.Status != domain.StatusActive {
		return domain.ErrAccountInactive
	}

	record, err := s.codeRepo.Find(ctx, user.ID)
	if err != nil {
		return domain.ErrCodeExpired
	}

	now := time.Now()
	if !record.LastAttemptAt.IsZero() && now.Sub(record.LastAttemptAt) < s.config.ResendWindow {
		if record.ResendAttempts >= s.config.ResendLimit {
			return &domain.TooManyAttemptsError{Wait: s.config.ResendWindow - now.Sub(record.LastAttemptAt)}
		}
		record.ResendAttempts++
	} else {
		record.ResendAttempts = 1
	}
	record.LastAttemptAt = now

	if err := s.codeRepo.Update(ctx, record); err != nil {
		return fmt.Errorf("failed to update verification code: %w", err)
	}

	if err := s.notificationSvc.SendVerificationCode(user.Email, user.FullName(), record.Code); err != nil {
		s.logger.Errorw("verification code dispatch failed", "user_id", user.ID, "error", err)
		return domain.ErrDispatchFailed
	}

	return nil
}

// RefreshAccessToken implements domain.AuthService. The refresh token is
// not rotated and the session correlation carries over to the new access
// token.
func (s *AuthServiceImpl) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokenSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", domain.ErrInvalidRefreshToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil || user.Status != domain.StatusActive {
		return "", domain.ErrUserInactiveOrMissing
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID, string(user.Role), claims.SessionID)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessToken, nil
}

// VerifyAccessToken implements domain.AuthService
func (s *AuthServiceImpl) VerifyAccessToken(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokenSvc.ValidateAccessToken(token)
	if err != nil {
		return nil, domain.ErrInvalidAccessToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil || user.Status != domain.StatusActive {
		return nil, domain.ErrUserInactiveOrMissing
	}

	return user, nil
}
