package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
)

// VerificationCodeRepositoryImpl implements domain.VerificationCodeRepository
// using Redis. The key TTL tracks the code expiry, and SetNX makes creation
// atomic: two concurrent logins for the same user cannot mint two live codes.
type VerificationCodeRepositoryImpl struct {
	client *redis.Client
	prefix string
}

// NewVerificationCodeRepository creates a new verification code repository
func NewVerificationCodeRepository(client *redis.Client) domain.VerificationCodeRepository {
	return &VerificationCodeRepositoryImpl{
		client: client,
		prefix: "logincode:",
	}
}

func (r *VerificationCodeRepositoryImpl) key(userID string) string {
	return r.prefix + userID
}

// Create implements domain.VerificationCodeRepository. It reports
// created=false without error when a live code already exists.
func (r *VerificationCodeRepositoryImpl) Create(ctx context.Context, code *domain.VerificationCode) (bool, error) {
	data, err := json.Marshal(code)
	if err != nil {
		return false, fmt.Errorf("failed to marshal verification code: %w", err)
	}

	ttl := time.Until(code.ExpiresAt)
	if ttl <= 0 {
		return false, fmt.Errorf("verification code already expired")
	}

	created, err := r.client.SetNX(ctx, r.key(code.UserID), data, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to store verification code: %w", err)
	}
	return created, nil
}

// Find implements domain.VerificationCodeRepository
func (r *VerificationCodeRepositoryImpl) Find(ctx context.Context, userID string) (*domain.VerificationCode, error) {
	data, err := r.client.Get(ctx, r.key(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrCodeNotFound
		}
		return nil, err
	}

	var code domain.VerificationCode
	if err := json.Unmarshal([]byte(data), &code); err != nil {
		return nil, fmt.Errorf("failed to unmarshal verification code: %w", err)
	}

	if code.Expired(time.Now()) {
		r.client.Del(ctx, r.key(userID))
		return nil, domain.ErrCodeNotFound
	}

	return &code, nil
}

// Update rewrites the record, preserving the remaining code lifetime.
func (r *VerificationCodeRepositoryImpl) Update(ctx context.Context, code *domain.VerificationCode) error {
	data, err := json.Marshal(code)
	if err != nil {
		return fmt.Errorf("failed to marshal verification code: %w", err)
	}

	ttl := time.Until(code.ExpiresAt)
	if ttl <= 0 {
		return domain.ErrCodeNotFound
	}

	return r.client.Set(ctx, r.key(code.UserID), data, ttl).Err()
}

// Delete implements domain.VerificationCodeRepository
func (r *VerificationCodeRepositoryImpl) Delete(ctx context.Context, userID string) error {
	return r.client.Del(ctx, r.key(userID)).Err()
}
