package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
)

func setupCodeRepo(t *testing.T) (domain.VerificationCodeRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewVerificationCodeRepository(client), mr
}

func liveCode(userID string) *domain.VerificationCode {
	now := time.Now()
	return &domain.VerificationCode{
		UserID:         userID,
		Code:           "123456",
		ExpiresAt:      now.Add(10 * time.Minute),
		ResendAttempts: 1,
		LastAttemptAt:  now,
	}
}

func TestVerificationCodeRepository_CreateAndFind(t *testing.T) {
	repo, _ := setupCodeRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, liveCode("user-1"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !created {
		t.Fatal("expected the first code to be created")
	}

	code, err := repo.Find(ctx, "user-1")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if code.Code != "123456" {
		t.Errorf("expected code 123456, got %s", code.Code)
	}
	if code.ResendAttempts != 1 {
		t.Errorf("expected 1 attempt, got %d", code.ResendAttempts)
	}
}

func TestVerificationCodeRepository_CreateIsAtomic(t *testing.T) {
	repo, _ := setupCodeRepo(t)
	ctx := context.Background()

	if created, err := repo.Create(ctx, liveCode("user-1")); err != nil || !created {
		t.Fatalf("first create: created=%v err=%v", created, err)
	}

	loser := liveCode("user-1")
	loser.Code = "999999"
	created, err := repo.Create(ctx, loser)
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if created {
		t.Fatal("expected the second create to lose against the live code")
	}

	// The winner's code is untouched.
	code, err := repo.Find(ctx, "user-1")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if code.Code != "123456" {
		t.Errorf("expected winner's code 123456, got %s", code.Code)
	}
}

func TestVerificationCodeRepository_FindMissing(t *testing.T) {
	repo, _ := setupCodeRepo(t)

	if _, err := repo.Find(context.Background(), "nobody"); !errors.Is(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected ErrCodeNotFound, got %v", err)
	}
}

func TestVerificationCodeRepository_ExpiryEvictsCode(t *testing.T) {
	repo, mr := setupCodeRepo(t)
	ctx := context.Background()

	if _, err := repo.Create(ctx, liveCode("user-1")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	mr.FastForward(11 * time.Minute)

	if _, err := repo.Find(ctx, "user-1"); !errors.Is(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected expired code to be gone, got %v", err)
	}

	// The slot is free for a new code.
	if created, err := repo.Create(ctx, liveCode("user-1")); err != nil || !created {
		t.Fatalf("expected a fresh create after expiry: created=%v err=%v", created, err)
	}
}

func TestVerificationCodeRepository_UpdateKeepsCode(t *testing.T) {
	repo, _ := setupCodeRepo(t)
	ctx := context.Background()

	if _, err := repo.Create(ctx, liveCode("user-1")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	code, err := repo.Find(ctx, "user-1")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}

	code.ResendAttempts = 2
	code.LastAttemptAt = time.Now()
	if err := repo.Update(ctx, code); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	updated, err := repo.Find(ctx, "user-1")
	if err != nil {
		t.Fatalf("find after update failed: %v", err)
	}
	if updated.ResendAttempts != 2 {
		t.Errorf("expected 2 attempts, got %d", updated.ResendAttempts)
	}
	if updated.Code != "123456" {
		t.Errorf("expected the code value to survive the update, got %s", updated.Code)
	}
}

func TestVerificationCodeRepository_Delete(t *testing.T) {
	repo, _ := setupCodeRepo(t)
	ctx := context.Background()

	if _, err := repo.Create(ctx, liveCode("user-1")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Delete(ctx, "user-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.Find(ctx, "user-1"); !errors.Is(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected the code to be consumed, got %v", err)
	}
}
