package domain

import (
	"errors"
	"fmt"
	"time"
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailInUse         = errors.New("email already in use")
	ErrPhoneInUse         = errors.New("phone number already in use")
	ErrInvalidPhoneNumber = errors.New("invalid phone number format, only numeric values are allowed")
)

// Verification code errors
var (
	ErrInvalidOrExpiredCode = errors.New("invalid or expired verification code")
	ErrCodeExpired          = errors.New("verification code expired, log in again to request a new one")
	ErrCodeNotFound         = errors.New("verification code not found")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("login session not found")
)

// Token errors
var (
	ErrInvalidAccessToken    = errors.New("invalid or expired token")
	ErrInvalidRefreshToken   = errors.New("invalid or expired refresh token")
	ErrUserInactiveOrMissing = errors.New("user inactive or no longer exists")
)

// Authorization errors
var (
	ErrForbidden = errors.New("forbidden")
)

// Infrastructure errors
var (
	ErrDispatchFailed = errors.New("verification email dispatch failed")
	ErrStorageFailure = errors.New("storage failure")
)

// TooManyAttemptsError is returned by resend rate limiting and carries
// the remaining wait before the window reopens.
type TooManyAttemptsError struct {
	Wait time.Duration
}

func (e *TooManyAttemptsError) Error() string {
	return fmt.Sprintf("too many attempts, wait %d minutes", e.WaitMinutes())
}

// WaitMinutes reports the remaining wait rounded up to whole minutes.
func (e *TooManyAttemptsError) WaitMinutes() int {
	return int((e.Wait + time.Minute - 1) / time.Minute)
}
