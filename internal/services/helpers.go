package services

import (
	"crypto/md5"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
)

var phonePattern = regexp.MustCompile(`^\+?\d+$`)

// FormatPhoneNumber normalizes a phone number to +234 E.164 form. Input
// must be numeric with an optional leading '+'.
func FormatPhoneNumber(phone string) (string, error) {
	if !phonePattern.MatchString(phone) {
		return "", domain.ErrInvalidPhoneNumber
	}

	phone = strings.TrimPrefix(phone, "+")

	switch {
	case strings.HasPrefix(phone, "0"):
		return "+234" + phone[1:], nil
	case strings.HasPrefix(phone, "234"):
		return "+234" + phone[3:], nil
	default:
		return "+234" + phone, nil
	}
}

// GravatarURL returns the identicon avatar used when no image is uploaded.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?d=identicon", hex.EncodeToString(sum[:]))
}

const passwordCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*()_+~"

// GenerateRandomPassword produces the initial password for admin-created
// accounts, delivered to the user by email.
func GenerateRandomPassword(length int) (string, error) {
	out := make([]byte, length)
	max := big.NewInt(int64(len(passwordCharset)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		out[i] = passwordCharset[n.Int64()]
	}
	return string(out), nil
}

// generateVerificationCode returns a uniformly random 6-digit code.
func generateVerificationCode() (string, error) {
	digits := make([]byte, 6)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
