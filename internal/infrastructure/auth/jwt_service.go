package auth

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
)

const (
	tokenKindAccess  = "access"
	tokenKindRefresh = "refresh"
)

// JWTServiceImpl implements domain.TokenService. Access and refresh
// tokens are signed with distinct secrets and carry an explicit kind
// claim, so neither verifies as the other.
type JWTServiceImpl struct {
	accessSecret    []byte
	refreshSecret   []byte
	issuer          string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewJWTService creates a new JWT service. Secrets are constructor
// parameters, never package state.
func NewJWTService(accessSecret, refreshSecret, issuer string, accessTTL, refreshTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		accessSecret:    []byte(accessSecret),
		refreshSecret:   []byte(refreshSecret),
		issuer:          issuer,
		accessTokenTTL:  accessTTL,
		refreshTokenTTL: refreshTTL,
	}
}

// generateJTI creates a unique JWT ID
func (j *JWTServiceImpl) generateJTI() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

func (j *JWTServiceImpl) sign(userID, role, sessionID, kind string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    userID,
		"role":       role,
		"session_id": sessionID,
		"typ":        kind,
		"iss":        j.issuer,
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
		"jti":        j.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// GenerateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) GenerateAccessToken(userID, role, sessionID string) (string, error) {
	return j.sign(userID, role, sessionID, tokenKindAccess, j.accessSecret, j.accessTokenTTL)
}

// GenerateRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) GenerateRefreshToken(userID, role, sessionID string) (string, error) {
	return j.sign(userID, role, sessionID, tokenKindRefresh, j.refreshSecret, j.refreshTokenTTL)
}

// ValidateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateAccessToken(tokenString string) (*domain.TokenClaims, error) {
	return j.validateToken(tokenString, tokenKindAccess, j.accessSecret, domain.ErrInvalidAccessToken)
}

// ValidateRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateRefreshToken(tokenString string) (*domain.TokenClaims, error) {
	return j.validateToken(tokenString, tokenKindRefresh, j.refreshSecret, domain.ErrInvalidRefreshToken)
}

// validateToken fails closed: any signature, expiry or shape problem
// yields the typed sentinel, never a partially trusted decode.
func (j *JWTServiceImpl) validateToken(tokenString, kind string, secret []byte, sentinel error) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, sentinel
		}
		return secret, nil
	})

	if err != nil || !token.Valid {
		return nil, sentinel
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, sentinel
	}

	if typ, _ := claims["typ"].(string); typ != kind {
		return nil, sentinel
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, sentinel
	}

	role, ok := claims["role"].(string)
	if !ok {
		return nil, sentinel
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, sentinel
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, sentinel
	}

	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, sentinel
	}

	tokenClaims := &domain.TokenClaims{
		UserID:    userID,
		Role:      role,
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}

	if sessionID, ok := claims["session_id"].(string); ok {
		tokenClaims.SessionID = sessionID
	}

	return tokenClaims, nil
}
