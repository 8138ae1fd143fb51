package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
	"github.com/DOOMSDAY101/MultiQuote-backend/internal/http/middleware"
)

// AuthHandlers handles authentication endpoints
type AuthHandlers struct {
	authService domain.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authService domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// LoginRequest represents a credential check request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// VerifyRequest represents a verification code submission
type VerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

// ResendRequest asks for the live code to be re-dispatched
type ResendRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Login checks credentials and dispatches a verification code.
// POST /auth/login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		return
	}

	if err := h.authService.Initiate(c.Request.Context(), req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		case errors.Is(err, domain.ErrAccountInactive):
			c.JSON(http.StatusForbidden, gin.H{"message": "Your account is currently inactive"})
		case errors.Is(err, domain.ErrDispatchFailed):
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send verification code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"step":    "verification_required",
		"message": "Verification code sent to your email",
	})
}

// VerifyLoginCode consumes a verification code and returns the token pair.
// POST /auth/verify-login-code
func (h *AuthHandlers) VerifyLoginCode(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		return
	}

	client := domain.ClientInfo{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	result, err := h.authService.Verify(c.Request.Context(), req.Email, req.Code, client)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidOrExpiredCode), errors.Is(err, domain.ErrCodeNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired verification code"})
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		case errors.Is(err, domain.ErrAccountInactive):
			c.JSON(http.StatusForbidden, gin.H{"message": "Your account is currently inactive"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}

	// Correlate the audit record for this request with the new session.
	c.Set(middleware.ContextLoginSessionID, result.SessionID)

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"token":        result.AccessToken,
		"refreshToken": result.RefreshToken,
		"user":         result.User.Public(),
	})
}

// ResendCode re-dispatches the live verification code.
// POST /auth/resend-code
func (h *AuthHandlers) ResendCode(c *gin.Context) {
	var req ResendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		return
	}

	err := h.authService.Resend(c.Request.Context(), req.Email)
	if err != nil {
		var tooMany *domain.TooManyAttemptsError
		switch {
		case errors.As(err, &tooMany):
			c.JSON(http.StatusTooManyRequests, gin.H{
				"message": fmt.Sprintf("Too many attempts. Please wait %d minutes.", tooMany.WaitMinutes()),
			})
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email"})
		case errors.Is(err, domain.ErrAccountInactive):
			c.JSON(http.StatusForbidden, gin.H{"message": "Account is inactive"})
		case errors.Is(err, domain.ErrCodeExpired), errors.Is(err, domain.ErrCodeNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Verification code expired. Please log in again to request a new one."})
		case errors.Is(err, domain.ErrDispatchFailed):
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send verification code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"step":    "verification_required",
		"message": "Verification code resent",
	})
}

// RefreshToken mints a new access token from a refresh token.
// POST /auth/refresh-token
func (h *AuthHandlers) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		return
	}

	token, err := h.authService.RefreshAccessToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRefreshToken):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired refresh token"})
		case errors.Is(err, domain.ErrUserInactiveOrMissing):
			c.JSON(http.StatusForbidden, gin.H{"message": "Your account is currently inactive"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Token refreshed successfully",
		"token":   token,
	})
}

// Me introspects the bearer token and returns the caller's profile.
// GET /auth/me
func (h *AuthHandlers) Me(c *gin.Context) {
	token := middleware.BearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	user, err := h.authService.VerifyAccessToken(c.Request.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserInactiveOrMissing):
			c.JSON(http.StatusForbidden, gin.H{"message": "Your account is currently inactive"})
		default:
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Token valid",
		"user":    user.Public(),
	})
}
