package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
)

// Context keys set by the middleware chain.
const (
	ContextUserID         = "user_id"
	ContextUserRole       = "user_role"
	ContextLoginSessionID = "login_session_id"
)

// AuthMW wraps the auth service for the strict authentication middleware.
type AuthMW struct {
	authSvc domain.AuthService
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(authSvc domain.AuthService) *AuthMW {
	return &AuthMW{authSvc: authSvc}
}

// BearerToken extracts the token from the Authorization header or the
// token cookie. Empty when absent.
func BearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	if cookie, err := c.Cookie("token"); err == nil {
		return cookie
	}
	return ""
}

// Required returns middleware that rejects requests without a valid
// access token belonging to an active user, and stores the caller's
// identity in the context.
func (mw *AuthMW) Required() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			c.Abort()
			return
		}

		user, err := mw.authSvc.VerifyAccessToken(c.Request.Context(), token)
		if err != nil {
			switch err {
			case domain.ErrUserInactiveOrMissing:
				c.JSON(http.StatusForbidden, gin.H{"message": "Your account is currently inactive"})
			default:
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			}
			c.Abort()
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserRole, string(user.Role))

		c.Next()
	})
}
