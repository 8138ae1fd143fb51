package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
	"github.com/DOOMSDAY101/MultiQuote-backend/internal/http/handlers"
	"github.com/DOOMSDAY101/MultiQuote-backend/internal/http/middleware"
)

// Router dependencies
type RouterDeps struct {
	AuthHandlers  *handlers.AuthHandlers
	UserHandlers  *handlers.UserHandlers
	AuditHandlers *handlers.AuditHandlers
	AuthMW        *middleware.AuthMW
	CasbinMW      *middleware.CasbinMW
	AuditMW       *middleware.AuditMW
}

// BuildRouter wires all routes with their middleware chains.
func BuildRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/login", deps.AuditMW.Record(domain.ActionLoginAttempt), deps.AuthHandlers.Login)
		auth.POST("/verify-login-code", deps.AuditMW.Record(domain.ActionVerifyEmailToken), deps.AuthHandlers.VerifyLoginCode)
		auth.POST("/resend-code", deps.AuditMW.Record(domain.ActionLoginAttempt), deps.AuthHandlers.ResendCode)
		auth.POST("/refresh-token", deps.AuthHandlers.RefreshToken)
		auth.GET("/me", deps.AuthHandlers.Me)

		admin := auth.Group("")
		admin.Use(deps.AuthMW.Required(), deps.CasbinMW.Enforce())
		{
			admin.POST("/create-user", deps.AuditMW.Record(domain.ActionCreateUser), deps.UserHandlers.CreateUser)
			admin.PATCH("/edit-user/:id", deps.AuditMW.Record(domain.ActionEditUser), deps.UserHandlers.EditUser)
			admin.PATCH("/user/:id/toggle-status", deps.AuditMW.Record(domain.ActionToggleUserStatus), deps.UserHandlers.ToggleUserStatus)
		}
	}

	r.GET("/audit-logs", deps.AuthMW.Required(), deps.CasbinMW.Enforce(), deps.AuditHandlers.List)

	return r
}
