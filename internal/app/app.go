package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
	"github.com/DOOMSDAY101/MultiQuote-backend/internal/config"
	httpx "github.com/DOOMSDAY101/MultiQuote-backend/internal/http"
	"github.com/DOOMSDAY101/MultiQuote-backend/internal/http/handlers"
	"github.com/DOOMSDAY101/MultiQuote-backend/internal/http/middleware"
	"github.com/DOOMSDAY101/MultiQuote-backend/internal/infrastructure/auth"
	"github.com/DOOMSDAY101/MultiQuote-backend/internal/infrastructure/database"
	"github.com/DOOMSDAY101/MultiQuote-backend/internal/infrastructure/geo"
	"github.com/DOOMSDAY101/MultiQuote-backend/internal/infrastructure/notifications"
	"github.com/DOOMSDAY101/MultiQuote-backend/internal/infrastructure/repositories"
	"github.com/DOOMSDAY101/MultiQuote-backend/internal/infrastructure/storage"
	"github.com/DOOMSDAY101/MultiQuote-backend/internal/services"
)

func Run(cfg *config.Config, logger *zap.SugaredLogger) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}
	cas, err := auth.NewCasbinService(gdb, cfg.CasbinModelPath)
	if err != nil {
		return err
	}
	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := rdb.Ping(context.Background()); err != nil {
		return err
	}

	// Infrastructure services
	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	notificationSvc := notifications.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, logger)
	geoResolver := geo.NewIPAPIResolver(cfg.GeoEndpoint)
	fileStorage := storage.NewCloudinaryStorage(cfg.StorageUploadURL, cfg.StoragePreset)

	// Repositories
	userRepo := repositories.NewUserRepository(gdb)
	codeRepo := repositories.NewVerificationCodeRepository(rdb.Client)
	sessionRepo := repositories.NewLoginSessionRepository(gdb)
	auditRepo := repositories.NewAuditLogRepository(gdb)

	// Services
	authSvc := services.NewAuthService(userRepo, codeRepo, sessionRepo, passwordSvc, tokenSvc, notificationSvc, geoResolver, services.AuthConfig{
		CodeTTL:      cfg.CodeTTL,
		ResendWindow: cfg.ResendWindow,
		ResendLimit:  cfg.ResendLimit,
	}, logger)
	userSvc := services.NewUserService(userRepo, passwordSvc, notificationSvc, fileStorage, logger)

	admins := []services.BootstrapAdmin{
		{Email: cfg.SuperAdminEmail, Password: cfg.SuperAdminPassword, FirstName: "Super", LastName: "Admin", Role: domain.RoleSuperAdmin},
		{Email: cfg.AdminEmail, Password: cfg.AdminPassword, FirstName: "System", LastName: "Admin", Role: domain.RoleAdmin},
	}
	if err := services.EnsureInitialAdmins(context.Background(), userRepo, passwordSvc, admins, logger); err != nil {
		return err
	}

	r := httpx.BuildRouter(httpx.RouterDeps{
		AuthHandlers:  handlers.NewAuthHandlers(authSvc),
		UserHandlers:  handlers.NewUserHandlers(userSvc),
		AuditHandlers: handlers.NewAuditHandlers(auditRepo),
		AuthMW:        middleware.NewAuthMW(authSvc),
		CasbinMW:      middleware.NewCasbinMW(cas.E),
		AuditMW:       middleware.NewAuditMW(auditRepo, tokenSvc, logger),
	})

	policies, _ := cas.E.GetPolicy()
	if len(policies) == 0 {
		for _, role := range []string{"role_SUPER_ADMIN", "role_ADMIN"} {
			cas.E.AddPolicy(role, "/auth/create-user", "POST")
			cas.E.AddPolicy(role, "/auth/edit-user/*", "PATCH")
			cas.E.AddPolicy(role, "/auth/user/*", "PATCH")
			cas.E.AddPolicy(role, "/audit-logs", "GET")
		}
		_ = cas.E.SavePolicy()
		logger.Infow("casbin: seeded default policies")
	}

	addr := ":" + cfg.Port
	logger.Infow("listening", "addr", addr)
	return http.ListenAndServe(addr, r)
}
