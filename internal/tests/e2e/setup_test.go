package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
	httpx "github.com/DOOMSDAY101/MultiQuote-backend/internal/http"
	"github.com/DOOMSDAY101/MultiQuote-backend/internal/http/handlers"
	"github.com/DOOMSDAY101/MultiQuote-backend/internal/http/middleware"
	"github.com/DOOMSDAY101/MultiQuote-backend/internal/infrastructure/auth"
	"github.com/DOOMSDAY101/MultiQuote-backend/internal/infrastructure/repositories"
	"github.com/DOOMSDAY101/MultiQuote-backend/internal/mocks"
	"github.com/DOOMSDAY101/MultiQuote-backend/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testCasbinModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// TestSuite wires the full HTTP stack against sqlite and an embedded
// Redis, with outbound email captured in memory.
type TestSuite struct {
	Router      *gin.Engine
	DB          *gorm.DB
	Redis       *miniredis.Miniredis
	Mailer      *mocks.MockNotificationService
	AuditRepo   domain.AuditLogRepository
	UserRepo    domain.UserRepository
	SessionRepo domain.LoginSessionRepository
	TokenSvc    domain.TokenService
	PasswordSvc domain.PasswordService
}

func SetupTestSuite(t *testing.T) *TestSuite {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&repositories.DBUser{}, &repositories.DBLoginSession{}, &repositories.DBAuditLog{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	cas, err := auth.NewCasbinServiceFromText(db, testCasbinModel)
	if err != nil {
		t.Fatalf("failed to build casbin enforcer: %v", err)
	}
	for _, role := range []string{"role_SUPER_ADMIN", "role_ADMIN"} {
		cas.E.AddPolicy(role, "/auth/create-user", "POST")
		cas.E.AddPolicy(role, "/auth/edit-user/*", "PATCH")
		cas.E.AddPolicy(role, "/auth/user/*", "PATCH")
		cas.E.AddPolicy(role, "/audit-logs", "GET")
	}

	log := zap.NewNop().Sugar()
	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService("e2e-access-secret", "e2e-refresh-secret", "multiquote-e2e", time.Hour, 360*time.Hour)
	mailer := mocks.NewMockNotificationService()

	userRepo := repositories.NewUserRepository(db)
	codeRepo := repositories.NewVerificationCodeRepository(redisClient)
	sessionRepo := repositories.NewLoginSessionRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)

	authSvc := services.NewAuthService(userRepo, codeRepo, sessionRepo, passwordSvc, tokenSvc, mailer, mocks.NewMockGeoResolver(), services.AuthConfig{
		CodeTTL:      10 * time.Minute,
		ResendWindow: 10 * time.Minute,
		ResendLimit:  3,
	}, log)
	userSvc := services.NewUserService(userRepo, passwordSvc, mailer, mocks.NewMockFileStorage(), log)

	router := httpx.BuildRouter(httpx.RouterDeps{
		AuthHandlers:  handlers.NewAuthHandlers(authSvc),
		UserHandlers:  handlers.NewUserHandlers(userSvc),
		AuditHandlers: handlers.NewAuditHandlers(auditRepo),
		AuthMW:        middleware.NewAuthMW(authSvc),
		CasbinMW:      middleware.NewCasbinMW(cas.E),
		AuditMW:       middleware.NewAuditMW(auditRepo, tokenSvc, log),
	})

	return &TestSuite{
		Router:      router,
		DB:          db,
		Redis:       mr,
		Mailer:      mailer,
		AuditRepo:   auditRepo,
		UserRepo:    userRepo,
		SessionRepo: sessionRepo,
		TokenSvc:    tokenSvc,
		PasswordSvc: passwordSvc,
	}
}

// CreateUser seeds an account directly through the repository.
func (s *TestSuite) CreateUser(t *testing.T, email, password string, role domain.UserRole, status domain.UserStatus) *domain.User {
	t.Helper()

	hash, err := s.PasswordSvc.Hash(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &domain.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       status,
	}
	if err := s.UserRepo.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

// PostJSON performs a JSON POST against the suite router.
func (s *TestSuite) PostJSON(t *testing.T, path, body, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

// Get performs a GET against the suite router.
func (s *TestSuite) Get(t *testing.T, path, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

// Patch performs a PATCH against the suite router.
func (s *TestSuite) Patch(t *testing.T, path, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPatch, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

// Body decodes a JSON response body.
func Body(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v: %s", err, w.Body.String())
	}
	return body
}

// LastCode returns the most recently emailed verification code.
func (s *TestSuite) LastCode(t *testing.T) string {
	t.Helper()

	sent := s.Mailer.Sent()
	if len(sent) == 0 {
		t.Fatal("no emails dispatched")
	}
	return sent[len(sent)-1].Code
}

// WaitForAuditEntries blocks until the async audit writer has persisted
// at least n rows.
func (s *TestSuite) WaitForAuditEntries(t *testing.T, n int) []domain.AuditLogEntry {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		entries, total, err := s.AuditRepo.List(context.Background(), domain.AuditLogFilter{Limit: 100})
		if err != nil {
			t.Fatalf("failed to list audit entries: %v", err)
		}
		if int(total) >= n {
			return entries
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d audit entries", n)
	return nil
}
