package e2e

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
)

func TestTwoFactorLoginFlow(t *testing.T) {
	suite := SetupTestSuite(t)
	suite.CreateUser(t, "jane@example.com", "password123", domain.RoleAdmin, domain.StatusActive)

	// Step 1: credentials check dispatches a code by email.
	w := suite.PostJSON(t, "/auth/login", `{"email":"jane@example.com","password":"password123"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}
	if body := Body(t, w); body["step"] != "verification_required" {
		t.Fatalf("expected verification_required step, got %v", body)
	}

	code := suite.LastCode(t)
	if len(code) != 6 {
		t.Fatalf("expected a 6-digit code, got %q", code)
	}

	// Step 2: the emailed code completes the login.
	w = suite.PostJSON(t, "/auth/verify-login-code", `{"email":"jane@example.com","code":"`+code+`"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("verification failed: %d %s", w.Code, w.Body.String())
	}
	body := Body(t, w)
	token, _ := body["token"].(string)
	refreshToken, _ := body["refreshToken"].(string)
	if token == "" || refreshToken == "" {
		t.Fatal("expected both tokens in the verification response")
	}

	// A login session row exists for the user.
	sessions, err := listSessions(suite)
	if err != nil {
		t.Fatalf("failed to read sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 login session, got %d", len(sessions))
	}

	// Step 3: the access token works against /auth/me.
	w = suite.Get(t, "/auth/me", token)
	if w.Code != http.StatusOK {
		t.Fatalf("me failed: %d %s", w.Code, w.Body.String())
	}
	if body := Body(t, w); body["message"] != "Token valid" {
		t.Errorf("unexpected body %v", body)
	}

	// Step 4: the refresh token mints a fresh access token.
	w = suite.PostJSON(t, "/auth/refresh-token", `{"refreshToken":"`+refreshToken+`"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("refresh failed: %d %s", w.Code, w.Body.String())
	}
	if newToken, _ := Body(t, w)["token"].(string); newToken == "" {
		t.Error("expected a new access token")
	}

	// The code was consumed: replaying it fails.
	w = suite.PostJSON(t, "/auth/verify-login-code", `{"email":"jane@example.com","code":"`+code+`"}`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected replayed code to fail with 400, got %d", w.Code)
	}
}

func listSessions(suite *TestSuite) ([]map[string]any, error) {
	var rows []map[string]any
	err := suite.DB.Table("login_history").Find(&rows).Error
	return rows, err
}

func TestLoginRejectsBadCredentialsAndInactive(t *testing.T) {
	suite := SetupTestSuite(t)
	suite.CreateUser(t, "jane@example.com", "password123", domain.RoleAdmin, domain.StatusActive)
	suite.CreateUser(t, "dormant@example.com", "password123", domain.RoleUser, domain.StatusInactive)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{name: "wrong password", body: `{"email":"jane@example.com","password":"nope"}`, expectedStatus: http.StatusBadRequest},
		{name: "unknown email", body: `{"email":"ghost@example.com","password":"password123"}`, expectedStatus: http.StatusBadRequest},
		{name: "inactive account", body: `{"email":"dormant@example.com","password":"password123"}`, expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := suite.PostJSON(t, "/auth/login", tt.body, "")
			if w.Code != tt.expectedStatus {
				t.Errorf("expected %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}

	if len(suite.Mailer.Sent()) != 0 {
		t.Error("expected no emails for rejected logins")
	}
}

func TestResendRateLimit(t *testing.T) {
	suite := SetupTestSuite(t)
	suite.CreateUser(t, "jane@example.com", "password123", domain.RoleAdmin, domain.StatusActive)

	w := suite.PostJSON(t, "/auth/login", `{"email":"jane@example.com","password":"password123"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d", w.Code)
	}
	firstCode := suite.LastCode(t)

	// The initial send counts as attempt one; two resends stay inside
	// the limit of three.
	for i := 0; i < 2; i++ {
		w = suite.PostJSON(t, "/auth/resend-code", `{"email":"jane@example.com"}`, "")
		if w.Code != http.StatusOK {
			t.Fatalf("resend %d failed: %d %s", i+1, w.Code, w.Body.String())
		}
		if got := suite.LastCode(t); got != firstCode {
			t.Fatalf("expected the same code on resend, got %q then %q", firstCode, got)
		}
	}

	// The next resend breaches the limit.
	w = suite.PostJSON(t, "/auth/resend-code", `{"email":"jane@example.com"}`, "")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d: %s", w.Code, w.Body.String())
	}
	msg, _ := Body(t, w)["message"].(string)
	if !strings.HasPrefix(msg, "Too many attempts. Please wait ") {
		t.Errorf("unexpected rate limit message %q", msg)
	}

	// The live code still verifies.
	w = suite.PostJSON(t, "/auth/verify-login-code", `{"email":"jane@example.com","code":"`+firstCode+`"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("verification after rate limit failed: %d %s", w.Code, w.Body.String())
	}
}

func TestResendWithoutLiveCode(t *testing.T) {
	suite := SetupTestSuite(t)
	suite.CreateUser(t, "jane@example.com", "password123", domain.RoleAdmin, domain.StatusActive)

	w := suite.PostJSON(t, "/auth/resend-code", `{"email":"jane@example.com"}`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if msg, _ := Body(t, w)["message"].(string); !strings.Contains(msg, "log in again") {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestCodeExpiresWithRedisTTL(t *testing.T) {
	suite := SetupTestSuite(t)
	suite.CreateUser(t, "jane@example.com", "password123", domain.RoleAdmin, domain.StatusActive)

	w := suite.PostJSON(t, "/auth/login", `{"email":"jane@example.com","password":"password123"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d", w.Code)
	}
	code := suite.LastCode(t)

	suite.Redis.FastForward(11 * time.Minute)

	w = suite.PostJSON(t, "/auth/verify-login-code", `{"email":"jane@example.com","code":"`+code+`"}`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected expired code to fail with 400, got %d", w.Code)
	}

	// A fresh login mints a new code rather than reusing the dead one.
	w = suite.PostJSON(t, "/auth/login", `{"email":"jane@example.com","password":"password123"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("second login failed: %d", w.Code)
	}
}

func TestDeactivatedUserLosesAccess(t *testing.T) {
	suite := SetupTestSuite(t)
	user := suite.CreateUser(t, "jane@example.com", "password123", domain.RoleAdmin, domain.StatusActive)

	token, err := suite.TokenSvc.GenerateAccessToken(user.ID, string(user.Role), "")
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}

	if w := suite.Get(t, "/auth/me", token); w.Code != http.StatusOK {
		t.Fatalf("expected active user to pass, got %d", w.Code)
	}

	user.Status = domain.StatusInactive
	if err := suite.UserRepo.Update(context.Background(), user); err != nil {
		t.Fatalf("failed to deactivate: %v", err)
	}

	// The JWT is still cryptographically valid but the account check fails.
	if w := suite.Get(t, "/auth/me", token); w.Code != http.StatusForbidden {
		t.Fatalf("expected deactivated user to get 403, got %d", w.Code)
	}
}
