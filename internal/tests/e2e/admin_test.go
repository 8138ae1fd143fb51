package e2e

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
)

func adminToken(t *testing.T, suite *TestSuite, role domain.UserRole, email string) string {
	t.Helper()

	user := suite.CreateUser(t, email, "password123", role, domain.StatusActive)
	token, err := suite.TokenSvc.GenerateAccessToken(user.ID, string(user.Role), "")
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}
	return token
}

func postMultipart(t *testing.T, suite *TestSuite, path, bearer string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	suite.Router.ServeHTTP(w, req)
	return w
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	suite := SetupTestSuite(t)

	w := suite.Get(t, "/audit-logs", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", w.Code)
	}

	w = suite.Get(t, "/audit-logs", "garbage-token")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with a bad token, got %d", w.Code)
	}
}

func TestAdminRoutesRejectPlainUsers(t *testing.T) {
	suite := SetupTestSuite(t)
	token := adminToken(t, suite, domain.RoleUser, "plain@example.com")

	w := suite.Get(t, "/audit-logs", token)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for USER role, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdminCreateUserEndToEnd(t *testing.T) {
	suite := SetupTestSuite(t)
	token := adminToken(t, suite, domain.RoleAdmin, "admin@example.com")

	w := postMultipart(t, suite, "/auth/create-user", token, map[string]string{
		"firstName":   "Ada",
		"lastName":    "Obi",
		"email":       "ada@example.com",
		"phoneNumber": "08012345678",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", w.Code, w.Body.String())
	}

	created, err := suite.UserRepo.FindByEmail(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("created user not found: %v", err)
	}
	if created.Role != domain.RoleUser {
		t.Errorf("expected default USER role, got %s", created.Role)
	}
	if created.PhoneNumber != "+2348012345678" {
		t.Errorf("expected normalized phone, got %s", created.PhoneNumber)
	}

	// The generated password was emailed and logs the new user in.
	password := suite.LastCode(t)
	w = suite.PostJSON(t, "/auth/login", `{"email":"ada@example.com","password":"`+password+`"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected the generated password to log in, got %d: %s", w.Code, w.Body.String())
	}
}

func TestToggleStatusProtectsSuperAdmin(t *testing.T) {
	suite := SetupTestSuite(t)
	token := adminToken(t, suite, domain.RoleAdmin, "admin@example.com")
	superAdmin := suite.CreateUser(t, "root@example.com", "password123", domain.RoleSuperAdmin, domain.StatusActive)
	target := suite.CreateUser(t, "target@example.com", "password123", domain.RoleUser, domain.StatusActive)

	// SUPER_ADMIN rows are untouchable.
	w := suite.Patch(t, "/auth/user/"+superAdmin.ID+"/toggle-status", token)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for SUPER_ADMIN target, got %d", w.Code)
	}
	unchanged, err := suite.UserRepo.FindByID(context.Background(), superAdmin.ID)
	if err != nil {
		t.Fatalf("failed to re-read super admin: %v", err)
	}
	if unchanged.Status != domain.StatusActive {
		t.Error("expected SUPER_ADMIN status unchanged")
	}

	// Ordinary accounts toggle.
	w = suite.Patch(t, "/auth/user/"+target.ID+"/toggle-status", token)
	if w.Code != http.StatusOK {
		t.Fatalf("toggle failed: %d %s", w.Code, w.Body.String())
	}
	toggled, err := suite.UserRepo.FindByID(context.Background(), target.ID)
	if err != nil {
		t.Fatalf("failed to re-read target: %v", err)
	}
	if toggled.Status != domain.StatusInactive {
		t.Errorf("expected Inactive, got %s", toggled.Status)
	}
}
