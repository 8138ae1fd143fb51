package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
	"github.com/DOOMSDAY101/MultiQuote-backend/internal/mocks"
)

func newAuditHandlersRouter(t *testing.T, repo domain.AuditLogRepository) *gin.Engine {
	t.Helper()

	h := NewAuditHandlers(repo)
	r := gin.New()
	r.GET("/audit-logs", h.List)
	return r
}

func TestAuditHandlers_List(t *testing.T) {
	repo := mocks.NewMockAuditLogRepository()
	var captured domain.AuditLogFilter
	repo.ListFunc = func(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLogEntry, int64, error) {
		captured = filter
		return []domain.AuditLogEntry{
			{
				AuditLog: domain.AuditLog{
					ID: "log-1", Action: "Attempted Login", Method: "POST",
					RequestPayload: "{}", ResponsePayload: "{}", ResponseLength: 1,
					StatusCode: 200, IPAddress: "203.0.113.7", UserRole: "ADMIN",
					UserID: "user-1", Success: true, CreatedAt: time.Now(),
				},
				LoginSession: &domain.LoginSession{ID: "session-42", Browser: "Firefox", OS: "Linux", DeviceType: "desktop", LoginTime: time.Now()},
			},
			{
				AuditLog: domain.AuditLog{
					ID: "log-2", Action: "Attempted Login", Method: "POST",
					RequestPayload: "{}", ResponsePayload: "{}",
					StatusCode: 400, IPAddress: "203.0.113.8", UserRole: "unknown",
					CreatedAt: time.Now(),
				},
			},
		}, 41, nil
	}

	r := newAuditHandlersRouter(t, repo)
	req := httptest.NewRequest(http.MethodGet, "/audit-logs?action=login&userId=user-1&success=true&page=2&limit=20&ipAddress=203.0", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if captured.Action != "login" || captured.UserID != "user-1" || captured.IPAddress != "203.0" {
		t.Errorf("unexpected filter %+v", captured)
	}
	if captured.Success == nil || !*captured.Success {
		t.Error("expected success filter to be parsed")
	}
	if captured.Page != 2 || captured.Limit != 20 {
		t.Errorf("expected page 2 limit 20, got %d/%d", captured.Page, captured.Limit)
	}

	body := decodeBody(t, w)
	pagination, _ := body["pagination"].(map[string]any)
	if pagination == nil {
		t.Fatalf("missing pagination in %v", body)
	}
	if pagination["totalRecords"] != float64(41) {
		t.Errorf("expected totalRecords 41, got %v", pagination["totalRecords"])
	}
	if pagination["totalPages"] != float64(3) {
		t.Errorf("expected totalPages 3, got %v", pagination["totalPages"])
	}
	if pagination["currentPage"] != float64(2) {
		t.Errorf("expected currentPage 2, got %v", pagination["currentPage"])
	}

	data, _ := body["data"].([]any)
	if len(data) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(data))
	}
	first, _ := data[0].(map[string]any)
	if first["id"] != "log-1" {
		t.Errorf("unexpected first row %v", first)
	}
	if session, ok := first["loginSession"].(map[string]any); !ok || session["browser"] != "Firefox" {
		t.Errorf("expected joined session, got %v", first["loginSession"])
	}
	second, _ := data[1].(map[string]any)
	if _, present := second["loginSession"]; present {
		t.Error("expected loginSession omitted for uncorrelated entries")
	}
}

func TestAuditHandlers_ListDefaults(t *testing.T) {
	repo := mocks.NewMockAuditLogRepository()
	var captured domain.AuditLogFilter
	repo.ListFunc = func(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLogEntry, int64, error) {
		captured = filter
		return nil, 0, nil
	}

	r := newAuditHandlersRouter(t, repo)
	req := httptest.NewRequest(http.MethodGet, "/audit-logs", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if captured.Page != 1 || captured.Limit != 20 {
		t.Errorf("expected default page 1 limit 20, got %d/%d", captured.Page, captured.Limit)
	}
	if captured.Success != nil {
		t.Error("expected no success filter by default")
	}

	body := decodeBody(t, w)
	if data, ok := body["data"].([]any); !ok || len(data) != 0 {
		t.Errorf("expected an empty data array, got %v", body["data"])
	}
}

func TestAuditHandlers_ListRejectsBadSuccessValue(t *testing.T) {
	repo := mocks.NewMockAuditLogRepository()
	repo.ListFunc = func(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLogEntry, int64, error) {
		t.Error("repository must not be queried for an invalid filter")
		return nil, 0, nil
	}

	r := newAuditHandlersRouter(t, repo)
	req := httptest.NewRequest(http.MethodGet, "/audit-logs?success=maybe", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestAuditHandlers_ListClampsOversizedLimit(t *testing.T) {
	repo := mocks.NewMockAuditLogRepository()
	var captured domain.AuditLogFilter
	repo.ListFunc = func(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLogEntry, int64, error) {
		captured = filter
		return nil, 0, nil
	}

	r := newAuditHandlersRouter(t, repo)
	req := httptest.NewRequest(http.MethodGet, "/audit-logs?limit=5000&page=-3", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if captured.Limit != 20 || captured.Page != 1 {
		t.Errorf("expected clamped limit 20 page 1, got %d/%d", captured.Limit, captured.Page)
	}
}
