package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
)

// RedactionMarker replaces sensitive values before audit persistence.
const RedactionMarker = "[REDACTED]"

const anonymousRole = "unknown"

// AuditMW captures one sanitized audit record per request. Persistence
// happens after the response is flushed and never blocks or fails the
// audited request.
type AuditMW struct {
	auditRepo domain.AuditLogRepository
	tokenSvc  domain.TokenService
	logger    *zap.SugaredLogger
}

// NewAuditMW creates new audit middleware
func NewAuditMW(auditRepo domain.AuditLogRepository, tokenSvc domain.TokenService, logger *zap.SugaredLogger) *AuditMW {
	return &AuditMW{
		auditRepo: auditRepo,
		tokenSvc:  tokenSvc,
		logger:    logger,
	}
}

// bodyCaptureWriter duplicates everything written to the response so the
// audit record can see the emitted payload.
type bodyCaptureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Record returns middleware that audits every request through the route
// under the given action label.
func (mw *AuditMW) Record(action string) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		userID, userRole := mw.attribute(c)

		rec := &auditRecorder{
			mw: mw,
			entry: domain.AuditLog{
				Action:         action,
				Method:         c.Request.Method,
				RequestPayload: marshalPayload(mw.captureRequest(c)),
				IPAddress:      c.ClientIP(),
				UserAgent:      c.Request.UserAgent(),
				UserID:         userID,
				UserRole:       userRole,
			},
		}

		writer := &bodyCaptureWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		rec.entry.LoginSessionID = c.GetString(ContextLoginSessionID)

		status := writer.Status()
		if writer.buf.Len() > 0 {
			rec.Emit(writer.buf.Bytes(), status)
		} else {
			rec.Finish(status)
		}
	})
}

// attribute decodes the bearer token on a best-effort basis. A missing
// or invalid token leaves the request attributed as anonymous; it never
// blocks the request.
func (mw *AuditMW) attribute(c *gin.Context) (string, string) {
	token := BearerToken(c)
	if token == "" {
		return "", anonymousRole
	}
	claims, err := mw.tokenSvc.ValidateAccessToken(token)
	if err != nil {
		return "", anonymousRole
	}
	role := claims.Role
	if role == "" {
		role = anonymousRole
	}
	return claims.UserID, role
}

// captureRequest gathers path params, query and a JSON body (when
// present) and redacts credential fields.
func (mw *AuditMW) captureRequest(c *gin.Context) map[string]any {
	params := map[string]any{}
	for _, p := range c.Params {
		params[p.Key] = p.Value
	}

	query := map[string]any{}
	for k, v := range c.Request.URL.Query() {
		if len(v) == 1 {
			query[k] = v[0]
		} else {
			query[k] = v
		}
	}

	var body any
	if c.Request.Body != nil && strings.Contains(c.ContentType(), "application/json") {
		raw, err := io.ReadAll(c.Request.Body)
		if err == nil {
			c.Request.Body = io.NopCloser(bytes.NewReader(raw))
			var parsed map[string]any
			if json.Unmarshal(raw, &parsed) == nil {
				body = parsed
			}
		}
	}

	return sanitizeRequestPayload(map[string]any{
		"params": params,
		"query":  query,
		"body":   body,
	})
}

func marshalPayload(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// auditRecorder writes at most one audit row per request no matter which
// emission path fires first.
type auditRecorder struct {
	mw    *AuditMW
	once  sync.Once
	entry domain.AuditLog
}

// Emit records the intercepted response body.
func (r *auditRecorder) Emit(body []byte, status int) {
	r.once.Do(func() {
		var parsed any
		if err := json.Unmarshal(body, &parsed); err != nil {
			r.entry.ResponsePayload = RedactionMarker
			r.entry.ResponseLength = 0
		} else {
			sanitized := sanitizeResponsePayload(parsed)
			r.entry.ResponsePayload = marshalPayload(sanitized)
			r.entry.ResponseLength = responseItemCount(sanitized)
		}
		r.write(status)
	})
}

// Finish is the fallback for requests that finished without a captured
// response body.
func (r *auditRecorder) Finish(status int) {
	r.once.Do(func() {
		r.entry.ResponsePayload = marshalPayload(gin.H{"message": "Unhandled error or non-2xx response"})
		r.entry.ResponseLength = 1
		r.write(status)
	})
}

func (r *auditRecorder) write(status int) {
	r.entry.StatusCode = status
	r.entry.Success = status >= 200 && status < 400
	r.entry.CreatedAt = time.Now()

	entry := r.entry
	mw := r.mw
	// Fire and forget: the client response never waits on the audit row,
	// and a persistence fault is logged and swallowed.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mw.auditRepo.Create(ctx, &entry); err != nil {
			mw.logger.Errorw("audit log write failed", "action", entry.Action, "error", err)
		}
	}()
}

// sanitizeRequestPayload redacts values under the credential field names
// at any depth of the captured request.
func sanitizeRequestPayload(payload map[string]any) map[string]any {
	sanitized, _ := sanitizeValue(payload, func(key string) bool {
		return key == "password" || key == "confirmPassword"
	}).(map[string]any)
	return sanitized
}

// sanitizeResponsePayload redacts any key containing "password" or
// "token", case-insensitively, at every depth of the response.
func sanitizeResponsePayload(v any) any {
	return sanitizeValue(v, func(key string) bool {
		lower := strings.ToLower(key)
		return strings.Contains(lower, "password") || strings.Contains(lower, "token")
	})
}

func sanitizeValue(v any, sensitive func(key string) bool) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if sensitive(k) {
				out[k] = RedactionMarker
				continue
			}
			out[k] = sanitizeValue(item, sensitive)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = sanitizeValue(item, sensitive)
		}
		return out
	default:
		return v
	}
}

// responseItemCount reports how many items the response carried: the
// length of an object's "data" array, or 1 for any other parsed payload.
func responseItemCount(v any) int {
	if m, ok := v.(map[string]any); ok {
		if arr, ok := m["data"].([]any); ok {
			return len(arr)
		}
	}
	return 1
}
