package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
)

// AuditHandlers exposes the audit log listing endpoint
type AuditHandlers struct {
	auditRepo domain.AuditLogRepository
}

// NewAuditHandlers creates new audit handlers
func NewAuditHandlers(auditRepo domain.AuditLogRepository) *AuditHandlers {
	return &AuditHandlers{auditRepo: auditRepo}
}

type auditSessionResponse struct {
	ID         string `json:"id"`
	IPAddress  string `json:"ipAddress"`
	City       string `json:"city,omitempty"`
	Region     string `json:"region,omitempty"`
	Country    string `json:"country,omitempty"`
	Browser    string `json:"browser"`
	OS         string `json:"os"`
	DeviceType string `json:"deviceType"`
	LoginTime  string `json:"loginTime"`
}

type auditLogResponse struct {
	ID              string                `json:"id"`
	Action          string                `json:"action"`
	Method          string                `json:"method"`
	RequestPayload  string                `json:"requestPayload"`
	ResponsePayload string                `json:"responsePayload"`
	ResponseLength  int                   `json:"responseLength"`
	StatusCode      int                   `json:"statusCode"`
	IPAddress       string                `json:"ipAddress"`
	UserAgent       string                `json:"userAgent"`
	UserID          string                `json:"userId,omitempty"`
	UserRole        string                `json:"userRole"`
	Success         bool                  `json:"success"`
	CreatedAt       string                `json:"createdAt"`
	LoginSession    *auditSessionResponse `json:"loginSession,omitempty"`
}

// List returns a filtered, paginated page of audit records, newest first.
// GET /audit-logs
func (h *AuditHandlers) List(c *gin.Context) {
	filter := domain.AuditLogFilter{
		Action:    c.Query("action"),
		UserRole:  c.Query("userRole"),
		Method:    c.Query("method"),
		IPAddress: c.Query("ipAddress"),
		UserID:    c.Query("userId"),
	}

	if raw := c.Query("success"); raw != "" {
		success, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"success must be true or false"}})
			return
		}
		filter.Success = &success
	}

	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if filter.Page < 1 {
		filter.Page = 1
	}
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	entries, total, err := h.auditRepo.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	data := make([]auditLogResponse, 0, len(entries))
	for _, e := range entries {
		item := auditLogResponse{
			ID:              e.ID,
			Action:          e.Action,
			Method:          e.Method,
			RequestPayload:  e.RequestPayload,
			ResponsePayload: e.ResponsePayload,
			ResponseLength:  e.ResponseLength,
			StatusCode:      e.StatusCode,
			IPAddress:       e.IPAddress,
			UserAgent:       e.UserAgent,
			UserID:          e.UserID,
			UserRole:        e.UserRole,
			Success:         e.Success,
			CreatedAt:       e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if s := e.LoginSession; s != nil {
			item.LoginSession = &auditSessionResponse{
				ID:         s.ID,
				IPAddress:  s.IPAddress,
				City:       s.City,
				Region:     s.Region,
				Country:    s.Country,
				Browser:    s.Browser,
				OS:         s.OS,
				DeviceType: s.DeviceType,
				LoginTime:  s.LoginTime.Format("2006-01-02T15:04:05Z07:00"),
			}
		}
		data = append(data, item)
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	c.JSON(http.StatusOK, gin.H{
		"message": "Audit logs retrieved successfully",
		"pagination": gin.H{
			"totalRecords": total,
			"totalPages":   totalPages,
			"currentPage":  filter.Page,
			"pageSize":     filter.Limit,
		},
		"data": data,
	})
}
