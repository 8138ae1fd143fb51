package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
)

// AuditLogRepositoryImpl implements domain.AuditLogRepository using GORM
type AuditLogRepositoryImpl struct {
	db *gorm.DB
}

// DBAuditLog represents the database model for AuditLog. LoginSession is
// a weak belongs-to: audit rows may predate or postdate any session.
type DBAuditLog struct {
	ID              string `gorm:"primaryKey;size:36"`
	Action          string `gorm:"size:255;not null;index"`
	Method          string `gorm:"size:16;not null"`
	RequestPayload  string `gorm:"type:text;not null"`
	ResponsePayload string `gorm:"type:text;not null"`
	ResponseLength  int
	StatusCode      int    `gorm:"not null"`
	IPAddress       string `gorm:"size:64;not null"`
	UserAgent       string `gorm:"size:512;not null"`
	UserID          string `gorm:"size:36;index"`
	UserRole        string `gorm:"size:64;not null;default:unknown"`
	Success         bool   `gorm:"not null"`
	LoginSessionID  string `gorm:"size:36;index"`
	LoginSession    *DBLoginSession `gorm:"foreignKey:LoginSessionID;references:ID"`
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
}

// TableName returns the table name for GORM
func (DBAuditLog) TableName() string {
	return "audit_logs"
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *gorm.DB) domain.AuditLogRepository {
	return &AuditLogRepositoryImpl{db: db}
}

// Create implements domain.AuditLogRepository
func (r *AuditLogRepositoryImpl) Create(ctx context.Context, entry *domain.AuditLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(auditToDB(entry)).Error
}

// List implements domain.AuditLogRepository. The typed filter translates
// to LOWER LIKE for the contains matchers and plain equality for the
// exact matchers; results are newest first with the login session joined.
func (r *AuditLogRepositoryImpl) List(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLogEntry, int64, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	q := r.db.WithContext(ctx).Model(&DBAuditLog{})
	for column, value := range map[string]string{
		"action":     filter.Action,
		"user_role":  filter.UserRole,
		"method":     filter.Method,
		"ip_address": filter.IPAddress,
	} {
		if value != "" {
			q = q.Where("LOWER("+column+") LIKE LOWER(?)", "%"+value+"%")
		}
	}
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Success != nil {
		q = q.Where("success = ?", *filter.Success)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []DBAuditLog
	err := q.Preload("LoginSession").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	entries := make([]domain.AuditLogEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, auditToDomain(&rows[i]))
	}
	return entries, total, nil
}

func auditToDB(a *domain.AuditLog) *DBAuditLog {
	return &DBAuditLog{
		ID:              a.ID,
		Action:          a.Action,
		Method:          a.Method,
		RequestPayload:  a.RequestPayload,
		ResponsePayload: a.ResponsePayload,
		ResponseLength:  a.ResponseLength,
		StatusCode:      a.StatusCode,
		IPAddress:       a.IPAddress,
		UserAgent:       a.UserAgent,
		UserID:          a.UserID,
		UserRole:        a.UserRole,
		Success:         a.Success,
		LoginSessionID:  a.LoginSessionID,
		CreatedAt:       a.CreatedAt,
	}
}

func auditToDomain(a *DBAuditLog) domain.AuditLogEntry {
	entry := domain.AuditLogEntry{
		AuditLog: domain.AuditLog{
			ID:              a.ID,
			Action:          a.Action,
			Method:          a.Method,
			RequestPayload:  a.RequestPayload,
			ResponsePayload: a.ResponsePayload,
			ResponseLength:  a.ResponseLength,
			StatusCode:      a.StatusCode,
			IPAddress:       a.IPAddress,
			UserAgent:       a.UserAgent,
			UserID:          a.UserID,
			UserRole:        a.UserRole,
			Success:         a.Success,
			LoginSessionID:  a.LoginSessionID,
			CreatedAt:       a.CreatedAt,
		},
	}
	if a.LoginSession != nil {
		entry.LoginSession = sessionToDomain(a.LoginSession)
	}
	return entry
}
