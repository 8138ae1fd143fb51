package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
)

// LoginSessionRepositoryImpl implements domain.LoginSessionRepository using GORM
type LoginSessionRepositoryImpl struct {
	db *gorm.DB
}

// DBLoginSession represents the database model for LoginSession
type DBLoginSession struct {
	ID         string `gorm:"primaryKey;size:36"`
	UserID     string `gorm:"size:36;index;not null"`
	IPAddress  string `gorm:"size:64"`
	City       string `gorm:"size:128"`
	Region     string `gorm:"size:128"`
	Country    string `gorm:"size:128"`
	Browser    string `gorm:"size:128"`
	OS         string `gorm:"size:128"`
	DeviceType string `gorm:"size:32"`
	UserAgent  string `gorm:"size:512"`
	LoginTime  time.Time
	LogoutTime *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name for GORM
func (DBLoginSession) TableName() string {
	return "login_history"
}

// NewLoginSessionRepository creates a new login session repository
func NewLoginSessionRepository(db *gorm.DB) domain.LoginSessionRepository {
	return &LoginSessionRepositoryImpl{db: db}
}

// Create implements domain.LoginSessionRepository
func (r *LoginSessionRepositoryImpl) Create(ctx context.Context, session *domain.LoginSession) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.LoginTime.IsZero() {
		session.LoginTime = time.Now()
	}
	return r.db.WithContext(ctx).Create(sessionToDB(session)).Error
}

// FindByID implements domain.LoginSessionRepository
func (r *LoginSessionRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.LoginSession, error) {
	var dbSession DBLoginSession
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbSession).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return sessionToDomain(&dbSession), nil
}

func sessionToDB(s *domain.LoginSession) *DBLoginSession {
	return &DBLoginSession{
		ID:         s.ID,
		UserID:     s.UserID,
		IPAddress:  s.IPAddress,
		City:       s.City,
		Region:     s.Region,
		Country:    s.Country,
		Browser:    s.Browser,
		OS:         s.OS,
		DeviceType: s.DeviceType,
		UserAgent:  s.UserAgent,
		LoginTime:  s.LoginTime,
		LogoutTime: s.LogoutTime,
	}
}

func sessionToDomain(s *DBLoginSession) *domain.LoginSession {
	return &domain.LoginSession{
		ID:         s.ID,
		UserID:     s.UserID,
		IPAddress:  s.IPAddress,
		City:       s.City,
		Region:     s.Region,
		Country:    s.Country,
		Browser:    s.Browser,
		OS:         s.OS,
		DeviceType: s.DeviceType,
		UserAgent:  s.UserAgent,
		LoginTime:  s.LoginTime,
		LogoutTime: s.LogoutTime,
	}
}
