package domain

import "time"

// UserRole is the fixed role set for this deployment.
type UserRole string

const (
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
	RoleAdmin      UserRole = "ADMIN"
	RoleUser       UserRole = "USER"
)

// Valid reports whether the role belongs to the closed role set.
func (r UserRole) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleUser:
		return true
	}
	return false
}

// UserStatus is the account status enum.
type UserStatus string

const (
	StatusActive   UserStatus = "Active"
	StatusInactive UserStatus = "Inactive"
)

// User represents an account in the system. PasswordHash is never
// serialized back to clients.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PhoneNumber  string
	PasswordHash string
	Img          string
	Signature    string
	Role         UserRole
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName returns the display name used in outbound email.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// PublicUser is the client-visible projection of a User.
type PublicUser struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// Public strips credential and contact fields for API responses.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      string(u.Role),
	}
}

// VerificationCode is a short-lived one-time login code. At most one
// unexpired code exists per user; resend bookkeeping lives on the record.
type VerificationCode struct {
	UserID         string    `json:"user_id"`
	Code           string    `json:"code"`
	ExpiresAt      time.Time `json:"expires_at"`
	ResendAttempts int       `json:"resend_attempts"`
	LastAttemptAt  time.Time `json:"last_attempt_at"`
}

// Expired reports whether the code is no longer usable at the given time.
func (c *VerificationCode) Expired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}

// LoginSession records one successful authentication with device and
// location metadata. Audit entries reference it by ID.
type LoginSession struct {
	ID         string
	UserID     string
	IPAddress  string
	City       string
	Region     string
	Country    string
	Browser    string
	OS         string
	DeviceType string
	UserAgent  string
	LoginTime  time.Time
	LogoutTime *time.Time
}

// AuditLog is a persisted, sanitized snapshot of one request/response pair.
// UserID is empty for anonymous requests; LoginSessionID is a weak
// reference set only when the request carried a session correlation.
type AuditLog struct {
	ID              string
	Action          string
	Method          string
	RequestPayload  string
	ResponsePayload string
	ResponseLength  int
	StatusCode      int
	IPAddress       string
	UserAgent       string
	UserID          string
	UserRole        string
	Success         bool
	LoginSessionID  string
	CreatedAt       time.Time
}

// AuditLogEntry pairs an audit record with its login session, if any.
type AuditLogEntry struct {
	AuditLog
	LoginSession *LoginSession
}

// AuditLogFilter is the closed set of audit listing filters. String
// fields other than UserID match case-insensitively on substring;
// UserID and Success match exactly.
type AuditLogFilter struct {
	Action    string
	UserRole  string
	Method    string
	IPAddress string
	UserID    string
	Success   *bool
	Page      int
	Limit     int
}

// ClientInfo carries the request metadata captured at verification time.
type ClientInfo struct {
	IP        string
	UserAgent string
}

// GeoLocation is a resolved IP location.
type GeoLocation struct {
	City    string
	Region  string
	Country string
}

// DeviceInfo is the parsed user-agent breakdown.
type DeviceInfo struct {
	Browser    string
	OS         string
	DeviceType string
}

// AuthResult is the outcome of a completed two-factor verification.
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	SessionID    string
}

// TokenClaims represents verified JWT claims.
type TokenClaims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	SessionID string `json:"session_id,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// Audit action labels, one per audited route.
const (
	ActionCreateUser       = "Created A user"
	ActionLoginAttempt     = "Attempted Login"
	ActionVerifyEmailToken = "Verify email token"
	ActionToggleUserStatus = "Toggled user status"
	ActionEditUser         = "Edited user details"
)
