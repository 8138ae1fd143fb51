package domain

import "context"

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
}

// VerificationCodeRepository is the ledger of live one-time codes, at most
// one per user. Create is atomic: when a live code already exists the call
// reports created=false and the caller re-reads the stored record.
type VerificationCodeRepository interface {
	Create(ctx context.Context, code *VerificationCode) (created bool, err error)
	Find(ctx context.Context, userID string) (*VerificationCode, error)
	Update(ctx context.Context, code *VerificationCode) error
	Delete(ctx context.Context, userID string) error
}

// LoginSessionRepository tracks successful authentications.
type LoginSessionRepository interface {
	Create(ctx context.Context, session *LoginSession) error
	FindByID(ctx context.Context, id string) (*LoginSession, error)
}

// AuditLogRepository persists and queries request audit records.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *AuditLog) error
	List(ctx context.Context, filter AuditLogFilter) ([]AuditLogEntry, int64, error)
}

// AuthService coordinates the two-factor login state machine.
type AuthService interface {
	// Initiate checks credentials, issues or reuses a live code and
	// dispatches it by email. The code itself is never returned.
	Initiate(ctx context.Context, email, password string) error
	// Verify consumes a live code, records a login session and mints the
	// token pair.
	Verify(ctx context.Context, email, code string, client ClientInfo) (*AuthResult, error)
	// Resend re-dispatches the existing live code under the sliding-window
	// rate limit. Codes are never rotated on resend.
	Resend(ctx context.Context, email string) error
	// RefreshAccessToken mints a new access token from a valid refresh
	// token, preserving the session correlation. The refresh token is not
	// rotated.
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
	// VerifyAccessToken introspects an access token and re-checks the user
	// is still active.
	VerifyAccessToken(ctx context.Context, token string) (*User, error)
}

// CreateUserInput carries the fields of an admin create-user request.
type CreateUserInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Role        UserRole
	Img         []byte
	Signature   []byte
}

// EditUserInput carries the optional fields of an edit-user request.
// Zero values mean "leave unchanged".
type EditUserInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Role        UserRole
	Password    string
	Img         []byte
	Signature   []byte
}

// UserService implements the admin user-management operations.
type UserService interface {
	CreateUser(ctx context.Context, in CreateUserInput) (*User, error)
	EditUser(ctx context.Context, id string, in EditUserInput, actorRole UserRole) (*User, error)
	ToggleStatus(ctx context.Context, id string) (*User, error)
}

// PasswordService defines password hashing operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	GenerateAccessToken(userID string, role string, sessionID string) (string, error)
	GenerateRefreshToken(userID string, role string, sessionID string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// NotificationService defines outbound email dispatch. Implementations
// must not block past a reasonable bound; failures are reported, never
// silently dropped.
type NotificationService interface {
	SendVerificationCode(to, name, code string) error
	SendGeneratedPassword(to, firstName, password string, created bool) error
}

// GeoResolver looks up the location of a client IP. Failures degrade to
// an empty location, never to a failed login.
type GeoResolver interface {
	Resolve(ctx context.Context, ip string) (*GeoLocation, error)
}

// FileStorage uploads user-supplied files to external object storage and
// returns a public URL.
type FileStorage interface {
	Upload(ctx context.Context, data []byte, folder string) (string, error)
}
