package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is deactivated")
)

// Role is an application role carried in the user record and in issued tokens.
type Role string

const (
	RoleStudent   Role = "student"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleStudent, RoleOrganizer, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered user (student, organizer, or admin).
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	FullName     string    `json:"full_name"`
	Role         Role      `json:"role"`
	Department   *string   `json:"department,omitempty"`
	StudentID    *string   `json:"student_id,omitempty"`
	PhoneNumber  *string   `json:"phone_number,omitempty"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, role Role, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID and role.
type TokenVerifier interface {
	Verify(token string) (userID string, role Role, err error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	// CreateWithPendingApproval creates the user and their pending organizer
	// application atomically: either both rows exist afterwards or neither does.
	CreateWithPendingApproval(ctx context.Context, user *User, appr *OrganizerApproval) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
	SetRole(ctx context.Context, userID string, role Role) error
	SetActive(ctx context.Context, userID string, active bool) error
	List(ctx context.Context, params PaginationParams) ([]*User, int, error)
	ListActive(ctx context.Context) ([]*User, error)
}

// AuthService defines email+password sign-up and login.
type AuthService interface {
	// SignUp creates a user with the given role (student or organizer; organizer
	// sign-ups additionally open a pending organizer approval).
	SignUp(ctx context.Context, email, password, fullName string, role Role) (*User, error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
}

// UserProfileUpdate holds the mutable profile fields; nil means unchanged.
type UserProfileUpdate struct {
	FullName    *string
	Department  *string
	StudentID   *string
	PhoneNumber *string
	AvatarURL   *string
}

// UserService defines profile and user-management operations.
type UserService interface {
	GetByID(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, userID string, upd UserProfileUpdate) (*User, error)
	// ListUsers is admin-only.
	ListUsers(ctx context.Context, params PaginationParams) ([]*User, int, error)
	// SetUserActive is admin-only; deactivated users cannot log in.
	SetUserActive(ctx context.Context, userID string, active bool) (*User, error)
	ListNotifications(ctx context.Context, userID string) ([]*Notification, error)
	MarkNotificationRead(ctx context.Context, userID, notificationID string) error
}
