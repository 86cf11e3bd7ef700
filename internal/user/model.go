package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("user is inactive")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrNameRequired       = errors.New("name is required")
)

// User represents a platform account.
//
// IsOrganizationBound marks users that were provisioned directly by an
// organization owner rather than self-registered. Bound users cannot create
// organizations of their own.
type User struct {
	ID                  string // UUID
	Email               string
	PasswordHash        string
	Name                string
	IsOrganizationBound bool
	IsPlatformAdmin     bool
	CreatedAt           time.Time
	LastLoginAt         *time.Time
	IsActive            bool
}

// UserFilter defines filter options for listing users.
type UserFilter struct {
	Email    string
	Name     string
	IsActive *bool // Pointer to distinguish between false and nil (not set)

	Page     int
	PageSize int
}
