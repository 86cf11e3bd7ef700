package organization

import (
	"errors"
	"time"
)

var (
	ErrOrgNotFound       = errors.New("organization not found")
	ErrTeamNotFound      = errors.New("team not found")
	ErrNameTooShort      = errors.New("name must be at least 2 characters")
	ErrSlugTooShort      = errors.New("slug must be at least 2 characters")
	ErrSlugInvalid       = errors.New("slug may only contain lowercase letters, digits and hyphens")
	ErrSlugTaken         = errors.New("slug is already taken")
	ErrUserNotMember     = errors.New("user is not a member of this organization")
	ErrUserAlreadyMember = errors.New("user is already a member of this organization")
	ErrInvalidRole       = errors.New("invalid role")
)

// Roles match the membership_role database enum.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// ValidRole reports whether role is one of the known membership roles.
func ValidRole(role string) bool {
	switch role {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// Organization represents a mosque managed on the platform.
// The slug is its URL-safe, globally unique identifier.
type Organization struct {
	ID        string // UUID
	Name      string
	Slug      string
	LogoPath  *string
	CreatedAt time.Time
}

// Member represents a user's membership in an organization.
type Member struct {
	OrganizationID string
	UserID         string
	Email          string
	Name           string
	Role           string
	CreatedAt      time.Time
}

// Team is an optional child grouping within an organization.
type Team struct {
	ID             string // UUID
	OrganizationID string
	Name           string
	CreatedAt      time.Time
}

// ProvisionedUser is the result of an owner creating a user directly.
// GeneratedPassword is returned exactly once so the owner can share it.
type ProvisionedUser struct {
	UserID            string
	Email             string
	GeneratedPassword string
	Role              string
}

// MemberFilter defines filter options for listing members.
type MemberFilter struct {
	Page     int
	PageSize int
}

// ListFilter defines filter options for the platform-wide organization list.
type ListFilter struct {
	Page     int
	PageSize int
}
