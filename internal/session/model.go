package session

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrExpired  = errors.New("session expired")
)

// Session is the server-side session record for an authenticated user.
// At most one organization is active per session at a time.
type Session struct {
	ID                   string // UUID
	UserID               string
	ActiveOrganizationID *string
	CreatedAt            time.Time
	ExpiresAt            time.Time
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
