package http

import (
	"time"

	"github.com/Talha-Bayansar/moskent-backend/internal/pkg/request"
	"github.com/Talha-Bayansar/moskent-backend/internal/user"
)

// UserResponse is the shape of user data returned in API responses.
type UserResponse struct {
	ID                  string     `json:"id"`
	Email               string     `json:"email"`
	Name                string     `json:"name"`
	IsOrganizationBound bool       `json:"is_organization_bound"`
	CreatedAt           time.Time  `json:"created_at"`
	LastLoginAt         *time.Time `json:"last_login_at"`
	IsActive            bool       `json:"is_active"`
}

// NewUserResponse converts domain user.User to UserResponse used by the API.
func NewUserResponse(u *user.User) UserResponse {
	createdAt := u.CreatedAt
	var lastLoginAt *time.Time
	if u.LastLoginAt != nil {
		ll := *u.LastLoginAt
		lastLoginAt = &ll
	}

	return UserResponse{
		ID:                  u.ID,
		Email:               u.Email,
		Name:                u.Name,
		IsOrganizationBound: u.IsOrganizationBound,
		CreatedAt:           createdAt,
		LastLoginAt:         lastLoginAt,
		IsActive:            u.IsActive,
	}
}

// RegisterRequest defines the payload for user sign-up.
type RegisterRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required,min=6"`
}

// Validate performs custom validation for RegisterRequest. A mismatch is
// attached to the confirmation field only; the password field itself is
// fine.
func (r *RegisterRequest) Validate() error {
	if r.Password != r.ConfirmPassword {
		return request.NewFieldError("confirm_password", "passwords must match")
	}
	return nil
}

// LoginRequest defines the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Validate performs custom validation for LoginRequest.
func (r *LoginRequest) Validate() error {
	return nil
}

// LoginResponse returns the token and user info.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// MeResponse returns the current user info.
type MeResponse struct {
	User UserResponse `json:"user"`
}
