package http

import (
	"time"

	"github.com/Talha-Bayansar/moskent-backend/internal/organization"
	"github.com/Talha-Bayansar/moskent-backend/internal/pkg/request"
)

// OrganizationResponse is the shape of organization data returned by the API.
type OrganizationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	HasLogo   bool      `json:"has_logo"`
	CreatedAt time.Time `json:"created_at"`
}

// NewOrganizationResponse converts a domain organization to its API shape.
func NewOrganizationResponse(o *organization.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:        o.ID,
		Name:      o.Name,
		Slug:      o.Slug,
		HasLogo:   o.LogoPath != nil,
		CreatedAt: o.CreatedAt,
	}
}

// MemberResponse is the shape of membership data returned by the API.
type MemberResponse struct {
	OrganizationID string    `json:"organization_id"`
	UserID         string    `json:"user_id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewMemberResponse converts a domain member to its API shape.
func NewMemberResponse(m *organization.Member) MemberResponse {
	return MemberResponse{
		OrganizationID: m.OrganizationID,
		UserID:         m.UserID,
		Email:          m.Email,
		Name:           m.Name,
		Role:           m.Role,
		CreatedAt:      m.CreatedAt,
	}
}

// TeamResponse is the shape of team data returned by the API.
type TeamResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewTeamResponse converts a domain team to its API shape.
func NewTeamResponse(t *organization.Team) TeamResponse {
	return TeamResponse{
		ID:             t.ID,
		OrganizationID: t.OrganizationID,
		Name:           t.Name,
		CreatedAt:      t.CreatedAt,
	}
}

// CreateOrganizationRequest defines the payload for creating an organization.
// Slug is optional; when omitted it is derived from the name.
type CreateOrganizationRequest struct {
	Name string `json:"name" binding:"required,min=2"`
	Slug string `json:"slug" binding:"omitempty,min=2"`
}

// Validate performs custom validation for CreateOrganizationRequest.
func (r *CreateOrganizationRequest) Validate() error {
	if r.Slug == "" {
		return nil
	}
	if err := organization.ValidateSlug(r.Slug); err != nil {
		return request.NewFieldError("slug", err.Error())
	}
	return nil
}

// CheckSlugRequest defines query parameters for the slug availability check.
type CheckSlugRequest struct {
	Slug string `form:"slug" binding:"required,min=2"`
}

// CheckSlugResponse reports slug availability.
type CheckSlugResponse struct {
	Available bool `json:"available"`
}

// CreateTeamRequest defines the payload for creating a team.
type CreateTeamRequest struct {
	Name string `json:"name" binding:"required,min=2"`
}

// ListMembersRequest defines query parameters for listing members.
type ListMembersRequest struct {
	request.ListParams
}

// ProvisionUserRequest defines the payload for an owner creating a user.
type ProvisionUserRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
	Role  string `json:"role" binding:"required,oneof=owner admin member"`
}

// ProvisionUserResponse returns the created account credentials. The
// generated password appears here once; it is never retrievable again.
type ProvisionUserResponse struct {
	UserID            string `json:"user_id"`
	Email             string `json:"email"`
	GeneratedPassword string `json:"generated_password"`
	Role              string `json:"role"`
}
