package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Talha-Bayansar/moskent-backend/internal/auth"
	"github.com/Talha-Bayansar/moskent-backend/internal/organization"
	"github.com/Talha-Bayansar/moskent-backend/internal/pkg/request"
	"github.com/Talha-Bayansar/moskent-backend/internal/pkg/response"
)

type OrganizationHandler struct {
	service organization.Service
}

func NewHandler(service organization.Service) *OrganizationHandler {
	return &OrganizationHandler{service: service}
}

// Create adds a new organization with the caller as owner.
// Organization-bound users are rejected by the service.
func (h *OrganizationHandler) Create(c *gin.Context) {
	var req CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		var fieldErr *request.FieldError
		if errors.As(err, &fieldErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Message, "field": fieldErr.Field})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	org, err := h.service.Create(c.Request.Context(), auth.GetUserID(c), organization.CreateOrganizationRequest{
		Name: req.Name,
		Slug: req.Slug,
	})
	if err != nil {
		switch {
		case errors.Is(err, organization.ErrNameTooShort),
			errors.Is(err, organization.ErrSlugTooShort),
			errors.Is(err, organization.ErrSlugInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, NewOrganizationResponse(org))
}

// ListMine retrieves the organizations the caller belongs to, in the order
// the guard uses to pick a fallback active organization.
func (h *OrganizationHandler) ListMine(c *gin.Context) {
	orgs, err := h.service.ListForUser(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]OrganizationResponse, len(orgs))
	for i, o := range orgs {
		items[i] = NewOrganizationResponse(o)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CheckSlug reports whether a slug is still available. Advisory only: the
// create call re-checks under the database's unique constraint.
func (h *OrganizationHandler) CheckSlug(c *gin.Context) {
	var req CheckSlugRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	available, err := h.service.CheckSlug(c.Request.Context(), req.Slug)
	if err != nil {
		switch {
		case errors.Is(err, organization.ErrSlugTooShort), errors.Is(err, organization.ErrSlugInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, CheckSlugResponse{Available: available})
}

// Get retrieves an organization by ID. The caller must be a member.
func (h *OrganizationHandler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	callerID := auth.GetUserID(c)
	if _, err := h.service.GetMember(c.Request.Context(), uri.ID, callerID); err != nil {
		if errors.Is(err, organization.ErrUserNotMember) {
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
			return
		}
		response.Error(c, err)
		return
	}

	org, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		if errors.Is(err, organization.ErrOrgNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewOrganizationResponse(org))
}

// GetMyMember retrieves the caller's own membership record (role included)
// in the organization.
func (h *OrganizationHandler) GetMyMember(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	m, err := h.service.GetMember(c.Request.Context(), uri.ID, auth.GetUserID(c))
	if err != nil {
		if errors.Is(err, organization.ErrUserNotMember) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewMemberResponse(m))
}

// ListMembers retrieves a paginated list of the organization's members.
func (h *OrganizationHandler) ListMembers(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var req ListMembersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := organization.MemberFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	members, total, err := h.service.ListMembers(c.Request.Context(), uri.ID, auth.GetUserID(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]MemberResponse, len(members))
	for i, m := range members {
		items[i] = NewMemberResponse(m)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

// ProvisionUser creates an organization-bound user and adds them as a
// member. Owners and admins only; the generated password is returned once.
func (h *OrganizationHandler) ProvisionUser(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var req ProvisionUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	created, err := h.service.ProvisionUser(c.Request.Context(), auth.GetUserID(c), organization.ProvisionUserRequest{
		OrganizationID: uri.ID,
		Email:          req.Email,
		Name:           req.Name,
		Role:           req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, ProvisionUserResponse{
		UserID:            created.UserID,
		Email:             created.Email,
		GeneratedPassword: created.GeneratedPassword,
		Role:              created.Role,
	})
}

// CreateTeam adds a team to the organization.
func (h *OrganizationHandler) CreateTeam(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	team, err := h.service.CreateTeam(c.Request.Context(), auth.GetUserID(c), organization.CreateTeamRequest{
		OrganizationID: uri.ID,
		Name:           req.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, organization.ErrNameTooShort):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, organization.ErrOrgNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, NewTeamResponse(team))
}

// ListTeams retrieves the organization's teams.
func (h *OrganizationHandler) ListTeams(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	teams, err := h.service.ListTeams(c.Request.Context(), uri.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]TeamResponse, len(teams))
	for i, t := range teams {
		items[i] = NewTeamResponse(t)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// UploadLogo stores the organization's logo from a multipart form file.
func (h *OrganizationHandler) UploadLogo(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "logo file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read logo file"})
		return
	}
	defer file.Close()

	if err := h.service.UploadLogo(c.Request.Context(), uri.ID, auth.GetUserID(c), file); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetLogo serves the organization's logo.
func (h *OrganizationHandler) GetLogo(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	content, err := h.service.GetLogo(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer content.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, content)
}
