package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Talha-Bayansar/moskent-backend/internal/guard"
	orgHttp "github.com/Talha-Bayansar/moskent-backend/internal/organization/http"
	userHttp "github.com/Talha-Bayansar/moskent-backend/internal/user/http"
)

// RouteContextResponse is the context payload handed to authenticated views:
// the current user, their organizations, and the resolved active
// organization with the caller's membership in it.
type RouteContextResponse struct {
	User               userHttp.UserResponse          `json:"user"`
	Organizations      []orgHttp.OrganizationResponse `json:"organizations"`
	ActiveOrganization *orgHttp.OrganizationResponse  `json:"active_organization"`
	ActiveMember       *orgHttp.MemberResponse        `json:"active_member"`
}

// NewRouteContextResponse converts a guard RouteContext to its API shape.
func NewRouteContextResponse(rc *guard.RouteContext) RouteContextResponse {
	orgs := make([]orgHttp.OrganizationResponse, len(rc.Organizations))
	for i, o := range rc.Organizations {
		orgs[i] = orgHttp.NewOrganizationResponse(o)
	}

	resp := RouteContextResponse{
		User:          userHttp.NewUserResponse(rc.User),
		Organizations: orgs,
	}
	if rc.ActiveOrganization != nil {
		o := orgHttp.NewOrganizationResponse(rc.ActiveOrganization)
		resp.ActiveOrganization = &o
	}
	if rc.ActiveMember != nil {
		m := orgHttp.NewMemberResponse(rc.ActiveMember)
		resp.ActiveMember = &m
	}
	return resp
}

// Dashboard returns the route context resolved by the guard middleware.
func Dashboard(c *gin.Context) {
	rc := guard.GetRouteContext(c)
	if rc == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "route context missing"})
		return
	}

	c.JSON(http.StatusOK, NewRouteContextResponse(rc))
}
