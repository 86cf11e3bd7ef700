package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Talha-Bayansar/moskent-backend/internal/organization"
	orgHttp "github.com/Talha-Bayansar/moskent-backend/internal/organization/http"
	"github.com/Talha-Bayansar/moskent-backend/internal/pkg/request"
	"github.com/Talha-Bayansar/moskent-backend/internal/pkg/response"
)

type AdminHandler struct {
	orgService organization.Service
}

func NewAdminHandler(orgService organization.Service) *AdminHandler {
	return &AdminHandler{orgService: orgService}
}

// ListOrganizations returns every organization on the platform, paginated.
// Platform admins only; the RequirePlatformAdmin middleware gates the route.
func (h *AdminHandler) ListOrganizations(c *gin.Context) {
	var params request.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := organization.ListFilter{
		Page:     params.Page,
		PageSize: params.PageSize,
	}

	orgs, total, err := h.orgService.ListAll(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]orgHttp.OrganizationResponse, len(orgs))
	for i, o := range orgs {
		items[i] = orgHttp.NewOrganizationResponse(o)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}
