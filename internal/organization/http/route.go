package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers organization-related routes.
func RegisterRoutes(g *gin.RouterGroup, h *OrganizationHandler, authMiddleware gin.HandlerFunc) {
	orgGroup := g.Group("/organizations")
	orgGroup.Use(authMiddleware)
	{
		orgGroup.POST("", h.Create)                  // Create organization (caller becomes owner)
		orgGroup.GET("", h.ListMine)                 // List caller's organizations
		orgGroup.GET("/check-slug", h.CheckSlug)     // Advisory slug availability check
		orgGroup.GET("/:id", h.Get)                  // Get organization details
		orgGroup.GET("/:id/member", h.GetMyMember)   // Caller's own membership record
		orgGroup.GET("/:id/members", h.ListMembers)  // List members
		orgGroup.POST("/:id/users", h.ProvisionUser) // Owner/admin creates a bound user
		orgGroup.POST("/:id/teams", h.CreateTeam)    // Create team
		orgGroup.GET("/:id/teams", h.ListTeams)      // List teams
		orgGroup.POST("/:id/logo", h.UploadLogo)     // Upload logo
		orgGroup.GET("/:id/logo", h.GetLogo)         // Fetch logo
	}
}
