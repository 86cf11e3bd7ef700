package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the organization setup wizard under the
// create-organization path. The guard middleware keeps users who already
// have an organization out of this group, and steers users without one into
// it.
func RegisterRoutes(g *gin.RouterGroup, h *WizardHandler, authMiddleware, guardMiddleware gin.HandlerFunc) {
	wizard := g.Group("/create-organization")
	wizard.Use(authMiddleware, guardMiddleware)
	{
		wizard.GET("", h.State)
		wizard.PUT("/basic-info", h.SetBasicInfo)
		wizard.PUT("/team", h.SetTeam)
		wizard.POST("/next", h.Next)
		wizard.POST("/back", h.Back)
		wizard.POST("/submit", h.Submit)
		wizard.DELETE("", h.Reset)
	}
}
