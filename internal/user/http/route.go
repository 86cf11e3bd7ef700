package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers auth/user-related routes.
func RegisterRoutes(g *gin.RouterGroup, h *UserHandler, authMiddleware gin.HandlerFunc) {
	authGroup := g.Group("/auth")

	// === Public Routes ===
	authGroup.POST("/register", h.Register)
	authGroup.POST("/login", h.Login)

	// === Authenticated Routes ===
	protected := authGroup.Group("")
	protected.Use(authMiddleware)
	{
		protected.POST("/logout", h.Logout)
		protected.GET("/me", h.Me)
	}
}
