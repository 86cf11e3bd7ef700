package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Talha-Bayansar/moskent-backend/internal/auth"
	"github.com/Talha-Bayansar/moskent-backend/internal/user"
)

// RequirePlatformAdmin ensures the authenticated user is a platform admin.
// It MUST be used after auth.AuthRequired middleware.
func RequirePlatformAdmin(userService user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.GetUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		// Check permissions
		u, err := userService.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		if !u.IsPlatformAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: platform admin access required"})
			return
		}

		c.Next()
	}
}
