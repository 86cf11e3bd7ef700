package guard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Talha-Bayansar/moskent-backend/internal/auth"
)

const contextKey = "routeContext"

// Middleware runs the guard for every request into the authenticated area.
// Redirect decisions become 307 responses with a Location header; otherwise
// the resolved RouteContext is stored on the gin context for handlers.
// It MUST be used after auth.AuthRequired.
func Middleware(g *Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := auth.GetSessionID(c)
		if sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		res, err := g.Resolve(c.Request.Context(), sessionID, c.Request.URL.Path)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve navigation"})
			return
		}

		if res.Redirect != "" {
			c.Header("Location", res.Redirect)
			c.AbortWithStatusJSON(http.StatusTemporaryRedirect, gin.H{"redirect": res.Redirect})
			return
		}

		c.Set(contextKey, res.Context)
		c.Next()
	}
}

// GetRouteContext returns the RouteContext resolved by the middleware, or
// nil when the guard did not run for this request.
func GetRouteContext(c *gin.Context) *RouteContext {
	if v, ok := c.Get(contextKey); ok {
		if rc, ok := v.(*RouteContext); ok {
			return rc
		}
	}
	return nil
}
