package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Talha-Bayansar/moskent-backend/internal/auth"
	"github.com/Talha-Bayansar/moskent-backend/internal/guard"
	"github.com/Talha-Bayansar/moskent-backend/internal/onboarding"
	onboardingHttp "github.com/Talha-Bayansar/moskent-backend/internal/onboarding/http"
	"github.com/Talha-Bayansar/moskent-backend/internal/organization"
	orgHttp "github.com/Talha-Bayansar/moskent-backend/internal/organization/http"
	"github.com/Talha-Bayansar/moskent-backend/internal/session"
	"github.com/Talha-Bayansar/moskent-backend/internal/user"
	userHttp "github.com/Talha-Bayansar/moskent-backend/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService       user.Service
	SessionService    session.Service
	OrgService        organization.Service
	OnboardingService *onboarding.Service
	Guard             *guard.Guard
	JWTManager        *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, Logger, Auth, Guard) and registers routes
// for each module.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global middleware:
	// - Logger: logs request information to the console.
	// - Recovery: captures panics and returns a 500 instead of crashing.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000", // Web client
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: validates the bearer JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// guardMiddleware: runs the authenticated-route guard, answering
	// redirects and resolving the active organization.
	guardMiddleware := guard.Middleware(cfg.Guard)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.SessionService, cfg.JWTManager)
	orgHandler := orgHttp.NewHandler(cfg.OrgService)
	wizardHandler := onboardingHttp.NewHandler(cfg.OnboardingService)
	adminHandler := NewAdminHandler(cfg.OrgService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		orgHttp.RegisterRoutes(v1, orgHandler, authMiddleware)
		onboardingHttp.RegisterRoutes(v1, wizardHandler, authMiddleware, guardMiddleware)

		// Guard-protected views
		dashboard := v1.Group("/dashboard")
		dashboard.Use(authMiddleware, guardMiddleware)
		dashboard.GET("", Dashboard)

		// Platform administration
		admin := v1.Group("/admin")
		admin.Use(authMiddleware, RequirePlatformAdmin(cfg.UserService))
		admin.GET("/organizations", adminHandler.ListOrganizations)
	}

	return r
}
