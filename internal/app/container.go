package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Talha-Bayansar/moskent-backend/internal/api"
	"github.com/Talha-Bayansar/moskent-backend/internal/auth"
	"github.com/Talha-Bayansar/moskent-backend/internal/guard"
	"github.com/Talha-Bayansar/moskent-backend/internal/onboarding"
	"github.com/Talha-Bayansar/moskent-backend/internal/organization"
	"github.com/Talha-Bayansar/moskent-backend/internal/pkg/storage"
	"github.com/Talha-Bayansar/moskent-backend/internal/session"
	"github.com/Talha-Bayansar/moskent-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	DBPool            *pgxpool.Pool
	JWTSecret         string
	JWTTTL            time.Duration
	SessionTTL        time.Duration
	BcryptCost        int
	LogoStoragePath   string
	SlugCheckDebounce time.Duration
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Shared components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	logoStorage, err := storage.NewLocalStorage(cfg.LogoStoragePath)
	if err != nil {
		return nil, err
	}

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Session module
	sessionRepo := session.NewPgxRepository(cfg.DBPool)
	sessionService := session.NewService(sessionRepo, cfg.SessionTTL)

	// Organization module
	orgRepo := organization.NewPgxRepository(cfg.DBPool)
	orgService := organization.NewService(orgRepo, userService, logoStorage)

	// Route guard
	routeGuard := guard.New(userService, orgService, sessionService)

	// Onboarding wizard
	onboardingService := onboarding.NewService(orgService, sessionService, cfg.SlugCheckDebounce)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:      cfg.IsProduction,
		ProdOrigins:       cfg.ProdOrigins,
		UserService:       userService,
		SessionService:    sessionService,
		OrgService:        orgService,
		OnboardingService: onboardingService,
		Guard:             routeGuard,
		JWTManager:        jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
