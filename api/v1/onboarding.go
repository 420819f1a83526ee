package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"growthai/portal/internal/config"
	"growthai/portal/internal/onboarding"
	"growthai/portal/internal/pages"
	"growthai/portal/internal/simulation"
	"growthai/portal/internal/workspace"
	"growthai/portal/pkg/security"
)

// OnboardingAPI holds the visitor flow dependencies
type OnboardingAPI struct {
	Handler    *onboarding.Handler
	Pages      *pages.Handler
	Service    *onboarding.Service
	Repository onboarding.Repository
	Workspace  *workspace.Manager
	Sweeper    *onboarding.Sweeper
	Issuer     *security.TokenIssuer

	cookies onboarding.CookieOptions
	logger  *zap.Logger
}

// SetupOnboardingAPI sets up the onboarding API with all dependencies
func SetupOnboardingAPI(cfg *config.Config, logger *zap.Logger) (*OnboardingAPI, error) {
	issuer, err := security.NewTokenIssuer(cfg.Session.Secret, cfg.Session.TokenTTL.Std())
	if err != nil {
		return nil, fmt.Errorf("failed to create token issuer: %w", err)
	}

	// Create repository
	repository := onboarding.NewMemoryRepository()

	// Create service
	service := onboarding.NewService(repository, onboarding.ServiceConfig{
		SessionTTL: cfg.Session.TTL.Std(),
		Progress: simulation.ProgressConfig{
			Increment:       cfg.Simulation.ProgressIncrement,
			Interval:        cfg.Simulation.ProgressInterval.Std(),
			CompletionDelay: cfg.Simulation.CompletionDelay.Std(),
		},
	}, logger)

	manager := workspace.NewManager(cfg.Simulation.TypingInterval.Std(), logger)
	// A discarded record stops any playback still running for it.
	service.OnDiscard(manager.DisconnectSession)

	return &OnboardingAPI{
		Handler:    onboarding.NewHandler(service, logger),
		Pages:      pages.NewHandler(service, manager, logger),
		Service:    service,
		Repository: repository,
		Workspace:  manager,
		Sweeper:    onboarding.NewSweeper(service, cfg.Session.SweepSchedule, logger),
		Issuer:     issuer,
		cookies:    onboarding.CookieOptions{Secure: cfg.Session.SecureCookie, Path: "/"},
		logger:     logger,
	}, nil
}

// RegisterOnboardingRoutes registers the HTML pages, the JSON API under
// /api/v1 and the health check on the router
func RegisterOnboardingRoutes(router *gin.Engine, api *OnboardingAPI) {
	router.GET("/health", func(c *gin.Context) {
		sessions, err := api.Repository.Count(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":      "healthy",
			"timestamp":   time.Now(),
			"sessions":    sessions,
			"connections": api.Workspace.GetConnectionCount(),
		})
	})

	session := onboarding.SessionMiddleware(api.Service, api.Issuer, api.cookies, api.logger)

	site := router.Group("/")
	site.Use(session)
	api.Pages.RegisterRoutes(site)

	v1 := router.Group("/api/v1")
	v1.Use(session)
	api.Handler.RegisterRoutes(v1)
}
