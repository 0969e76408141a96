package api

import (
	"github.com/Conceptual-Machines/museforge-api/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/museforge-api/internal/api/middleware"
	"github.com/Conceptual-Machines/museforge-api/internal/config"
	"github.com/Conceptual-Machines/museforge-api/internal/metrics"
	"github.com/Conceptual-Machines/museforge-api/internal/services"
	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg *config.Config, gen services.Generator, recorder *metrics.Recorder, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(recorder))

	// CORS middleware
	router.Use(apimiddleware.CORS(cfg.AllowedOrigins))

	// Health check
	healthHandler := handlers.NewHealthHandler(gen.Name())
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version, gen.Name(), recorder)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	api := router.Group("/api")
	api.Use(apimiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
	if cfg.IsGatewayMode() {
		api.Use(apimiddleware.GatewayAuth())
	} else {
		api.Use(apimiddleware.NoAuth())
	}
	{
		// Suggestions, body {"context": {...}}
		suggestionHandler := handlers.NewSuggestionHandler(gen)
		api.POST("/enhance-prompt", suggestionHandler.EnhancePrompt)
		api.POST("/suggest-genres", suggestionHandler.SuggestGenres)
		api.POST("/suggest-artists", suggestionHandler.SuggestArtists)
		api.POST("/suggest-languages", suggestionHandler.SuggestLanguages)
		api.POST("/enhance-lyrics", suggestionHandler.EnhanceLyrics)
		api.POST("/suggest-all", suggestionHandler.SuggestAll)

		// Plans
		planHandler := handlers.NewPlanHandler(gen)
		api.POST("/generate-plan", planHandler.GeneratePlan)
		api.POST("/audit-plan", planHandler.AuditPlan)
		api.POST("/creative-assets", planHandler.CreativeAssets)
	}

	return router
}
