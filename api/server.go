// ABOUTME: Huma API server configuration and setup
// ABOUTME: Serves the document API with OpenAPI docs, CORS, logging and rate limiting

package api

import (
	"sync"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/sagar-developer08/tree-json/api/handlers"
	"github.com/sagar-developer08/tree-json/api/middleware"
	"github.com/sagar-developer08/tree-json/core/interfaces"
)

const (
	title   = "Tree JSON Document API"
	version = "1.0.0"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger     interfaces.Logger
	RateLimit  int           // requests per window
	RateWindow time.Duration // rate limit window
}

var installErrorModel sync.Once

// NewAPI creates and configures a new Huma API instance
func NewAPI() (huma.API, chi.Router) {
	return NewAPIWithMiddleware(APIConfig{})
}

// NewAPIWithMiddleware creates a new API with middleware configured
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router) {
	installErrorModel.Do(func() {
		huma.NewError = handlers.NewEnvelopeError
	})

	router := chi.NewRouter()

	// CORS must run before anything that can reject the request
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.RateLimit > 0 && cfg.RateWindow > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(middleware.RateLimitMiddleware(limiter))
	}

	config := handlers.EnvelopeConfig(title, version)
	config.Info.Description = "Stores the single JSON document an editing session loads from and saves to"

	api := humachi.New(router, config)

	return api, router
}

// RegisterRoutes wires the document and health handlers onto api
func RegisterRoutes(api huma.API, service handlers.DocumentService, logger interfaces.Logger) {
	handlers.NewDocumentHandler(service, logger).RegisterRoutes(api)
	handlers.RegisterHealthRoute(api)
}
