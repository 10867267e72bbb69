package router

import (
	"net/http"

	"sellerboost-api/internal/handler"
	"sellerboost-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	HealthHandler   *handler.HealthHandler
	ContentHandler  *handler.ContentHandler
	InsightsHandler *handler.InsightsHandler
	HistoryHandler  *handler.HistoryHandler
	AuthMiddleware  func(http.Handler) http.Handler
	AllowedOrigins  []string
	// FilesDir is served under /files/ when flyers are kept on local disk.
	FilesDir string
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "apikey", "x-client-info"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.MethodNotAllowed(handler.MethodNotAllowed)
	r.NotFound(handler.NotFound)

	// PUBLIC routes (no auth required)
	if cfg.HealthHandler != nil {
		r.Get("/api/status", cfg.HealthHandler.Status)
		r.Get("/api/v1/health", cfg.HealthHandler.Health)
		r.Get("/api/v1/ready", cfg.HealthHandler.Ready)
	}

	if cfg.FilesDir != "" {
		fileServer := http.FileServer(http.Dir(cfg.FilesDir))
		r.Handle("/files/*", http.StripPrefix("/files/", fileServer))
	}

	// AUTHENTICATED routes
	r.Group(func(r chi.Router) {
		if cfg.AuthMiddleware != nil {
			r.Use(cfg.AuthMiddleware)
		}

		if cfg.ContentHandler != nil {
			r.Post("/api/v1/generate-content", cfg.ContentHandler.Generate)
			r.Options("/api/v1/generate-content", handler.Preflight)
		}

		if cfg.InsightsHandler != nil {
			r.Post("/api/v1/generate-insights", cfg.InsightsHandler.Generate)
			r.Options("/api/v1/generate-insights", handler.Preflight)
		}

		if cfg.HistoryHandler != nil {
			r.Get("/api/v1/products/{productID}/content", cfg.HistoryHandler.List)
			r.Get("/api/v1/products/{productID}/content/latest", cfg.HistoryHandler.Latest)
		}
	})

	return r
}
