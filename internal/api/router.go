package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/vizgen/internal/api/middleware"
	"github.com/phrazzld/vizgen/internal/api/shared"
)

// RouterConfig holds what NewRouter needs to build the HTTP surface.
type RouterConfig struct {
	Visualizations *VisualizationHandler
	Status         *StatusHandler
	CORSOrigins    []string
	Logger         *slog.Logger
}

// NewRouter creates the application router with all routes and middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewTraceMiddleware(cfg.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSMiddleware(cfg.CORSOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Post("/visualize", cfg.Visualizations.Submit)
		r.Get("/visualize/{id}", cfg.Visualizations.GetJob)
		r.Get("/visualizations", cfg.Visualizations.SupportedTypes)
		r.Get("/ai-status", cfg.Status.AIStatus)
		r.Get("/models", cfg.Status.ListModels)
	})

	r.Get("/health", cfg.Status.Health)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}
