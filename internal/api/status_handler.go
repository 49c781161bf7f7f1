package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/vizgen/internal/api/shared"
	"github.com/phrazzld/vizgen/internal/generation"
	"github.com/phrazzld/vizgen/internal/redact"
	"github.com/phrazzld/vizgen/internal/visualization"
)

// Probe settings for GET /api/ai-status.
const (
	aiProbePrompt  = "Reply with the single word OK."
	aiProbeTimeout = 15 * time.Second
)

// AI status values.
const (
	AIStatusOK          = "ok"
	AIStatusUnavailable = "unavailable"
)

// StatusHandler serves the health and language model status endpoints.
type StatusHandler struct {
	model       visualization.ModelHandle
	lister      generation.ModelLister
	environment string
	logger      *slog.Logger
}

// NewStatusHandler creates a new StatusHandler. lister may be nil when the
// provider cannot enumerate its models.
func NewStatusHandler(
	model visualization.ModelHandle,
	lister generation.ModelLister,
	environment string,
	logger *slog.Logger,
) *StatusHandler {
	return &StatusHandler{
		model:       model,
		lister:      lister,
		environment: environment,
		logger:      logger.With("component", "status_handler"),
	}
}

// Health handles GET /health.
func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:      "healthy",
		Environment: h.environment,
	})
}

// AIStatus handles GET /api/ai-status. It sends a tiny prompt to the model
// and reports only whether a non-empty reply came back.
func (h *StatusHandler) AIStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), aiProbeTimeout)
	defer cancel()

	status := AIStatusOK
	reply, err := h.model.Generator.Generate(ctx, h.model.ModelID, aiProbePrompt, generation.Config{
		Temperature:     0,
		MaxOutputTokens: 16,
	})
	switch {
	case err != nil:
		status = AIStatusUnavailable
		h.logger.WarnContext(r.Context(), "AI status probe failed",
			"transient", generation.IsTransient(err),
			"error", redact.Error(err))
	case strings.TrimSpace(reply) == "":
		status = AIStatusUnavailable
		h.logger.WarnContext(r.Context(), "AI status probe returned an empty reply")
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AIStatusResponse{
		AIStatus: status,
		Model:    h.model.ModelID,
	})
}

// ListModels handles GET /api/models.
func (h *StatusHandler) ListModels(w http.ResponseWriter, r *http.Request) {
	if h.lister == nil {
		shared.RespondWithError(w, r, http.StatusNotImplemented,
			"Model listing is not supported by the configured provider")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), aiProbeTimeout)
	defer cancel()

	models, err := h.lister.ListModels(ctx)
	if err != nil {
		status := http.StatusBadGateway
		if generation.IsTransient(err) {
			status = http.StatusServiceUnavailable
		}
		shared.RespondWithErrorAndLog(w, r, status, "Failed to list models", err)
		return
	}
	if models == nil {
		models = []string{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ModelsResponse{
		Models:       models,
		CurrentModel: h.model.ModelID,
	})
}
