package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/vizgen/internal/api/shared"
	"github.com/phrazzld/vizgen/internal/domain"
	"github.com/phrazzld/vizgen/internal/job"
)

// JobService is the part of the job orchestrator the handlers use.
type JobService interface {
	Submit(ctx context.Context, question, kind string, opts domain.GenerationOptions) (string, error)
	Status(ctx context.Context, id string) (job.Job, error)
	SupportedKinds() []domain.Kind
}

// VisualizationHandler handles visualization job requests.
type VisualizationHandler struct {
	jobs   JobService
	logger *slog.Logger
}

// NewVisualizationHandler creates a new VisualizationHandler.
func NewVisualizationHandler(jobs JobService, logger *slog.Logger) *VisualizationHandler {
	return &VisualizationHandler{
		jobs:   jobs,
		logger: logger.With("component", "visualization_handler"),
	}
}

// Submit handles POST /api/visualize. It returns 202 as soon as the job is stored.
func (h *VisualizationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req VisualizeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	id, err := h.jobs.Submit(r.Context(), req.Question, req.VisualizationType, req.Options.toDomain())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create visualization job")
		return
	}

	h.logger.InfoContext(r.Context(), "visualization job accepted",
		"job_id", id,
		"visualization_type", req.VisualizationType)

	shared.RespondWithJSON(w, r, http.StatusAccepted, VisualizeResponse{
		JobID:  id,
		Status: string(job.StatusPending),
	})
}

// GetJob handles GET /api/visualize/{id}.
func (h *VisualizationHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, err := getPathJobID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	j, err := h.jobs.Status(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load visualization job")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, jobToResponse(j))
}

// SupportedTypes handles GET /api/visualizations.
func (h *VisualizationHandler) SupportedTypes(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, SupportedTypesResponse{
		SupportedTypes: kindsToStrings(h.jobs.SupportedKinds()),
	})
}
