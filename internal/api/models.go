package api

import (
	"time"

	"github.com/phrazzld/vizgen/internal/domain"
	"github.com/phrazzld/vizgen/internal/job"
)

// VisualizeRequest defines the payload for POST /api/visualize.
type VisualizeRequest struct {
	Question          string          `json:"question"           validate:"required,max=2000"`
	VisualizationType string          `json:"visualization_type" validate:"required"`
	Options           *OptionsRequest `json:"options,omitempty"`
}

// OptionsRequest carries the optional generation knobs.
type OptionsRequest struct {
	Complexity string `json:"complexity,omitempty" validate:"omitempty,max=20"`
	MaxDepth   int    `json:"max_depth,omitempty"  validate:"omitempty,min=0"`
	Style      string `json:"style,omitempty"      validate:"omitempty,max=100"`
}

// toDomain converts the request options; a nil receiver yields zero options.
func (o *OptionsRequest) toDomain() domain.GenerationOptions {
	if o == nil {
		return domain.GenerationOptions{}
	}
	return domain.GenerationOptions{
		Complexity: domain.Complexity(o.Complexity),
		MaxDepth:   o.MaxDepth,
		Style:      o.Style,
	}
}

// VisualizeResponse is returned when a job has been accepted.
type VisualizeResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// OptionsResponse echoes the normalized options of a job.
type OptionsResponse struct {
	Complexity string `json:"complexity"`
	MaxDepth   int    `json:"max_depth"`
	Style      string `json:"style,omitempty"`
}

// JobResponse is the status view of a job.
type JobResponse struct {
	JobID             string          `json:"job_id"`
	Status            string          `json:"status"`
	VisualizationType string          `json:"visualization_type"`
	Options           OptionsResponse `json:"options"`
	Content           *string         `json:"content,omitempty"`
	Metadata          map[string]any  `json:"metadata,omitempty"`
	Error             *string         `json:"error,omitempty"`
	Attempts          int             `json:"attempts"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	ExpiresAt         time.Time       `json:"expires_at"`
}

// SupportedTypesResponse lists the visualization kinds the service accepts.
type SupportedTypesResponse struct {
	SupportedTypes []string `json:"supported_types"`
}

// AIStatusResponse reports whether the language model answered a probe.
type AIStatusResponse struct {
	AIStatus string `json:"ai_status"`
	Model    string `json:"model,omitempty"`
}

// ModelsResponse lists the provider models visible to the configured credentials.
type ModelsResponse struct {
	Models       []string `json:"models"`
	CurrentModel string   `json:"current_model"`
}

// HealthResponse is returned by the health check.
type HealthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"env"`
}

func jobToResponse(j job.Job) JobResponse {
	return JobResponse{
		JobID:             j.ID,
		Status:            string(j.Status),
		VisualizationType: j.Kind.String(),
		Options: OptionsResponse{
			Complexity: string(j.Options.Complexity),
			MaxDepth:   j.Options.MaxDepth,
			Style:      j.Options.Style,
		},
		Content:   j.Content,
		Metadata:  j.Metadata,
		Error:     j.Error,
		Attempts:  j.Attempts,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
		ExpiresAt: j.ExpiresAt,
	}
}

func kindsToStrings(kinds []domain.Kind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = k.String()
	}
	return out
}
