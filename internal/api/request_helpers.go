package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/vizgen/internal/job"
)

// getPathJobID extracts the job id path parameter. Ids that are not UUIDs
// cannot name a job, so they report job.ErrJobNotFound.
func getPathJobID(r *http.Request, paramName string) (string, error) {
	raw := strings.TrimSpace(chi.URLParam(r, paramName))
	if raw == "" {
		return "", fmt.Errorf("%w: missing %s", job.ErrJobNotFound, paramName)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: malformed %s", job.ErrJobNotFound, paramName)
	}
	return id.String(), nil
}
