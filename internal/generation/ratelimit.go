package generation

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimited throttles outbound calls to a Generator so that many concurrent
// jobs do not flood the provider.
type RateLimited struct {
	next    Generator
	limiter *rate.Limiter
}

// NewRateLimited wraps next with a token bucket of rps requests per second and
// the given burst. A non-positive rps disables throttling and returns next.
func NewRateLimited(next Generator, rps float64, burst int) Generator {
	if rps <= 0 {
		return next
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Generate waits for a token and then delegates. Running out of time while
// waiting is reported as a transient failure.
func (r *RateLimited) Generate(ctx context.Context, modelID, prompt string, cfg Config) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: waiting for rate limiter: %w", ErrTransientNetwork, err)
	}
	return r.next.Generate(ctx, modelID, prompt, cfg)
}
