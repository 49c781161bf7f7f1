package generation

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Failure classes returned (wrapped) by every Generator implementation.
var (
	// ErrRateLimited is returned when the model provider throttles the caller.
	ErrRateLimited = errors.New("language model rate limit exceeded")

	// ErrOverloaded is returned when the provider reports it is temporarily unavailable.
	ErrOverloaded = errors.New("language model overloaded")

	// ErrTransientNetwork is returned for timeouts and connection failures.
	ErrTransientNetwork = errors.New("transient network error calling language model")

	// ErrFatal is returned for failures that a retry will not fix.
	ErrFatal = errors.New("language model request failed")

	// ErrContentBlocked is returned when the provider refuses the prompt or output
	// on safety grounds. It is always fatal.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrEmptyResponse is returned when the provider answers with no text.
	ErrEmptyResponse = errors.New("empty response from language model")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// IsTransient reports whether err belongs to a failure class worth retrying.
// An expired deadline is treated as a transient network failure.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, ErrFatal), errors.Is(err, ErrContentBlocked):
		return false
	case errors.Is(err, ErrRateLimited),
		errors.Is(err, ErrOverloaded),
		errors.Is(err, ErrTransientNetwork),
		errors.Is(err, context.DeadlineExceeded):
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}

// ClassifyStatus maps an HTTP status code reported by a provider to a failure
// class. Codes outside the retryable set are fatal.
func ClassifyStatus(code int) error {
	switch {
	case code == 429:
		return ErrRateLimited
	case code == 503 || code == 529:
		return ErrOverloaded
	case code == 408 || code == 500 || code == 502 || code == 504:
		return ErrTransientNetwork
	default:
		return ErrFatal
	}
}

// Classify wraps a raw provider error with its failure class. Errors that are
// already classified are returned unchanged.
func Classify(err error, code int) error {
	if err == nil {
		return nil
	}
	if isClassified(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTransientNetwork, err)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", ErrFatal, err)
	}
	if code > 0 {
		return fmt.Errorf("%w: %w", ClassifyStatus(code), err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", ErrTransientNetwork, err)
	}
	return fmt.Errorf("%w: %w", ErrFatal, err)
}

func isClassified(err error) bool {
	return errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrOverloaded) ||
		errors.Is(err, ErrTransientNetwork) ||
		errors.Is(err, ErrFatal) ||
		errors.Is(err, ErrContentBlocked)
}
