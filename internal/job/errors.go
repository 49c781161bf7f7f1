package job

import (
	"context"
	"errors"

	"github.com/phrazzld/vizgen/internal/generation"
	"github.com/phrazzld/vizgen/internal/redact"
	"github.com/phrazzld/vizgen/internal/transform"
	"github.com/phrazzld/vizgen/internal/visualization"
)

var (
	// ErrJobNotFound is returned when a job id is unknown or its entry has expired.
	ErrJobNotFound = errors.New("job not found")

	// ErrEmptyQuestion is returned when a submission has no question text.
	ErrEmptyQuestion = errors.New("question cannot be empty")

	// ErrInvalidTransition is returned when a status change would move backwards.
	ErrInvalidTransition = errors.New("invalid job status transition")

	// ErrDuplicateJob is returned when inserting an id that already exists.
	ErrDuplicateJob = errors.New("job already exists")

	// ErrStopped is returned by Submit after Stop has been called.
	ErrStopped = errors.New("orchestrator is stopped")
)

// MaxSummaryLength bounds error text shown to users verbatim.
const MaxSummaryLength = 160

// User-facing failure summaries.
const (
	GenericFailureMessage    = "Visualization generation failed. Please try again later."
	RateLimitedMessage       = "The AI service is receiving too many requests. Please try again in a moment."
	OverloadedMessage        = "The AI service is temporarily overloaded. Please try again in a few minutes."
	TimeoutMessage           = "The AI service did not respond in time. Please try again."
	ContentBlockedMessage    = "The request was blocked by the AI service's safety filters. Try rephrasing your question."
	MalformedOutputMessage   = "The AI service returned a response that could not be understood. Please try again."
	ValidationFailedMessage  = "The generated visualization did not pass validation. Please try again or rephrase your question."
	UnknownNodeTypeMessage   = "The generated flowchart used an unsupported node type. Please try again."
	ShutdownCancelledMessage = "Visualization generation was cancelled because the service is shutting down."
)

// SummarizeError converts err into a message safe to show to end users.
// Known failure classes map to fixed messages. Other errors are redacted and
// replaced by GenericFailureMessage if they are long or still mention vendor,
// credential or internal identifiers.
func SummarizeError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return ShutdownCancelledMessage
	case errors.Is(err, generation.ErrRateLimited):
		return RateLimitedMessage
	case errors.Is(err, generation.ErrOverloaded):
		return OverloadedMessage
	case errors.Is(err, generation.ErrTransientNetwork), errors.Is(err, context.DeadlineExceeded):
		return TimeoutMessage
	case errors.Is(err, generation.ErrContentBlocked):
		return ContentBlockedMessage
	case errors.Is(err, visualization.ErrMalformedOutput):
		return MalformedOutputMessage
	case errors.Is(err, visualization.ErrValidation):
		return ValidationFailedMessage
	case errors.Is(err, transform.ErrUnknownNodeType):
		return UnknownNodeTypeMessage
	}

	msg := redact.Error(err)
	if len(msg) > MaxSummaryLength || redact.ContainsSensitive(msg) {
		return GenericFailureMessage
	}
	return msg
}
