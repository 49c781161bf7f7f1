package visualization

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phrazzld/vizgen/internal/domain"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrUnsupportedKind = errors.New("unsupported visualization type")
	ErrMalformedOutput = errors.New("malformed model output")
	ErrValidation      = errors.New("generated content failed validation")
)

// UnsupportedKindError is returned when no strategy is registered for a kind.
type UnsupportedKindError struct {
	Requested string
	Supported []domain.Kind
}

func (e *UnsupportedKindError) Error() string {
	names := make([]string, len(e.Supported))
	for i, k := range e.Supported {
		names[i] = k.String()
	}
	return fmt.Sprintf("unsupported visualization type %q (supported: %s)",
		e.Requested, strings.Join(names, ", "))
}

// Is reports whether target is ErrUnsupportedKind.
func (e *UnsupportedKindError) Is(target error) bool {
	return target == ErrUnsupportedKind
}

// MalformedReason says which step of output parsing failed.
type MalformedReason string

// Reasons for MalformedOutputError.
const (
	ReasonNoFencedBlock    MalformedReason = "no-fenced-block"
	ReasonInvalidJSON      MalformedReason = "invalid-json"
	ReasonInvalidStructure MalformedReason = "invalid-structure"
)

// MalformedOutputError is returned when the model reply cannot be parsed into
// the structure the strategy asked for.
type MalformedOutputError struct {
	Kind   domain.Kind
	Reason MalformedReason
	Err    error
}

func (e *MalformedOutputError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("malformed %s output: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("malformed %s output: %s: %v", e.Kind, e.Reason, e.Err)
}

// Unwrap returns the underlying cause.
func (e *MalformedOutputError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrMalformedOutput.
func (e *MalformedOutputError) Is(target error) bool {
	return target == ErrMalformedOutput
}

// ValidationError is returned when rendered content fails the kind's checks.
type ValidationError struct {
	Kind   domain.Kind
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s content failed validation: %s", e.Kind, e.Reason)
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
