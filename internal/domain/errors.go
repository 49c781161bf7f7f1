package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrInvalidOptions is returned when generation options fail validation.
	// It is usually wrapped with the offending field.
	ErrInvalidOptions = errors.New("invalid generation options")

	// ErrInvalidKind is returned when a visualization kind is empty or malformed.
	ErrInvalidKind = errors.New("invalid visualization kind")
)
