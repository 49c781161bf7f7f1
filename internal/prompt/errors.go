package prompt

import "errors"

var (
	// ErrEmptyQuestion is returned when Compose is called without a question.
	ErrEmptyQuestion = errors.New("question cannot be empty")

	// ErrInvalidTemplate is returned when a template override is malformed.
	ErrInvalidTemplate = errors.New("invalid prompt template")
)
