package domain

import (
	"fmt"
	"strings"
)

// Complexity is the level of detail requested for a visualization.
type Complexity string

// Possible complexity tiers
const (
	ComplexitySimple   Complexity = "simple"
	ComplexityBalanced Complexity = "balanced"
	ComplexityDetailed Complexity = "detailed"
)

// Bounds and defaults for GenerationOptions.
const (
	DefaultMaxDepth = 4
	MinMaxDepth     = 2
	MaxMaxDepth     = 6
)

// GenerationOptions customizes how a visualization is generated. Options are
// normalized once when a job is submitted and never change afterwards.
type GenerationOptions struct {
	Complexity Complexity `json:"complexity"`
	MaxDepth   int        `json:"max_depth"`
	Style      string     `json:"style"`
}

// DefaultOptions returns the options applied when a request omits them.
func DefaultOptions() GenerationOptions {
	return GenerationOptions{
		Complexity: ComplexityBalanced,
		MaxDepth:   DefaultMaxDepth,
		Style:      "",
	}
}

// Normalize fills defaults and clamps MaxDepth into [MinMaxDepth, MaxMaxDepth].
// A zero MaxDepth means "not set". Negative depths and unknown complexity tiers
// are rejected with ErrInvalidOptions.
func (o GenerationOptions) Normalize() (GenerationOptions, error) {
	out := o

	out.Complexity = Complexity(strings.ToLower(strings.TrimSpace(string(o.Complexity))))
	if out.Complexity == "" {
		out.Complexity = ComplexityBalanced
	}
	if !IsValidComplexity(out.Complexity) {
		return GenerationOptions{}, fmt.Errorf("%w: unknown complexity %q", ErrInvalidOptions, o.Complexity)
	}

	switch {
	case o.MaxDepth < 0:
		return GenerationOptions{}, fmt.Errorf("%w: max_depth must be positive, got %d", ErrInvalidOptions, o.MaxDepth)
	case o.MaxDepth == 0:
		out.MaxDepth = DefaultMaxDepth
	case o.MaxDepth < MinMaxDepth:
		out.MaxDepth = MinMaxDepth
	case o.MaxDepth > MaxMaxDepth:
		out.MaxDepth = MaxMaxDepth
	}

	out.Style = strings.TrimSpace(o.Style)
	return out, nil
}

// IsValidComplexity reports whether c is one of the known tiers.
func IsValidComplexity(c Complexity) bool {
	switch c {
	case ComplexitySimple, ComplexityBalanced, ComplexityDetailed:
		return true
	default:
		return false
	}
}
