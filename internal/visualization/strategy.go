package visualization

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/phrazzld/vizgen/internal/domain"
	"github.com/phrazzld/vizgen/internal/generation"
	"github.com/phrazzld/vizgen/internal/prompt"
	"github.com/phrazzld/vizgen/internal/transform"
)

// Content length bounds, in runes, shared by the built-in strategies.
const (
	MinContentLength = 10
	MaxContentLength = 50000
)

// Strategy generates and validates one kind of visualization.
type Strategy interface {
	// Kind returns the visualization kind this strategy produces.
	Kind() domain.Kind

	// Generate produces a visualization for question. opts must already be
	// normalized.
	Generate(ctx context.Context, question string, opts domain.GenerationOptions) (*domain.GenerationResult, error)

	// ValidateContent reports whether content is acceptable output for this kind.
	ValidateContent(content string) bool
}

// ModelHandle is the language model a strategy talks to.
type ModelHandle struct {
	Generator       generation.Generator
	ModelID         string
	MaxOutputTokens int
}

// base holds what both built-in strategies share.
type base struct {
	kind        domain.Kind
	composer    *prompt.Composer
	model       ModelHandle
	logger      *slog.Logger
	temperature float64
	format      prompt.Format
}

func newBase(
	kind domain.Kind,
	composer *prompt.Composer,
	model ModelHandle,
	logger *slog.Logger,
	temperature float64,
	format prompt.Format,
) base {
	return base{
		kind:        kind,
		composer:    composer,
		model:       model,
		logger:      logger.With("component", "visualization", "visualization_type", kind.String()),
		temperature: temperature,
		format:      format,
	}
}

// Kind implements Strategy.
func (b *base) Kind() domain.Kind {
	return b.kind
}

// complete composes the prompt, calls the model and decodes the fenced JSON
// reply into v. Returns the detected domain.
func (b *base) complete(
	ctx context.Context,
	question string,
	opts domain.GenerationOptions,
	v any,
) (prompt.DomainHint, error) {
	hint := prompt.Detect(question)
	text, err := b.composer.Compose(prompt.Request{
		Question: question,
		Options:  opts,
		Domain:   hint,
		Format:   b.format,
	})
	if err != nil {
		return hint, fmt.Errorf("failed to compose %s prompt: %w", b.kind, err)
	}

	b.logger.DebugContext(ctx, "Calling language model",
		"model", b.model.ModelID,
		"domain", hint.String(),
		"complexity", opts.Complexity,
		"max_depth", opts.MaxDepth,
		"prompt_length", len(text))

	raw, err := b.model.Generator.Generate(ctx, b.model.ModelID, text, generation.Config{
		Temperature:     b.temperature,
		MaxOutputTokens: b.model.MaxOutputTokens,
	})
	if err != nil {
		return hint, err
	}

	b.logger.DebugContext(ctx, "Received model output", "response_length", len(raw))

	if err := transform.DecodeJSONBlock(raw, v); err != nil {
		reason := ReasonInvalidJSON
		if errors.Is(err, transform.ErrNoFencedBlock) {
			reason = ReasonNoFencedBlock
		}
		return hint, &MalformedOutputError{Kind: b.kind, Reason: reason, Err: err}
	}
	return hint, nil
}

// withinLengthBounds reports whether content has an acceptable rune count.
func withinLengthBounds(content string) bool {
	n := utf8.RuneCountInString(content)
	return n >= MinContentLength && n <= MaxContentLength
}
