package visualization

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"github.com/phrazzld/vizgen/internal/domain"
	"github.com/phrazzld/vizgen/internal/prompt"
	"github.com/phrazzld/vizgen/internal/transform"
)

// MindmapTemperature is the sampling temperature for mindmap generation.
const MindmapTemperature = 0.7

var headingPattern = regexp.MustCompile(`(?m)^[ \t]*#+[ \t]+\S`)

var mindmapFormat = prompt.Format{
	Task: "Organize the answer as a hierarchical mindmap with a single central topic.",
	Schema: `{
  "title": "The central topic of the mindmap",
  "children": [
    {
      "title": "A main branch",
      "children": [
        {"title": "A nested sub-topic", "children": []}
      ]
    }
  ]
}`,
	Rules: []string{
		`The root object must have a "title" and a "children" property.`,
		`Every node in a "children" array must also have a "title" and a "children" property.`,
		`"children" is an array of nodes and may be empty.`,
		"Do not nest deeper than the maximum depth.",
	},
}

// MindmapStrategy renders a model-generated tree as markdown headings.
type MindmapStrategy struct {
	base
}

var _ Strategy = (*MindmapStrategy)(nil)

// NewMindmapStrategy creates a mindmap strategy bound to model.
func NewMindmapStrategy(composer *prompt.Composer, model ModelHandle, logger *slog.Logger) *MindmapStrategy {
	return &MindmapStrategy{
		base: newBase(domain.KindMindmap, composer, model, logger, MindmapTemperature, mindmapFormat),
	}
}

// Generate implements Strategy.
func (s *MindmapStrategy) Generate(
	ctx context.Context,
	question string,
	opts domain.GenerationOptions,
) (*domain.GenerationResult, error) {
	var root transform.MindmapNode
	hint, err := s.complete(ctx, question, opts, &root)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(root.Title) == "" {
		return nil, &MalformedOutputError{
			Kind:   s.kind,
			Reason: ReasonInvalidStructure,
			Err:    errors.New("root node has no title"),
		}
	}

	content := transform.ToMindmapText(&root, opts.MaxDepth)
	if !s.ValidateContent(content) {
		return nil, &ValidationError{Kind: s.kind, Reason: "markdown must contain a heading and be 10-50000 characters"}
	}

	stats := transform.Stats(&root, opts.MaxDepth)
	s.logger.InfoContext(ctx, "Generated mindmap",
		"total_nodes", stats.Nodes,
		"actual_depth", stats.Depth,
		"content_length", len(content))

	return &domain.GenerationResult{
		Kind:    s.kind,
		Content: content,
		Metadata: map[string]any{
			domain.MetaTotalNodes:        stats.Nodes,
			domain.MetaSourceNodes:       transform.CountNodes(&root),
			domain.MetaActualDepth:       stats.Depth,
			domain.MetaRequestedMaxDepth: opts.MaxDepth,
			domain.MetaDomain:            hint.String(),
		},
	}, nil
}

// ValidateContent accepts non-blank markdown of bounded length with at least
// one heading line.
func (s *MindmapStrategy) ValidateContent(content string) bool {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" || !withinLengthBounds(trimmed) {
		return false
	}
	return headingPattern.MatchString(trimmed)
}
