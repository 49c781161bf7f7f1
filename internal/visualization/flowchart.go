package visualization

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/vizgen/internal/domain"
	"github.com/phrazzld/vizgen/internal/prompt"
	"github.com/phrazzld/vizgen/internal/transform"
)

// FlowchartTemperature is the sampling temperature for flowchart generation.
const FlowchartTemperature = 0.4

var flowchartFormat = prompt.Format{
	Task: "Design a clear flow of how this works and describe it as a directed graph for a Mermaid flowchart.",
	Schema: `{
  "direction": "TD",
  "nodes": [
    {"id": "A1", "label": "Start", "type": "start"},
    {"id": "B1", "label": "Process step", "type": "process"},
    {"id": "C1", "label": "Decision point?", "type": "decision"},
    {"id": "D1", "label": "Read input", "type": "input"},
    {"id": "E1", "label": "End", "type": "end"}
  ],
  "edges": [
    {"from": "A1", "to": "B1", "label": "optional edge label"}
  ]
}`,
	Rules: []string{
		`"direction" is one of TD, LR, BT or RL.`,
		`"type" is one of start, end, decision, input, output or process.`,
		"Node ids must be unique and contain only letters, digits and underscores.",
		"Every edge must reference declared node ids.",
		"Keep the longest path within the maximum depth.",
	},
}

// flowchartDocument is the JSON shape the model returns. Some models answer
// with "shape" instead of "type"; both are accepted.
type flowchartDocument struct {
	Direction string                    `json:"direction"`
	Nodes     []flowchartNodeDocument   `json:"nodes"`
	Edges     []transform.FlowchartEdge `json:"edges"`
}

type flowchartNodeDocument struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
	Shape string `json:"shape"`
}

func (d flowchartDocument) nodes() []transform.FlowchartNode {
	out := make([]transform.FlowchartNode, len(d.Nodes))
	for i, n := range d.Nodes {
		nodeType := n.Type
		if nodeType == "" {
			nodeType = n.Shape
		}
		out[i] = transform.FlowchartNode{ID: n.ID, Label: n.Label, Type: nodeType}
	}
	return out
}

// FlowchartStrategy renders a model-generated graph as Mermaid flowchart source.
type FlowchartStrategy struct {
	base
}

var _ Strategy = (*FlowchartStrategy)(nil)

// NewFlowchartStrategy creates a flowchart strategy bound to model.
func NewFlowchartStrategy(composer *prompt.Composer, model ModelHandle, logger *slog.Logger) *FlowchartStrategy {
	return &FlowchartStrategy{
		base: newBase(domain.KindFlowchart, composer, model, logger, FlowchartTemperature, flowchartFormat),
	}
}

// Generate implements Strategy. MaxDepth is passed to the model as guidance
// only; a graph is never truncated.
func (s *FlowchartStrategy) Generate(
	ctx context.Context,
	question string,
	opts domain.GenerationOptions,
) (*domain.GenerationResult, error) {
	var doc flowchartDocument
	hint, err := s.complete(ctx, question, opts, &doc)
	if err != nil {
		return nil, err
	}

	fc, err := transform.RenderFlowchart(doc.Direction, doc.nodes(), doc.Edges)
	if errors.Is(err, transform.ErrUndeclaredNode) {
		return nil, &MalformedOutputError{Kind: s.kind, Reason: ReasonInvalidStructure, Err: err}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render flowchart: %w", err)
	}
	if fc.Stats.Nodes == 0 {
		return nil, &MalformedOutputError{
			Kind:   s.kind,
			Reason: ReasonInvalidStructure,
			Err:    errors.New("flowchart has no renderable nodes"),
		}
	}

	if !s.ValidateContent(fc.Text) {
		return nil, &ValidationError{Kind: s.kind, Reason: "content must start with flowchart and be 10-50000 characters"}
	}

	s.logger.InfoContext(ctx, "Generated flowchart",
		"total_nodes", fc.Stats.Nodes,
		"edge_count", fc.Stats.Edges,
		"decision_count", fc.Stats.Decisions,
		"content_length", len(fc.Text))

	return &domain.GenerationResult{
		Kind:    s.kind,
		Content: fc.Text,
		Metadata: map[string]any{
			domain.MetaTotalNodes:    fc.Stats.Nodes,
			domain.MetaEdgeCount:     fc.Stats.Edges,
			domain.MetaDecisionCount: fc.Stats.Decisions,
			domain.MetaActualDepth:   fc.Stats.Depth,
			domain.MetaDirection:     fc.Direction,
			domain.MetaDomain:        hint.String(),
		},
	}, nil
}

// ValidateContent accepts bounded-length text that opens with the flowchart keyword.
func (s *FlowchartStrategy) ValidateContent(content string) bool {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" || !withinLengthBounds(trimmed) {
		return false
	}
	return strings.HasPrefix(trimmed, "flowchart")
}
