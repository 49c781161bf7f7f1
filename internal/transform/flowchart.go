package transform

import (
	"strings"
)

// DefaultDirection is used when a flowchart does not name a valid direction.
const DefaultDirection = "TD"

var validDirections = map[string]bool{
	"TD": true,
	"TB": true,
	"BT": true,
	"LR": true,
	"RL": true,
}

// FlowchartNode is one node of a parsed flowchart.
type FlowchartNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// FlowchartEdge connects two node IDs, optionally with a label.
type FlowchartEdge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
}

// FlowchartStats summarizes a rendered flowchart.
type FlowchartStats struct {
	Nodes     int
	Edges     int
	Decisions int
	// Depth is the number of BFS levels reachable from the entry nodes.
	Depth int
}

// Flowchart is the result of rendering a node/edge graph.
type Flowchart struct {
	Text      string
	Direction string
	Stats     FlowchartStats
}

type shape struct {
	open, close string
}

var (
	shapeTerminal = shape{`(["`, `"])`}
	shapeDecision = shape{`{"`, `"}`}
	shapeIO       = shape{`[/"`, `"/]`}
	shapeProcess  = shape{`["`, `"]`}
)

var nodeShapes = map[string]shape{
	"start":       shapeTerminal,
	"end":         shapeTerminal,
	"terminal":    shapeTerminal,
	"decision":    shapeDecision,
	"input":       shapeIO,
	"output":      shapeIO,
	"inputoutput": shapeIO,
	"io":          shapeIO,
	"process":     shapeProcess,
	"action":      shapeProcess,
	"step":        shapeProcess,
}

// NormalizeDirection upper-cases d and returns it if valid, DefaultDirection otherwise.
func NormalizeDirection(d string) string {
	d = strings.ToUpper(strings.TrimSpace(d))
	if validDirections[d] {
		return d
	}
	return DefaultDirection
}

// SanitizeID keeps only ASCII letters, digits and underscores.
func SanitizeID(id string) string {
	var sb strings.Builder
	for _, r := range id {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// ToFlowchartText renders nodes and edges as Mermaid flowchart source.
func ToFlowchartText(direction string, nodes []FlowchartNode, edges []FlowchartEdge) (string, error) {
	fc, err := RenderFlowchart(direction, nodes, edges)
	if err != nil {
		return "", err
	}
	return fc.Text, nil
}

// RenderFlowchart renders the graph and reports its statistics. Nodes and
// edges whose IDs sanitize to empty are skipped, and repeated node IDs keep
// their first declaration. A missing or unrecognized node type fails the
// whole render with an *UnknownNodeTypeError, and an edge naming a node that
// was never declared fails it with an *UndeclaredNodeError.
func RenderFlowchart(direction string, nodes []FlowchartNode, edges []FlowchartEdge) (*Flowchart, error) {
	dir := NormalizeDirection(direction)
	lines := []string{"flowchart " + dir}

	declared := make(map[string]bool, len(nodes))
	order := make([]string, 0, len(nodes))
	decisions := 0

	for _, n := range nodes {
		id := SanitizeID(strings.TrimSpace(n.ID))
		if id == "" || declared[id] {
			continue
		}

		nodeType := strings.ToLower(strings.TrimSpace(n.Type))
		s, ok := nodeShapes[nodeType]
		if !ok {
			return nil, &UnknownNodeTypeError{NodeID: n.ID, Type: n.Type}
		}
		if nodeType == "decision" {
			decisions++
		}

		label := escapeLabel(n.Label)
		if label == "" {
			label = id
		}

		lines = append(lines, "    "+id+s.open+label+s.close)
		declared[id] = true
		order = append(order, id)
	}

	adjacency := make(map[string][]string)
	incoming := make(map[string]int)
	edgeCount := 0

	for _, e := range edges {
		from := SanitizeID(strings.TrimSpace(e.From))
		to := SanitizeID(strings.TrimSpace(e.To))
		if from == "" || to == "" {
			continue
		}
		for _, id := range []string{from, to} {
			if !declared[id] {
				return nil, &UndeclaredNodeError{From: e.From, To: e.To, NodeID: id}
			}
		}

		if label := escapeLabel(e.Label); label != "" {
			lines = append(lines, "    "+from+` -->|"`+label+`"| `+to)
		} else {
			lines = append(lines, "    "+from+" --> "+to)
		}
		edgeCount++

		adjacency[from] = append(adjacency[from], to)
		incoming[to]++
	}

	return &Flowchart{
		Text:      strings.Join(lines, "\n"),
		Direction: dir,
		Stats: FlowchartStats{
			Nodes:     len(order),
			Edges:     edgeCount,
			Decisions: decisions,
			Depth:     bfsDepth(order, adjacency, incoming),
		},
	}, nil
}

// bfsDepth returns the number of BFS levels starting from nodes with no
// incoming edges. When every node has a predecessor, the first node is the entry.
func bfsDepth(order []string, adjacency map[string][]string, incoming map[string]int) int {
	if len(order) == 0 {
		return 0
	}

	var frontier []string
	for _, id := range order {
		if incoming[id] == 0 {
			frontier = append(frontier, id)
		}
	}
	if len(frontier) == 0 {
		frontier = []string{order[0]}
	}

	visited := make(map[string]bool, len(order))
	for _, id := range frontier {
		visited[id] = true
	}

	depth := 0
	for len(frontier) > 0 {
		depth++
		var next []string
		for _, id := range frontier {
			for _, to := range adjacency[id] {
				if !visited[to] {
					visited[to] = true
					next = append(next, to)
				}
			}
		}
		frontier = next
	}
	return depth
}

func escapeLabel(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, `"`, "&quot;")
}
