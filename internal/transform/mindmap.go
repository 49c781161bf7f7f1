package transform

import (
	"strings"
)

// MindmapNode is one node of a parsed mindmap tree.
type MindmapNode struct {
	Title    string         `json:"title"`
	Children []*MindmapNode `json:"children"`
}

// MindmapStats describes what ToMindmapText renders for a tree.
type MindmapStats struct {
	// Nodes is the number of rendered headings.
	Nodes int
	// Depth is the deepest rendered level; the root is level 1.
	Depth int
}

// ToMindmapText renders root as markdown headings, one per node, with the
// heading level equal to the node level (root is "#"). Levels beyond maxDepth
// are dropped, as are nodes with blank titles together with their subtrees.
// A maxDepth of zero or less renders the whole tree.
func ToMindmapText(root *MindmapNode, maxDepth int) string {
	text, _ := renderMindmap(root, maxDepth)
	return text
}

// Stats returns the rendered node count and depth for root under maxDepth.
func Stats(root *MindmapNode, maxDepth int) MindmapStats {
	_, stats := renderMindmap(root, maxDepth)
	return stats
}

// CountNodes returns the number of nodes in the parsed tree.
func CountNodes(root *MindmapNode) int {
	if root == nil {
		return 0
	}
	count := 1
	for _, child := range root.Children {
		count += CountNodes(child)
	}
	return count
}

// Depth returns the number of levels in the parsed tree.
func Depth(root *MindmapNode) int {
	if root == nil {
		return 0
	}
	deepest := 0
	for _, child := range root.Children {
		if d := Depth(child); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

func renderMindmap(root *MindmapNode, maxDepth int) (string, MindmapStats) {
	var (
		lines []string
		stats MindmapStats
	)

	var walk func(n *MindmapNode, level int)
	walk = func(n *MindmapNode, level int) {
		if n == nil || (maxDepth > 0 && level > maxDepth) {
			return
		}
		title := cleanTitle(n.Title)
		if title == "" {
			return
		}

		lines = append(lines, strings.Repeat("#", level)+" "+title)
		stats.Nodes++
		if level > stats.Depth {
			stats.Depth = level
		}
		for _, child := range n.Children {
			walk(child, level+1)
		}
	}
	walk(root, 1)

	return strings.Join(lines, "\n"), stats
}

// cleanTitle collapses whitespace so a title always fits on one heading line.
func cleanTitle(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
