package domain

import "strings"

// Kind identifies a visualization type, e.g. "flowchart" or "mindmap".
type Kind string

// Built-in visualization kinds.
const (
	KindFlowchart Kind = "flowchart"
	KindMindmap   Kind = "mindmap"
)

// ParseKind normalizes a caller-supplied kind identifier. Lookup is
// case-insensitive and ignores surrounding whitespace.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if k == "" {
		return "", ErrInvalidKind
	}
	return k, nil
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	return string(k)
}
