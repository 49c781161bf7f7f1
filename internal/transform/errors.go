package transform

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFencedBlock is returned when the model output has no fenced code block.
	ErrNoFencedBlock = errors.New("no fenced JSON block found in model output")

	// ErrInvalidJSON is returned when the fenced block is not valid JSON.
	ErrInvalidJSON = errors.New("fenced block is not valid JSON")

	// ErrUnknownNodeType is matched by every UnknownNodeTypeError.
	ErrUnknownNodeType = errors.New("unknown flowchart node type")

	// ErrUndeclaredNode is matched by every UndeclaredNodeError.
	ErrUndeclaredNode = errors.New("flowchart edge references an undeclared node")
)

// UnknownNodeTypeError reports a flowchart node whose type has no shape mapping.
type UnknownNodeTypeError struct {
	NodeID string
	Type   string
}

func (e *UnknownNodeTypeError) Error() string {
	return fmt.Sprintf("unknown flowchart node type %q for node %q", e.Type, e.NodeID)
}

// Is makes errors.Is(err, ErrUnknownNodeType) succeed.
func (e *UnknownNodeTypeError) Is(target error) bool {
	return target == ErrUnknownNodeType
}

// UndeclaredNodeError reports an edge endpoint that no node declares.
type UndeclaredNodeError struct {
	From   string
	To     string
	NodeID string
}

func (e *UndeclaredNodeError) Error() string {
	return fmt.Sprintf("edge %q -> %q references undeclared node %q", e.From, e.To, e.NodeID)
}

// Is makes errors.Is(err, ErrUndeclaredNode) succeed.
func (e *UndeclaredNodeError) Is(target error) bool {
	return target == ErrUndeclaredNode
}
