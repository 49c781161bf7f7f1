package visualization

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/phrazzld/vizgen/internal/domain"
	"github.com/phrazzld/vizgen/internal/prompt"
)

// Constructor builds a Strategy bound to a model.
type Constructor func(model ModelHandle) Strategy

// Registration pairs a kind with its constructor.
type Registration struct {
	Kind domain.Kind
	New  Constructor
}

// Registry is an immutable lookup table from kind to strategy constructor,
// safe for concurrent use.
type Registry struct {
	constructors map[domain.Kind]Constructor
	kinds        []domain.Kind
}

// NewRegistry builds a Registry from registrations. Empty or duplicate kinds
// and nil constructors are rejected.
func NewRegistry(registrations ...Registration) (*Registry, error) {
	r := &Registry{constructors: make(map[domain.Kind]Constructor, len(registrations))}

	for _, reg := range registrations {
		kind, err := domain.ParseKind(reg.Kind.String())
		if err != nil {
			return nil, fmt.Errorf("register strategy: %w", err)
		}
		if reg.New == nil {
			return nil, fmt.Errorf("register strategy %q: constructor cannot be nil", kind)
		}
		if _, exists := r.constructors[kind]; exists {
			return nil, fmt.Errorf("register strategy %q: already registered", kind)
		}
		r.constructors[kind] = reg.New
		r.kinds = append(r.kinds, kind)
	}

	if len(r.kinds) == 0 {
		return nil, errors.New("registry requires at least one strategy")
	}
	sort.Slice(r.kinds, func(i, j int) bool { return r.kinds[i] < r.kinds[j] })

	return r, nil
}

// DefaultRegistry registers the flowchart and mindmap strategies.
func DefaultRegistry(composer *prompt.Composer, logger *slog.Logger) *Registry {
	r, err := NewRegistry(
		Registration{
			Kind: domain.KindFlowchart,
			New: func(model ModelHandle) Strategy {
				return NewFlowchartStrategy(composer, model, logger)
			},
		},
		Registration{
			Kind: domain.KindMindmap,
			New: func(model ModelHandle) Strategy {
				return NewMindmapStrategy(composer, model, logger)
			},
		},
	)
	if err != nil {
		// Static registrations; unreachable.
		panic(err)
	}
	return r
}

// Resolve normalizes kind and checks that it is registered.
func (r *Registry) Resolve(kind string) (domain.Kind, error) {
	k, err := domain.ParseKind(kind)
	if err != nil || r.constructors[k] == nil {
		return "", &UnsupportedKindError{Requested: kind, Supported: r.SupportedKinds()}
	}
	return k, nil
}

// Create returns a new strategy for kind bound to model.
func (r *Registry) Create(kind domain.Kind, model ModelHandle) (Strategy, error) {
	k, err := r.Resolve(kind.String())
	if err != nil {
		return nil, err
	}
	return r.constructors[k](model), nil
}

// SupportedKinds returns the registered kinds in sorted order.
func (r *Registry) SupportedKinds() []domain.Kind {
	out := make([]domain.Kind, len(r.kinds))
	copy(out, r.kinds)
	return out
}

// Supports reports whether kind is registered.
func (r *Registry) Supports(kind domain.Kind) bool {
	_, err := r.Resolve(kind.String())
	return err == nil
}
