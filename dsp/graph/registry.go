package graph

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownNode is returned when a chain names a kind nobody registered.
var ErrUnknownNode = errors.New("unknown node kind")

var errDuplicateNode = errors.New("duplicate node kind")

// Context provides what factories need to build a node.
type Context struct {
	SampleRate float64
	Config     Config
}

// Factory builds one real-domain node from its parameters.
type Factory func(ctx Context, p Params) (RealNode, error)

// Registry maps node kind names to their factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for kind.
func (r *Registry) Register(kind string, factory Factory) error {
	if kind == "" {
		return errors.New("empty node kind")
	}

	if factory == nil {
		return errors.New("nil factory")
	}

	if _, exists := r.factories[kind]; exists {
		return fmt.Errorf("%w: %s", errDuplicateNode, kind)
	}

	r.factories[kind] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(kind string, factory Factory) {
	err := r.Register(kind, factory)
	if err != nil {
		panic("graph registry: " + err.Error())
	}
}

// Lookup returns the factory for kind, or nil.
func (r *Registry) Lookup(kind string) Factory {
	return r.factories[kind]
}

// Kinds returns the registered kind names, sorted.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Build constructs the node described by p.
func (r *Registry) Build(ctx Context, p Params) (RealNode, error) {
	factory := r.Lookup(p.Kind)
	if factory == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, p.Kind)
	}

	node, err := factory(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("graph: build %s: %w", p.Kind, err)
	}
	return node, nil
}
