package provider

import (
	"fmt"
	"sort"

	"github.com/kailas-cloud/vectorgate/internal/domain"
)

// Registry selects an adapter by provider name. It is populated once at
// wiring time and read-only afterwards.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry creates a registry with the given adapters, keyed by Name().
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.Name()] = a
	}
	return r
}

// Get returns the adapter for a provider name.
func (r *Registry) Get(name string) (Adapter, error) {
	a, ok := r.adapters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", domain.ErrUnknownProvider, name, r.Names())
	}
	return a, nil
}

// Names returns the registered provider names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
