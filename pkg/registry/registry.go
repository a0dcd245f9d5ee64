// Package registry keeps the catalog of named units of work that the CLI and the
// HTTP adapter can submit by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/carrier/pkg/propagate"
)

// Registry manages the available units of work.
type Registry struct {
	mu    sync.RWMutex
	works map[string]propagate.Work
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		works: make(map[string]propagate.Work),
	}
}

// Register adds a unit of work to the registry.
// If one with the same name exists, it is overwritten.
func (r *Registry) Register(name string, w propagate.Work) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.works[name] = w
}

// Lookup returns the unit of work registered under name.
// Returns an error if it is not found.
func (r *Registry) Lookup(name string) (propagate.Work, error) {
	r.mu.RLock()
	w, ok := r.works[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("work not found: %s", name)
	}
	return w, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.works))
	for name := range r.works {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
