package pages

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
)

// Choice is a (label, name) pair for page type selection lists.
type Choice struct {
	Label string
	Name  string
}

// Registry maps view labels to views.
type Registry struct {
	views   map[string]View
	version atomic.Uint64
	mu      sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{views: make(map[string]View)}
}

// Register adds v under v.Label().
func (r *Registry) Register(v View) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	label := v.Label()
	if _, ok := r.views[label]; ok {
		return fmt.Errorf("%w: %q", ErrAlreadyRegistered, label)
	}
	r.views[label] = v
	r.version.Add(1)
	return nil
}

// MustRegister registers every view and panics on the first error.
func (r *Registry) MustRegister(views ...View) {
	for _, v := range views {
		if err := r.Register(v); err != nil {
			panic(err)
		}
	}
}

// Unregister removes the view registered under label.
func (r *Registry) Unregister(label string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.views[label]; !ok {
		return fmt.Errorf("%w: view %q", ErrNotRegistered, label)
	}
	delete(r.views, label)
	r.version.Add(1)
	return nil
}

// Get returns the view registered under label.
func (r *Registry) Get(label string) (View, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.views[label]
	if !ok {
		return nil, fmt.Errorf("%w: view %q", ErrNotRegistered, label)
	}
	return v, nil
}

// Views returns every registered view ordered by name, then label.
func (r *Registry) Views() []View {
	r.mu.RLock()
	out := make([]View, 0, len(r.views))
	for _, v := range r.views {
		out = append(out, v)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b View) int {
		return cmp.Or(cmp.Compare(a.Name(), b.Name()), cmp.Compare(a.Label(), b.Label()))
	})
	return out
}

// Choices returns (label, name) pairs in the order of Views.
func (r *Registry) Choices() []Choice {
	views := r.Views()
	out := make([]Choice, len(views))
	for i, v := range views {
		out[i] = Choice{Label: v.Label(), Name: v.Name()}
	}
	return out
}

// Len returns the number of registered views.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.views)
}

// Version changes whenever a view is registered or removed.
func (r *Registry) Version() uint64 {
	return r.version.Load()
}
