// Package registry holds the set of modules an engine instance serves.
// The registry is explicit construction-time configuration: nothing is
// registered through package init or global state.
package registry

import (
	"sync"

	"github.com/lifekeep/docview/core/domain"
	"github.com/lifekeep/docview/pkg/lib/bundle"
)

type Registry struct {
	mu      sync.RWMutex
	modules map[string]bundle.Module
	order   []string
}

// New builds a registry over the given modules. Duplicate ids keep the
// first registration.
func New(modules ...bundle.Module) *Registry {
	r := &Registry{modules: make(map[string]bundle.Module, len(modules))}
	for _, m := range modules {
		if _, ok := r.modules[m.Id]; ok {
			continue
		}
		r.modules[m.Id] = m
		r.order = append(r.order, m.Id)
	}
	return r
}

// NewBundled builds a registry over every built-in module.
func NewBundled() *Registry {
	return New(bundle.Modules()...)
}

// Register adds a module after construction. Registering an id twice is
// a conflict.
func (r *Registry) Register(m bundle.Module) error {
	if m.Id == "" {
		return domain.Validationf("module id must not be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.modules[m.Id]; ok {
		return domain.Conflictf("module %q is already registered", m.Id)
	}
	r.modules[m.Id] = m
	r.order = append(r.order, m.Id)
	return nil
}

// Get returns a deep copy of the module's seed data.
func (r *Registry) Get(id string) (bundle.Module, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[id]
	if !ok {
		return bundle.Module{}, domain.NotFoundf("module %q is not registered", id)
	}
	return m.Copy(), nil
}

// List returns deep copies of all modules in registration order.
func (r *Registry) List() []bundle.Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]bundle.Module, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.modules[id].Copy())
	}
	return out
}
