package viewstore

import (
	"context"
	"sync"

	"github.com/lifekeep/docview/core/domain"
	"github.com/lifekeep/docview/core/registry"
	"github.com/lifekeep/docview/pkg/lib/model"
	"github.com/lifekeep/docview/util/slice"
)

// Key addresses one owner's views of one module.
type Key struct {
	Module string
	Owner  string
}

// ModuleState is the module-level half of the store: the property
// schema and frozen configuration shared by every owner of the module.
type ModuleState struct {
	Properties []model.Property
	Frozen     model.FrozenConfig
}

func (m *ModuleState) Copy() *ModuleState {
	c := &ModuleState{Frozen: m.Frozen.Copy()}
	c.Properties = make([]model.Property, len(m.Properties))
	for i, p := range m.Properties {
		c.Properties[i] = p.Copy()
	}
	return c
}

func (m *ModuleState) PropertyById(id string) (model.Property, bool) {
	for _, p := range m.Properties {
		if p.Id == id {
			return p, true
		}
	}
	return model.Property{}, false
}

// State is the working set for one (module, owner) pair: the module's
// shared schema plus the owner's own views.
type State struct {
	Properties []model.Property
	Views      []model.View
	Frozen     model.FrozenConfig
}

// PropertyById satisfies the evaluator's schema interface.
func (s *State) PropertyById(id string) (model.Property, bool) {
	for _, p := range s.Properties {
		if p.Id == id {
			return p, true
		}
	}
	return model.Property{}, false
}

func (s *State) viewIndex(id string) int {
	for i, v := range s.Views {
		if v.Id == id {
			return i
		}
	}
	return -1
}

// Repository persists the module-level schema and the per-owner views
// separately. Load methods return ErrNotFound for anything never saved;
// Save methods replace whole documents (last write wins). ViewOwners
// enumerates every key of a module with stored views, for schema-change
// cascades.
type Repository interface {
	LoadSchema(ctx context.Context, module string) (*ModuleState, error)
	SaveSchema(ctx context.Context, module string, st *ModuleState) error
	LoadViews(ctx context.Context, key Key) ([]model.View, error)
	SaveViews(ctx context.Context, key Key, views []model.View) error
	ViewOwners(ctx context.Context, module string) ([]Key, error)
}

type memoryRepository struct {
	mu      sync.RWMutex
	schemas map[string]*ModuleState
	views   map[Key][]model.View
}

// NewMemoryRepository returns an in-process Repository for tests and
// embedding. Production deployments put their own storage behind the
// interface.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		schemas: make(map[string]*ModuleState),
		views:   make(map[Key][]model.View),
	}
}

func (m *memoryRepository) LoadSchema(_ context.Context, module string) (*ModuleState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.schemas[module]
	if !ok {
		return nil, domain.NotFoundf("no schema for module %q", module)
	}
	return st.Copy(), nil
}

func (m *memoryRepository) SaveSchema(_ context.Context, module string, st *ModuleState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schemas[module] = st.Copy()
	return nil
}

func (m *memoryRepository) LoadViews(_ context.Context, key Key) ([]model.View, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	views, ok := m.views[key]
	if !ok {
		return nil, domain.NotFoundf("no views for module %q owner %q", key.Module, key.Owner)
	}
	return copyViews(views), nil
}

func (m *memoryRepository) SaveViews(_ context.Context, key Key, views []model.View) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.views[key] = copyViews(views)
	return nil
}

func (m *memoryRepository) ViewOwners(_ context.Context, module string) ([]Key, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []Key
	for key := range m.views {
		if key.Module == module {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func copyViews(views []model.View) []model.View {
	c := make([]model.View, len(views))
	for i, v := range views {
		c[i] = v.Copy()
	}
	return c
}

// EnsureSchema loads the module's shared schema, seeding it from the
// registry on first access.
func EnsureSchema(ctx context.Context, repo Repository, reg *registry.Registry, module string) (*ModuleState, error) {
	sch, err := repo.LoadSchema(ctx, module)
	if err == nil {
		return sch, nil
	}
	if domain.Kind(err) != domain.KindNotFound {
		return nil, err
	}
	mod, err := reg.Get(module)
	if err != nil {
		return nil, err
	}
	sch = &ModuleState{Properties: mod.Properties, Frozen: mod.Frozen}
	if err := repo.SaveSchema(ctx, module, sch); err != nil {
		return nil, err
	}
	return sch, nil
}

// Ensure loads the owner's working set, seeding the schema and the
// owner's views on first access. Seed views shed any reference to a
// property already removed from the shared schema, so a late-arriving
// owner never starts with dangling sorts or columns.
func Ensure(ctx context.Context, repo Repository, reg *registry.Registry, key Key) (*State, error) {
	sch, err := EnsureSchema(ctx, repo, reg, key.Module)
	if err != nil {
		return nil, err
	}
	views, err := repo.LoadViews(ctx, key)
	if err != nil {
		if domain.Kind(err) != domain.KindNotFound {
			return nil, err
		}
		mod, err := reg.Get(key.Module)
		if err != nil {
			return nil, err
		}
		views = mod.Views
		StripUnknownProperties(views, sch)
		if err := repo.SaveViews(ctx, key, views); err != nil {
			return nil, err
		}
	}
	return &State{Properties: sch.Properties, Views: views, Frozen: sch.Frozen}, nil
}

// StripUnknownProperties removes every reference to a property the
// schema no longer defines: visible columns, filters, sorts and
// grouping. Used when seeding views and when a property deletion
// cascades through stored views.
func StripUnknownProperties(views []model.View, sch *ModuleState) {
	known := func(id string) bool {
		_, ok := sch.PropertyById(id)
		return ok
	}
	for i := range views {
		v := &views[i]
		v.VisibleProperties = slice.Filter(v.VisibleProperties, known)
		v.Filters = slice.Filter(v.Filters, func(f model.Filter) bool {
			return known(f.PropertyId)
		})
		v.Sorts = slice.Filter(v.Sorts, func(srt model.Sort) bool {
			return known(srt.PropertyId)
		})
		if v.GroupBy != "" && !known(v.GroupBy) {
			v.GroupBy = ""
		}
	}
}
