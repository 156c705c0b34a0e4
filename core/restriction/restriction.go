// Package restriction guards frozen schema and view state. Checks are
// pure reads over a module's FrozenConfig; callers decide when to
// consult them, the guard only answers.
package restriction

import (
	"github.com/samber/lo"

	"github.com/lifekeep/docview/core/domain"
	"github.com/lifekeep/docview/pkg/lib/model"
)

// Operation is a guarded structural change.
type Operation int

const (
	OpAddProperty Operation = iota
	OpAddView
)

type Restrictions struct {
	frozen model.FrozenConfig
}

func New(cfg model.FrozenConfig) Restrictions {
	return Restrictions{frozen: cfg}
}

// IsPropertyFrozen reports whether the property may not be renamed or
// deleted. Both the per-property flag and the frozen config's id list
// freeze it.
func (r Restrictions) IsPropertyFrozen(p model.Property) bool {
	return p.Frozen || lo.Contains(r.frozen.PropertyIds, p.Id)
}

// IsViewFrozen reports whether the view may not be renamed, retyped or
// deleted. Filter, sort and column changes stay allowed on frozen views.
func (r Restrictions) IsViewFrozen(v model.View) bool {
	return v.Frozen || lo.Contains(r.frozen.ViewIds, v.Id)
}

func (r Restrictions) CanAddProperties() bool {
	return r.frozen.CanAddProperties
}

func (r Restrictions) CanAddViews() bool {
	return r.frozen.CanAddViews
}

// Check returns ErrForbidden for the first operation the module does not
// allow.
func (r Restrictions) Check(ops ...Operation) error {
	for _, op := range ops {
		switch op {
		case OpAddProperty:
			if !r.frozen.CanAddProperties {
				return domain.Forbiddenf("module does not accept new properties")
			}
		case OpAddView:
			if !r.frozen.CanAddViews {
				return domain.Forbiddenf("module does not accept new views")
			}
		}
	}
	return nil
}

// CheckPropertyMutable returns ErrForbidden when the property is frozen.
func (r Restrictions) CheckPropertyMutable(p model.Property) error {
	if r.IsPropertyFrozen(p) {
		return domain.Forbiddenf("property %q is frozen", p.Id)
	}
	return nil
}

// CheckViewMutable returns ErrForbidden when the view is frozen.
func (r Restrictions) CheckViewMutable(v model.View) error {
	if r.IsViewFrozen(v) {
		return domain.Forbiddenf("view %q is frozen", v.Id)
	}
	return nil
}
