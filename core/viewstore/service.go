// Package viewstore owns the view lifecycle: per-owner seeding from the
// module registry, create/update/delete/duplicate and the single-default
// invariant. Writes re-check every invariant; storage applies them
// last-write-wins.
package viewstore

import (
	"context"

	"github.com/globalsign/mgo/bson"
	"github.com/hashicorp/go-multierror"

	"github.com/lifekeep/docview/core/domain"
	"github.com/lifekeep/docview/core/registry"
	"github.com/lifekeep/docview/core/restriction"
	"github.com/lifekeep/docview/logging"
	"github.com/lifekeep/docview/pkg/lib/database"
	"github.com/lifekeep/docview/pkg/lib/model"
	"github.com/lifekeep/docview/util/slice"
)

var log = logging.Logger("docview-viewstore")

type Service struct {
	repo Repository
	reg  *registry.Registry
}

func New(repo Repository, reg *registry.Registry) *Service {
	return &Service{repo: repo, reg: reg}
}

func (s *Service) state(ctx context.Context, module, owner string) (*State, error) {
	return Ensure(ctx, s.repo, s.reg, Key{Module: module, Owner: owner})
}

// ListViews returns the owner's views, seeding on first access.
func (s *Service) ListViews(ctx context.Context, module, owner string) ([]model.View, error) {
	st, err := s.state(ctx, module, owner)
	if err != nil {
		return nil, err
	}
	return st.Views, nil
}

func (s *Service) GetView(ctx context.Context, module, owner, viewId string) (model.View, error) {
	st, err := s.state(ctx, module, owner)
	if err != nil {
		return model.View{}, err
	}
	idx := st.viewIndex(viewId)
	if idx < 0 {
		return model.View{}, domain.NotFoundf("view %q not found", viewId)
	}
	return st.Views[idx], nil
}

// CreateView adds a view. A missing id gets a fresh object id; the first
// view of an empty set becomes the default.
func (s *Service) CreateView(ctx context.Context, module, owner string, view model.View) (model.View, error) {
	st, err := s.state(ctx, module, owner)
	if err != nil {
		return model.View{}, err
	}
	if err := restriction.New(st.Frozen).Check(restriction.OpAddView); err != nil {
		return model.View{}, err
	}
	if view.Id == "" {
		view.Id = bson.NewObjectId().Hex()
	} else if st.viewIndex(view.Id) >= 0 {
		return model.View{}, domain.Conflictf("view %q already exists", view.Id)
	}
	ensureComponentIds(&view)
	if err := validateView(view, st); err != nil {
		return model.View{}, err
	}
	if len(st.Views) == 0 {
		view.IsDefault = true
	} else if view.IsDefault {
		clearDefault(st)
	}
	st.Views = append(st.Views, view)
	if err := s.repo.SaveViews(ctx, Key{module, owner}, st.Views); err != nil {
		return model.View{}, err
	}
	log.Debugf("created view %s in %s/%s", view.Id, module, owner)
	return view, nil
}

// ViewPatch is a partial view update. Nil fields stay untouched.
type ViewPatch struct {
	Name              *string
	Type              *model.ViewType
	VisibleProperties *[]string
	GroupBy           *string
	Filters           *[]model.Filter
	Sorts             *[]model.Sort
	Config            map[string]any
}

// UpdateView applies a partial patch. Frozen views still accept filter,
// sort, column and grouping changes but reject rename and type change.
func (s *Service) UpdateView(ctx context.Context, module, owner, viewId string, patch ViewPatch) (model.View, error) {
	st, err := s.state(ctx, module, owner)
	if err != nil {
		return model.View{}, err
	}
	idx := st.viewIndex(viewId)
	if idx < 0 {
		return model.View{}, domain.NotFoundf("view %q not found", viewId)
	}
	view := st.Views[idx]

	if patch.Name != nil || patch.Type != nil {
		if err := restriction.New(st.Frozen).CheckViewMutable(view); err != nil {
			return model.View{}, err
		}
	}
	if patch.Name != nil {
		view.Name = *patch.Name
	}
	if patch.Type != nil {
		view.Type = *patch.Type
	}
	if patch.VisibleProperties != nil {
		view.VisibleProperties = *patch.VisibleProperties
	}
	if patch.GroupBy != nil {
		view.GroupBy = *patch.GroupBy
	}
	if patch.Filters != nil {
		view.Filters = *patch.Filters
	}
	if patch.Sorts != nil {
		view.Sorts = *patch.Sorts
	}
	if patch.Config != nil {
		view.Config = patch.Config
	}
	ensureComponentIds(&view)
	if err := validateView(view, st); err != nil {
		return model.View{}, err
	}
	st.Views[idx] = view
	if err := s.repo.SaveViews(ctx, Key{module, owner}, st.Views); err != nil {
		return model.View{}, err
	}
	return view, nil
}

// DeleteView removes a view. Frozen views and the sole remaining view
// cannot be deleted; deleting the default promotes the first remaining
// view.
func (s *Service) DeleteView(ctx context.Context, module, owner, viewId string) error {
	st, err := s.state(ctx, module, owner)
	if err != nil {
		return err
	}
	idx := st.viewIndex(viewId)
	if idx < 0 {
		return domain.NotFoundf("view %q not found", viewId)
	}
	if err := restriction.New(st.Frozen).CheckViewMutable(st.Views[idx]); err != nil {
		return err
	}
	if len(st.Views) == 1 {
		return domain.Forbiddenf("cannot delete the only view of %s/%s", module, owner)
	}
	wasDefault := st.Views[idx].IsDefault
	st.Views = slice.RemoveAt(st.Views, idx)
	if wasDefault {
		st.Views[0].IsDefault = true
	}
	return s.repo.SaveViews(ctx, Key{module, owner}, st.Views)
}

// DuplicateView copies a view under a fresh id right after the source.
// The copy is never the default and never frozen.
func (s *Service) DuplicateView(ctx context.Context, module, owner, viewId string) (model.View, error) {
	st, err := s.state(ctx, module, owner)
	if err != nil {
		return model.View{}, err
	}
	idx := st.viewIndex(viewId)
	if idx < 0 {
		return model.View{}, domain.NotFoundf("view %q not found", viewId)
	}
	if err := restriction.New(st.Frozen).Check(restriction.OpAddView); err != nil {
		return model.View{}, err
	}
	cp := st.Views[idx].Copy()
	cp.Id = bson.NewObjectId().Hex()
	cp.Name += " copy"
	cp.IsDefault = false
	cp.Frozen = false
	for i := range cp.Filters {
		cp.Filters[i].Id = bson.NewObjectId().Hex()
	}
	for i := range cp.Sorts {
		cp.Sorts[i].Id = bson.NewObjectId().Hex()
	}
	st.Views = slice.Insert(st.Views, cp, idx+1)
	if err := s.repo.SaveViews(ctx, Key{module, owner}, st.Views); err != nil {
		return model.View{}, err
	}
	return cp, nil
}

// SetDefault marks one view as the default, clearing the flag elsewhere.
func (s *Service) SetDefault(ctx context.Context, module, owner, viewId string) error {
	st, err := s.state(ctx, module, owner)
	if err != nil {
		return err
	}
	idx := st.viewIndex(viewId)
	if idx < 0 {
		return domain.NotFoundf("view %q not found", viewId)
	}
	clearDefault(st)
	st.Views[idx].IsDefault = true
	return s.repo.SaveViews(ctx, Key{module, owner}, st.Views)
}

// DefaultView returns the owner's default view.
func (s *Service) DefaultView(ctx context.Context, module, owner string) (model.View, error) {
	st, err := s.state(ctx, module, owner)
	if err != nil {
		return model.View{}, err
	}
	for _, v := range st.Views {
		if v.IsDefault {
			return v, nil
		}
	}
	return model.View{}, domain.NotFoundf("module %q has no default view for owner %q", module, owner)
}

func clearDefault(st *State) {
	for i := range st.Views {
		st.Views[i].IsDefault = false
	}
}

func ensureComponentIds(v *model.View) {
	for i := range v.Filters {
		if v.Filters[i].Id == "" {
			v.Filters[i].Id = bson.NewObjectId().Hex()
		}
	}
	for i := range v.Sorts {
		if v.Sorts[i].Id == "" {
			v.Sorts[i].Id = bson.NewObjectId().Hex()
		}
	}
}

// validateView aggregates every structural problem of a view write.
func validateView(v model.View, st *State) error {
	var result *multierror.Error
	if v.Name == "" {
		result = multierror.Append(result, domain.Validationf("view name must not be empty"))
	}
	if !v.Type.IsValid() {
		result = multierror.Append(result, domain.Validationf("unknown view type %q", v.Type))
	}
	if err := database.ValidateFilters(v.Filters, st); err != nil {
		result = multierror.Append(result, err)
	}
	for _, srt := range v.Sorts {
		if _, ok := st.PropertyById(srt.PropertyId); !ok {
			result = multierror.Append(result, domain.Validationf("sort %s: unknown property %q", srt.Id, srt.PropertyId))
		}
	}
	for _, pid := range v.VisibleProperties {
		if _, ok := st.PropertyById(pid); !ok {
			result = multierror.Append(result, domain.Validationf("visible property %q is unknown", pid))
		}
	}
	if v.GroupBy != "" {
		if _, ok := st.PropertyById(v.GroupBy); !ok {
			result = multierror.Append(result, domain.Validationf("groupBy property %q is unknown", v.GroupBy))
		}
	}
	return result.ErrorOrNil()
}
