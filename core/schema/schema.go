// Package schema manages a module's property definitions: lookup,
// addition, rename and deletion. The schema is shared by every owner of
// the module, so deleting a property cascades through every owner's
// stored views.
package schema

import (
	"context"
	"sort"

	"github.com/lifekeep/docview/core/domain"
	"github.com/lifekeep/docview/core/registry"
	"github.com/lifekeep/docview/core/restriction"
	"github.com/lifekeep/docview/core/viewstore"
	"github.com/lifekeep/docview/logging"
	"github.com/lifekeep/docview/pkg/lib/model"
	"github.com/lifekeep/docview/util/slice"
)

var log = logging.Logger("docview-schema")

type Service struct {
	repo viewstore.Repository
	reg  *registry.Registry
}

func New(repo viewstore.Repository, reg *registry.Registry) *Service {
	return &Service{repo: repo, reg: reg}
}

func (s *Service) schema(ctx context.Context, module string) (*viewstore.ModuleState, error) {
	return viewstore.EnsureSchema(ctx, s.repo, s.reg, module)
}

// GetSchema returns the module's properties ordered by their Order
// field. The loaded state stays untouched; sorting happens on a copy.
func (s *Service) GetSchema(ctx context.Context, module string) ([]model.Property, error) {
	sch, err := s.schema(ctx, module)
	if err != nil {
		return nil, err
	}
	props := make([]model.Property, len(sch.Properties))
	copy(props, sch.Properties)
	sort.SliceStable(props, func(i, j int) bool {
		return props[i].Order < props[j].Order
	})
	return props, nil
}

// AddProperty appends a property. The id must be new and the type known.
func (s *Service) AddProperty(ctx context.Context, module string, p model.Property) (model.Property, error) {
	sch, err := s.schema(ctx, module)
	if err != nil {
		return model.Property{}, err
	}
	if err := restriction.New(sch.Frozen).Check(restriction.OpAddProperty); err != nil {
		return model.Property{}, err
	}
	if p.Id == "" {
		return model.Property{}, domain.Validationf("property id must not be empty")
	}
	if len(model.OperatorsForType(p.Type)) == 0 {
		return model.Property{}, domain.Validationf("unknown property type %q", p.Type)
	}
	if _, ok := sch.PropertyById(p.Id); ok {
		return model.Property{}, domain.Conflictf("property %q already exists", p.Id)
	}
	sch.Properties = append(sch.Properties, p)
	if err := s.repo.SaveSchema(ctx, module, sch); err != nil {
		return model.Property{}, err
	}
	log.Debugf("added property %s to %s", p.Id, module)
	return p, nil
}

// PropertyPatch is a partial property update. The type is immutable and
// deliberately absent.
type PropertyPatch struct {
	Name    *string
	Order   *int
	Width   *int
	Visible *bool
	Options *[]model.SelectOption
}

// UpdateProperty applies a partial patch. Renaming a frozen property is
// forbidden; everything else stays editable.
func (s *Service) UpdateProperty(ctx context.Context, module, propertyId string, patch PropertyPatch) (model.Property, error) {
	sch, err := s.schema(ctx, module)
	if err != nil {
		return model.Property{}, err
	}
	idx := slice.Find(sch.Properties, func(p model.Property) bool { return p.Id == propertyId })
	if idx < 0 {
		return model.Property{}, domain.NotFoundf("property %q not found", propertyId)
	}
	prop := sch.Properties[idx]

	if patch.Name != nil && *patch.Name != prop.Name {
		if err := restriction.New(sch.Frozen).CheckPropertyMutable(prop); err != nil {
			return model.Property{}, err
		}
		prop.Name = *patch.Name
	}
	if patch.Order != nil {
		prop.Order = *patch.Order
	}
	if patch.Width != nil {
		prop.Width = *patch.Width
	}
	if patch.Visible != nil {
		prop.Visible = *patch.Visible
	}
	if patch.Options != nil {
		prop.Options = *patch.Options
	}
	sch.Properties[idx] = prop
	if err := s.repo.SaveSchema(ctx, module, sch); err != nil {
		return model.Property{}, err
	}
	return prop, nil
}

// DeleteProperty removes a property from the shared schema and strips
// every reference to it from every owner's stored views: visible
// columns, filters, sorts and grouping.
func (s *Service) DeleteProperty(ctx context.Context, module, propertyId string) error {
	sch, err := s.schema(ctx, module)
	if err != nil {
		return err
	}
	idx := slice.Find(sch.Properties, func(p model.Property) bool { return p.Id == propertyId })
	if idx < 0 {
		return domain.NotFoundf("property %q not found", propertyId)
	}
	if err := restriction.New(sch.Frozen).CheckPropertyMutable(sch.Properties[idx]); err != nil {
		return err
	}
	sch.Properties = slice.RemoveAt(sch.Properties, idx)
	if err := s.repo.SaveSchema(ctx, module, sch); err != nil {
		return err
	}

	owners, err := s.repo.ViewOwners(ctx, module)
	if err != nil {
		return err
	}
	for _, key := range owners {
		views, err := s.repo.LoadViews(ctx, key)
		if err != nil {
			return err
		}
		viewstore.StripUnknownProperties(views, sch)
		if err := s.repo.SaveViews(ctx, key, views); err != nil {
			return err
		}
	}
	log.Debugf("deleted property %s from %s, cascaded through %d owners", propertyId, module, len(owners))
	return nil
}
