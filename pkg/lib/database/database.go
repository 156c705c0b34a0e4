// Package database evaluates view predicates and sort orders over
// records held in memory. It owns no I/O: records arrive as property
// maps, views arrive as wire shapes, and the package turns them into an
// executable filter tree plus a multi-key comparator.
package database

import (
	"sort"

	"github.com/lifekeep/docview/core/domain"
	"github.com/lifekeep/docview/logging"
	"github.com/lifekeep/docview/pkg/lib/model"
	"github.com/lifekeep/docview/util/timeutil"
)

var log = logging.Logger("docview-database")

// Schema resolves property definitions for filter validation and
// type-aware comparison.
type Schema interface {
	PropertyById(id string) (model.Property, bool)
}

// Filters is a view's executable presentation logic: the filter tree and
// the sort order, ready to run over a record batch.
type Filters struct {
	FilterObj Filter
	Order     Order
}

// NewFilters compiles a view against a schema. All relative date windows
// resolve against cal; defaultLocale applies to string keys that do not
// pin their own locale.
func NewFilters(view model.View, sch Schema, cal timeutil.Calendar, defaultLocale string) (*Filters, error) {
	filterObj, err := MakeFilters(view.Filters, sch, cal)
	if err != nil {
		return nil, err
	}
	return &Filters{
		FilterObj: filterObj,
		Order:     ExtractOrder(view.Sorts, sch, cal, defaultLocale),
	}, nil
}

// FilterRecords returns the subset of records matching the filter tree,
// sorted stably by the order keys. Input order is preserved for ties.
func (f *Filters) FilterRecords(records []*domain.Details) []*domain.Details {
	matched := make([]*domain.Details, 0, len(records))
	for _, rec := range records {
		if f.FilterObj == nil || f.FilterObj.FilterRecord(rec) {
			matched = append(matched, rec)
		}
	}
	if f.Order != nil {
		sort.SliceStable(matched, func(i, j int) bool {
			return f.Order.Compare(matched[i], matched[j]) < 0
		})
	}
	return matched
}

// ExtractOrder builds the multi-key comparator for a view's sort list.
// Disabled sorts are skipped; a sort on an unknown property is a tie for
// that key.
func ExtractOrder(sorts []model.Sort, sch Schema, cal timeutil.Calendar, defaultLocale string) Order {
	enabled := make([]model.Sort, 0, len(sorts))
	for _, s := range sorts {
		if s.Enabled {
			enabled = append(enabled, s)
		}
	}
	if len(enabled) == 0 {
		return nil
	}
	sort.SliceStable(enabled, func(i, j int) bool {
		return enabled[i].Order < enabled[j].Order
	})

	order := SetOrder{}
	for _, s := range enabled {
		prop, ok := sch.PropertyById(s.PropertyId)
		if !ok {
			log.Warnf("sort references unknown property %s", s.PropertyId)
			continue
		}
		keyOrder := NewKeyOrder(s, prop.Type, cal, defaultLocale)
		if s.Config != nil && len(s.Config.CustomOrder) > 0 {
			order = append(order, NewCustomOrder(s.PropertyId, s.Config.CustomOrder, keyOrder))
		} else {
			order = append(order, keyOrder)
		}
	}
	if len(order) == 0 {
		return nil
	}
	return order
}
