// Package projector answers record queries: it resolves a view, runs the
// view's filters and sorts over candidate records, buckets by the group
// property, projects visible columns and paginates.
package projector

import (
	"context"
	"time"

	"github.com/lifekeep/docview/core/config"
	"github.com/lifekeep/docview/core/domain"
	"github.com/lifekeep/docview/core/registry"
	"github.com/lifekeep/docview/core/viewstore"
	"github.com/lifekeep/docview/logging"
	"github.com/lifekeep/docview/pkg/lib/database"
	"github.com/lifekeep/docview/pkg/lib/model"
	"github.com/lifekeep/docview/util/slice"
	"github.com/lifekeep/docview/util/timeutil"
)

var log = logging.Logger("docview-projector")

// RecordSource supplies candidate records. The hint carries the view's
// enabled filters so a storage backend can pre-narrow the candidate set;
// authoritative filtering still happens in the projector.
type RecordSource interface {
	FetchRecords(ctx context.Context, module, owner string, hint Hint) ([]*domain.Details, error)
}

type Hint struct {
	Filters []model.Filter
}

type SearchRequest struct {
	Module string
	Owner  string
	// ViewId selects the view; empty means the default view.
	ViewId string
	Limit  int
	Offset int
}

type Pagination struct {
	Total   int  `json:"total"`
	Offset  int  `json:"offset"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"hasMore"`
}

// Group is one bucket of a grouped view. Records inside keep the view's
// sort order; a record with several group values appears in each
// matching bucket.
type Group struct {
	Id      string            `json:"id"`
	Name    string            `json:"name"`
	Records []*domain.Details `json:"records"`
}

type SearchResult struct {
	ViewId     string            `json:"viewId"`
	Records    []*domain.Details `json:"records"`
	Groups     []Group           `json:"groups,omitempty"`
	Pagination Pagination        `json:"pagination"`
}

type Service struct {
	repo   viewstore.Repository
	reg    *registry.Registry
	source RecordSource
	cfg    config.Config
	now    func() time.Time
}

type Option func(*Service)

// WithClock pins the evaluation-time clock, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(repo viewstore.Repository, reg *registry.Registry, source RecordSource, cfg config.Config, opts ...Option) *Service {
	s := &Service{repo: repo, reg: reg, source: source, cfg: cfg, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Search runs one view over the owner's records.
func (s *Service) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	st, err := viewstore.Ensure(ctx, s.repo, s.reg, viewstore.Key{Module: req.Module, Owner: req.Owner})
	if err != nil {
		return nil, err
	}
	view, err := resolveView(st, req.ViewId)
	if err != nil {
		return nil, err
	}

	now := s.now()
	cal := timeutil.NewCalendarWeekStart(now, now.Location(), s.cfg.WeekStartValue())
	flt, err := database.NewFilters(view, st, cal, s.cfg.DefaultLocale)
	if err != nil {
		return nil, err
	}

	candidates, err := s.source.FetchRecords(ctx, req.Module, req.Owner, Hint{Filters: enabledFilters(view.Filters)})
	if err != nil {
		return nil, err
	}
	matched := flt.FilterRecords(candidates)
	total := len(matched)

	limit, offset := s.pageBounds(req.Limit, req.Offset)
	page := paginate(matched, offset, limit)
	projected := make([]*domain.Details, len(page))
	for i, rec := range page {
		projected[i] = project(rec, view.VisibleProperties)
	}

	res := &SearchResult{
		ViewId:  view.Id,
		Records: projected,
		Pagination: Pagination{
			Total:   total,
			Offset:  offset,
			Limit:   limit,
			HasMore: offset+len(page) < total,
		},
	}
	if view.GroupBy != "" {
		res.Groups = groupRecords(projected, page, view.GroupBy, st)
	}
	log.Debugf("search %s/%s view %s: %d of %d records", req.Module, req.Owner, view.Id, len(page), total)
	return res, nil
}

func resolveView(st *viewstore.State, viewId string) (model.View, error) {
	if viewId == "" {
		idx := slice.Find(st.Views, func(v model.View) bool { return v.IsDefault })
		if idx < 0 {
			return model.View{}, domain.NotFoundf("module has no default view")
		}
		return st.Views[idx], nil
	}
	idx := slice.Find(st.Views, func(v model.View) bool { return v.Id == viewId })
	if idx < 0 {
		return model.View{}, domain.NotFoundf("view %q not found", viewId)
	}
	return st.Views[idx], nil
}

func (s *Service) pageBounds(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = s.cfg.DefaultPageSize
	}
	if s.cfg.MaxPageSize > 0 && limit > s.cfg.MaxPageSize {
		limit = s.cfg.MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func paginate(records []*domain.Details, offset, limit int) []*domain.Details {
	if offset >= len(records) {
		return nil
	}
	end := offset + limit
	if end > len(records) {
		end = len(records)
	}
	return records[offset:end]
}

// project keeps the visible columns plus the record id. An empty column
// list keeps the whole record.
func project(rec *domain.Details, visible []string) *domain.Details {
	if len(visible) == 0 {
		return rec
	}
	keys := make([]string, 0, len(visible)+1)
	keys = append(keys, visible...)
	if rec.Has("id") && slice.FindPos(visible, "id") < 0 {
		keys = append(keys, "id")
	}
	return rec.CopyOnlyWithKeys(keys...)
}

// groupRecords buckets the projected page by the group property. Buckets
// follow the property's select option order; records whose value matches
// no option land in trailing value-named buckets, records without a
// value land in the final empty bucket.
func groupRecords(projected, raw []*domain.Details, groupBy string, st *viewstore.State) []Group {
	prop, _ := st.PropertyById(groupBy)

	order := make([]string, 0, len(prop.Options))
	names := make(map[string]string, len(prop.Options))
	buckets := make(map[string][]*domain.Details)
	for _, opt := range prop.Options {
		order = append(order, opt.Id)
		names[opt.Id] = opt.Name
		buckets[opt.Id] = nil
	}

	var empty []*domain.Details
	for i, rec := range raw {
		values, ok := rec.Get(groupBy).WrapToStringList()
		if !ok || len(values) == 0 {
			empty = append(empty, projected[i])
			continue
		}
		for _, v := range values {
			if v == "" {
				empty = append(empty, projected[i])
				continue
			}
			if _, known := buckets[v]; !known {
				order = append(order, v)
				names[v] = v
			}
			buckets[v] = append(buckets[v], projected[i])
		}
	}

	groups := make([]Group, 0, len(order)+1)
	for _, id := range order {
		groups = append(groups, Group{Id: id, Name: names[id], Records: buckets[id]})
	}
	groups = append(groups, Group{Id: "", Name: "", Records: empty})
	return groups
}

func enabledFilters(filters []model.Filter) []model.Filter {
	return slice.Filter(filters, func(f model.Filter) bool { return f.Enabled })
}
