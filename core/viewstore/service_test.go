package viewstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifekeep/docview/core/domain"
	"github.com/lifekeep/docview/core/registry"
	"github.com/lifekeep/docview/pkg/lib/bundle"
	"github.com/lifekeep/docview/pkg/lib/model"
)

func newFixture() *Service {
	return New(NewMemoryRepository(), registry.NewBundled())
}

func ptr[T any](v T) *T { return &v }

func TestSeeding(t *testing.T) {
	ctx := context.Background()
	s := newFixture()

	t.Run("first access seeds from the registry", func(t *testing.T) {
		views, err := s.ListViews(ctx, "tasks", "alice")
		require.NoError(t, err)
		require.Len(t, views, 3)
		assert.True(t, views[0].IsDefault)
	})
	t.Run("owners evolve independent copies", func(t *testing.T) {
		_, err := s.CreateView(ctx, "tasks", "alice", model.View{Name: "Mine", Type: model.ViewTypeList})
		require.NoError(t, err)

		alice, err := s.ListViews(ctx, "tasks", "alice")
		require.NoError(t, err)
		bob, err := s.ListViews(ctx, "tasks", "bob")
		require.NoError(t, err)
		assert.Len(t, alice, 4)
		assert.Len(t, bob, 3)
	})
	t.Run("unknown module is not found", func(t *testing.T) {
		_, err := s.ListViews(ctx, "missing", "alice")
		require.Error(t, err)
		assert.Equal(t, domain.KindNotFound, domain.Kind(err))
	})
}

func TestCreateView(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns an id and validates filters", func(t *testing.T) {
		s := newFixture()
		v, err := s.CreateView(ctx, "tasks", "alice", model.View{
			Name: "Due soon",
			Type: model.ViewTypeList,
			Filters: []model.Filter{
				{PropertyId: "dueDate", Operator: model.OpIsNextDays, Enabled: true,
					Config: &model.FilterConfig{NumberOfDays: 7}},
			},
		})
		require.NoError(t, err)
		assert.NotEmpty(t, v.Id)
		assert.NotEmpty(t, v.Filters[0].Id)
		assert.False(t, v.IsDefault)
	})
	t.Run("invalid filter rejected at write time", func(t *testing.T) {
		s := newFixture()
		_, err := s.CreateView(ctx, "tasks", "alice", model.View{
			Name: "Broken",
			Type: model.ViewTypeList,
			Filters: []model.Filter{
				{PropertyId: "title", Operator: model.OpGreaterThan, Value: 1, Enabled: true},
			},
		})
		require.Error(t, err)
		assert.Equal(t, domain.KindValidation, domain.Kind(err))
	})
	t.Run("name and type are required", func(t *testing.T) {
		s := newFixture()
		_, err := s.CreateView(ctx, "tasks", "alice", model.View{Type: "pie"})
		require.Error(t, err)
		assert.Equal(t, domain.KindValidation, domain.Kind(err))
	})
	t.Run("duplicate id conflicts", func(t *testing.T) {
		s := newFixture()
		_, err := s.CreateView(ctx, "tasks", "alice", model.View{Id: "tasks_all", Name: "X", Type: model.ViewTypeList})
		require.Error(t, err)
		assert.Equal(t, domain.KindConflict, domain.Kind(err))
	})
	t.Run("module closed to new views", func(t *testing.T) {
		s := newFixture()
		_, err := s.CreateView(ctx, "people", "alice", model.View{Name: "X", Type: model.ViewTypeList})
		require.Error(t, err)
		assert.Equal(t, domain.KindForbidden, domain.Kind(err))
	})
	t.Run("incoming default displaces the old one", func(t *testing.T) {
		s := newFixture()
		v, err := s.CreateView(ctx, "tasks", "alice", model.View{Name: "New default", Type: model.ViewTypeTable, IsDefault: true})
		require.NoError(t, err)

		views, err := s.ListViews(ctx, "tasks", "alice")
		require.NoError(t, err)
		for _, got := range views {
			assert.Equal(t, got.Id == v.Id, got.IsDefault, "view %s", got.Id)
		}
	})
}

func TestUpdateView(t *testing.T) {
	ctx := context.Background()

	t.Run("partial patch", func(t *testing.T) {
		s := newFixture()
		v, err := s.UpdateView(ctx, "tasks", "alice", "tasks_board", ViewPatch{
			Name:    ptr("Kanban"),
			GroupBy: ptr("priority"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Kanban", v.Name)
		assert.Equal(t, "priority", v.GroupBy)
		assert.Equal(t, model.ViewTypeBoard, v.Type)
	})
	t.Run("frozen view rejects rename but accepts filters", func(t *testing.T) {
		s := newFixture()
		_, err := s.UpdateView(ctx, "tasks", "alice", "tasks_all", ViewPatch{Name: ptr("Renamed")})
		require.Error(t, err)
		assert.Equal(t, domain.KindForbidden, domain.Kind(err))

		v, err := s.UpdateView(ctx, "tasks", "alice", "tasks_all", ViewPatch{
			Filters: &[]model.Filter{
				{PropertyId: "status", Operator: model.OpNotEquals, Value: "done", Enabled: true},
			},
		})
		require.NoError(t, err)
		require.Len(t, v.Filters, 1)
		assert.NotEmpty(t, v.Filters[0].Id)
	})
	t.Run("frozen view rejects type change", func(t *testing.T) {
		s := newFixture()
		_, err := s.UpdateView(ctx, "tasks", "alice", "tasks_all", ViewPatch{Type: ptr(model.ViewTypeBoard)})
		require.Error(t, err)
		assert.Equal(t, domain.KindForbidden, domain.Kind(err))
	})
	t.Run("patch validated against the schema", func(t *testing.T) {
		s := newFixture()
		_, err := s.UpdateView(ctx, "tasks", "alice", "tasks_board", ViewPatch{
			Sorts: &[]model.Sort{{PropertyId: "ghost", Direction: model.SortAsc, Enabled: true}},
		})
		require.Error(t, err)
		assert.Equal(t, domain.KindValidation, domain.Kind(err))
	})
	t.Run("unknown view", func(t *testing.T) {
		s := newFixture()
		_, err := s.UpdateView(ctx, "tasks", "alice", "nope", ViewPatch{})
		require.Error(t, err)
		assert.Equal(t, domain.KindNotFound, domain.Kind(err))
	})
}

func TestDeleteView(t *testing.T) {
	ctx := context.Background()

	t.Run("frozen view cannot be deleted", func(t *testing.T) {
		s := newFixture()
		err := s.DeleteView(ctx, "tasks", "alice", "tasks_all")
		require.Error(t, err)
		assert.Equal(t, domain.KindForbidden, domain.Kind(err))
	})
	t.Run("sole view cannot be deleted even when unfrozen", func(t *testing.T) {
		reg := registry.New(bundle.Module{
			Id:     "scratch",
			Name:   "Scratch",
			Frozen: model.FrozenConfig{CanAddViews: true},
			Views: []model.View{
				{Id: "only", Name: "Only", Type: model.ViewTypeList, IsDefault: true},
			},
		})
		svc := New(NewMemoryRepository(), reg)
		err := svc.DeleteView(ctx, "scratch", "alice", "only")
		require.Error(t, err)
		assert.Equal(t, domain.KindForbidden, domain.Kind(err))
	})
	t.Run("unfrozen views delete normally", func(t *testing.T) {
		s := newFixture()
		require.NoError(t, s.DeleteView(ctx, "notes", "alice", "notes_pinned"))
		views, err := s.ListViews(ctx, "notes", "alice")
		require.NoError(t, err)
		assert.Len(t, views, 1)
	})
	t.Run("deleting the default promotes the first remaining", func(t *testing.T) {
		s := newFixture()
		require.NoError(t, s.SetDefault(ctx, "tasks", "alice", "tasks_board"))
		require.NoError(t, s.DeleteView(ctx, "tasks", "alice", "tasks_board"))

		def, err := s.DefaultView(ctx, "tasks", "alice")
		require.NoError(t, err)
		assert.Equal(t, "tasks_all", def.Id)
	})
}

func TestDuplicateView(t *testing.T) {
	ctx := context.Background()
	s := newFixture()

	cp, err := s.DuplicateView(ctx, "tasks", "alice", "tasks_today")
	require.NoError(t, err)
	assert.NotEqual(t, "tasks_today", cp.Id)
	assert.Equal(t, "Today copy", cp.Name)
	assert.False(t, cp.IsDefault)

	src, err := s.GetView(ctx, "tasks", "alice", "tasks_today")
	require.NoError(t, err)
	require.Len(t, cp.Filters, len(src.Filters))
	assert.NotEqual(t, src.Filters[0].Id, cp.Filters[0].Id)
	assert.Equal(t, src.Filters[0].PropertyId, cp.Filters[0].PropertyId)

	t.Run("copy lands right after the source", func(t *testing.T) {
		views, err := s.ListViews(ctx, "tasks", "alice")
		require.NoError(t, err)
		pos := -1
		for i, v := range views {
			if v.Id == "tasks_today" {
				pos = i
			}
		}
		require.GreaterOrEqual(t, pos, 0)
		require.Less(t, pos+1, len(views))
		assert.Equal(t, cp.Id, views[pos+1].Id)
	})
	t.Run("duplicating a frozen view yields an unfrozen copy", func(t *testing.T) {
		cp, err := s.DuplicateView(ctx, "tasks", "alice", "tasks_all")
		require.NoError(t, err)
		assert.False(t, cp.Frozen)
		require.NoError(t, s.DeleteView(ctx, "tasks", "alice", cp.Id))
	})
}

func TestSetDefault(t *testing.T) {
	ctx := context.Background()
	s := newFixture()

	require.NoError(t, s.SetDefault(ctx, "tasks", "alice", "tasks_board"))
	views, err := s.ListViews(ctx, "tasks", "alice")
	require.NoError(t, err)

	defaults := 0
	for _, v := range views {
		if v.IsDefault {
			defaults++
			assert.Equal(t, "tasks_board", v.Id)
		}
	}
	assert.Equal(t, 1, defaults)

	t.Run("unknown view", func(t *testing.T) {
		err := s.SetDefault(ctx, "tasks", "alice", "nope")
		require.Error(t, err)
		assert.Equal(t, domain.KindNotFound, domain.Kind(err))
	})
}
