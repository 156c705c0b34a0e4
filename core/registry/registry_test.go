package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifekeep/docview/core/domain"
	"github.com/lifekeep/docview/pkg/lib/bundle"
)

func TestRegistry(t *testing.T) {
	t.Run("bundled modules resolve", func(t *testing.T) {
		r := NewBundled()
		m, err := r.Get("tasks")
		require.NoError(t, err)
		assert.Equal(t, "Tasks", m.Name)
		assert.Len(t, r.List(), 7)
	})
	t.Run("unknown module is not found", func(t *testing.T) {
		r := NewBundled()
		_, err := r.Get("missing")
		require.Error(t, err)
		assert.Equal(t, domain.KindNotFound, domain.Kind(err))
	})
	t.Run("duplicate registration conflicts", func(t *testing.T) {
		r := NewBundled()
		err := r.Register(bundle.Module{Id: "tasks"})
		require.Error(t, err)
		assert.Equal(t, domain.KindConflict, domain.Kind(err))
	})
	t.Run("custom module", func(t *testing.T) {
		r := New()
		require.NoError(t, r.Register(bundle.Module{Id: "recipes", Name: "Recipes"}))
		m, err := r.Get("recipes")
		require.NoError(t, err)
		assert.Equal(t, "Recipes", m.Name)
	})
	t.Run("get hands out copies", func(t *testing.T) {
		r := NewBundled()
		a, _ := r.Get("tasks")
		a.Properties[0].Name = "changed"
		b, _ := r.Get("tasks")
		assert.Equal(t, "Title", b.Properties[0].Name)
	})
}
