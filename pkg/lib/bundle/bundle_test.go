package bundle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifekeep/docview/pkg/lib/database"
)

func TestBundledModules(t *testing.T) {
	all := Modules()
	require.Len(t, all, 7)

	for _, m := range all {
		t.Run(m.Id, func(t *testing.T) {
			defaults := 0
			for _, v := range m.Views {
				if v.IsDefault {
					defaults++
				}
				assert.NoError(t, database.ValidateFilters(v.Filters, m), "view %s", v.Id)
				for _, s := range v.Sorts {
					_, ok := m.PropertyById(s.PropertyId)
					assert.True(t, ok, "view %s sorts by unknown property %s", v.Id, s.PropertyId)
				}
				for _, pid := range v.VisibleProperties {
					_, ok := m.PropertyById(pid)
					assert.True(t, ok, "view %s shows unknown property %s", v.Id, pid)
				}
				if v.GroupBy != "" {
					_, ok := m.PropertyById(v.GroupBy)
					assert.True(t, ok, "view %s groups by unknown property %s", v.Id, v.GroupBy)
				}
			}
			assert.Equal(t, 1, defaults, "exactly one default view")

			for _, pid := range m.Frozen.PropertyIds {
				_, ok := m.PropertyById(pid)
				assert.True(t, ok, "frozen config names unknown property %s", pid)
			}
			for _, vid := range m.Frozen.ViewIds {
				found := false
				for _, v := range m.Views {
					if v.Id == vid {
						found = true
						assert.True(t, v.Frozen, "view %s named in frozen config must carry the flag", vid)
					}
				}
				assert.True(t, found, "frozen config names unknown view %s", vid)
			}
		})
	}
}

func TestModuleById(t *testing.T) {
	m, ok := ModuleById("tasks")
	require.True(t, ok)
	assert.Equal(t, "Tasks", m.Name)

	_, ok = ModuleById("missing")
	assert.False(t, ok)
}

func TestModuleCopyIsIndependent(t *testing.T) {
	a, _ := ModuleById("tasks")
	b, _ := ModuleById("tasks")
	a.Properties[0].Name = "changed"
	a.Views[0].Sorts[0].Direction = "desc"
	assert.Equal(t, "Title", b.Properties[0].Name)
	assert.Equal(t, "asc", string(b.Views[0].Sorts[0].Direction))
}
