package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifekeep/docview/core/domain"
	"github.com/lifekeep/docview/util/timeutil"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 50, c.DefaultPageSize)
		assert.Equal(t, timeutil.WeekStartMonday, c.WeekStartValue())
	})
	t.Run("sunday week start", func(t *testing.T) {
		t.Setenv("DOCVIEW_WEEK_START", "sunday")
		c, err := Load()
		require.NoError(t, err)
		assert.Equal(t, timeutil.WeekStartSunday, c.WeekStartValue())
	})
	t.Run("invalid week start", func(t *testing.T) {
		t.Setenv("DOCVIEW_WEEK_START", "wednesday")
		_, err := Load()
		require.Error(t, err)
		assert.Equal(t, domain.KindValidation, domain.Kind(err))
	})
	t.Run("page size bounds", func(t *testing.T) {
		t.Setenv("DOCVIEW_DEFAULT_PAGE_SIZE", "1000")
		t.Setenv("DOCVIEW_MAX_PAGE_SIZE", "100")
		_, err := Load()
		require.Error(t, err)
	})
}
