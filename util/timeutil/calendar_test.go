package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Wed 2024-03-13 15:04:05 UTC
var ref = time.Date(2024, time.March, 13, 15, 4, 5, 0, time.UTC)

func TestDayWindows(t *testing.T) {
	c := NewCalendar(ref, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC), c.DayNumStart(0))
	assert.Equal(t, time.Date(2024, 3, 13, 23, 59, 59, 0, time.UTC), c.DayNumEnd(0))
	assert.Equal(t, time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), c.DayNumStart(-1))
	assert.Equal(t, time.Date(2024, 3, 14, 23, 59, 59, 0, time.UTC), c.DayNumEnd(1))
}

func TestWeekWindows(t *testing.T) {
	t.Run("monday start", func(t *testing.T) {
		c := NewCalendarWeekStart(ref, time.UTC, WeekStartMonday)
		assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), c.WeekNumStart(0))
		assert.Equal(t, time.Date(2024, 3, 17, 23, 59, 59, 0, time.UTC), c.WeekNumEnd(0))
		assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), c.WeekNumStart(-1))
		assert.Equal(t, time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC), c.WeekNumStart(1))
	})
	t.Run("sunday start", func(t *testing.T) {
		c := NewCalendarWeekStart(ref, time.UTC, WeekStartSunday)
		assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), c.WeekNumStart(0))
		assert.Equal(t, time.Date(2024, 3, 16, 23, 59, 59, 0, time.UTC), c.WeekNumEnd(0))
	})
	t.Run("reference on week boundary", func(t *testing.T) {
		monday := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)
		c := NewCalendarWeekStart(monday, time.UTC, WeekStartMonday)
		assert.Equal(t, monday, c.WeekNumStart(0))
	})
}

func TestMonthWindows(t *testing.T) {
	c := NewCalendar(ref, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), c.MonthNumStart(0))
	assert.Equal(t, time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC), c.MonthNumEnd(0))
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), c.MonthNumStart(-1))
	assert.Equal(t, time.Date(2024, 4, 30, 23, 59, 59, 0, time.UTC), c.MonthNumEnd(1))
}

func TestMonthWindowsAtMonthEnd(t *testing.T) {
	t.Run("january 31 next month is february", func(t *testing.T) {
		c := NewCalendar(time.Date(2024, time.January, 31, 12, 0, 0, 0, time.UTC), time.UTC)
		assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), c.MonthNumStart(1))
		assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC), c.MonthNumEnd(1))
		assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC), c.MonthNumEnd(0))
	})
	t.Run("march 31 past month is february", func(t *testing.T) {
		c := NewCalendar(time.Date(2024, time.March, 31, 8, 0, 0, 0, time.UTC), time.UTC)
		assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), c.MonthNumStart(-1))
		assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC), c.MonthNumEnd(-1))
	})
	t.Run("december 31 next month crosses the year", func(t *testing.T) {
		c := NewCalendar(time.Date(2024, time.December, 31, 12, 0, 0, 0, time.UTC), time.UTC)
		assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), c.MonthNumStart(1))
		assert.Equal(t, time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC), c.MonthNumEnd(1))
	})
}

func TestYearWindows(t *testing.T) {
	c := NewCalendar(ref, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), c.YearNumStart(0))
	assert.Equal(t, time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC), c.YearNumEnd(0))
}

func TestDayStartOf(t *testing.T) {
	c := NewCalendar(ref, time.UTC)
	got := c.DayStartOf(time.Date(2024, 3, 20, 18, 30, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), got)
}
