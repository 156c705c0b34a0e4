package timeutil

import (
	"time"
)

// WeekStart fixes the week boundary convention used by relative date
// filters. The same convention must be shared with any locale-aware
// presentation, so it is explicit configuration rather than derived from
// the server locale.
type WeekStart int

const (
	WeekStartMonday WeekStart = iota
	WeekStartSunday
)

// Calendar resolves day/week/month windows around a fixed reference
// moment. All relative date operators of one evaluation share a single
// Calendar so "today" cannot drift within one request.
type Calendar struct {
	now       time.Time
	loc       *time.Location
	weekStart WeekStart
}

func NewCalendar(now time.Time, loc *time.Location) Calendar {
	return NewCalendarWeekStart(now, loc, WeekStartMonday)
}

func NewCalendarWeekStart(now time.Time, loc *time.Location, ws WeekStart) Calendar {
	if loc == nil {
		loc = now.Location()
	}
	return Calendar{now: now.In(loc), loc: loc, weekStart: ws}
}

func (c Calendar) Now() time.Time {
	return c.now
}

// DayNumStart returns the beginning of the day shifted by offset days
// from the reference day.
func (c Calendar) DayNumStart(offset int) time.Time {
	t := c.now.AddDate(0, 0, offset)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
}

func (c Calendar) DayNumEnd(offset int) time.Time {
	return c.DayNumStart(offset + 1).Add(-time.Second)
}

// WeekNumStart returns the beginning of the week shifted by offset weeks.
func (c Calendar) WeekNumStart(offset int) time.Time {
	daysFromStart := int(c.now.Weekday()) - c.firstWeekday()
	if daysFromStart < 0 {
		daysFromStart += 7
	}
	return c.DayNumStart(-daysFromStart + offset*7)
}

func (c Calendar) WeekNumEnd(offset int) time.Time {
	return c.WeekNumStart(offset + 1).Add(-time.Second)
}

// MonthNumStart returns the beginning of the month shifted by offset
// months. The day component is pinned to 1 before shifting, so a
// month-end reference never overflows into the month after next.
func (c Calendar) MonthNumStart(offset int) time.Time {
	return time.Date(c.now.Year(), c.now.Month()+time.Month(offset), 1, 0, 0, 0, 0, c.loc)
}

func (c Calendar) MonthNumEnd(offset int) time.Time {
	return c.MonthNumStart(offset + 1).Add(-time.Second)
}

func (c Calendar) YearNumStart(offset int) time.Time {
	return time.Date(c.now.Year()+offset, time.January, 1, 0, 0, 0, 0, c.loc)
}

func (c Calendar) YearNumEnd(offset int) time.Time {
	return c.YearNumStart(offset + 1).Add(-time.Second)
}

func (c Calendar) firstWeekday() int {
	if c.weekStart == WeekStartSunday {
		return int(time.Sunday)
	}
	return int(time.Monday)
}

// DayStartOf truncates an arbitrary moment to the start of its day in the
// calendar's location. Used for day-granularity date comparison.
func (c Calendar) DayStartOf(t time.Time) time.Time {
	t = t.In(c.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
}
