package database

import (
	"time"

	"github.com/araddon/dateparse"

	"github.com/lifekeep/docview/core/domain"
	"github.com/lifekeep/docview/pkg/lib/model"
	"github.com/lifekeep/docview/util/timeutil"
)

// Date filters are rewritten into absolute unix-second range predicates.
// Relative operators resolve their window against the calendar passed in
// for this evaluation, so every filter of one request shares the same
// "now" and the same week-start convention.
func makeDateFilter(rawFilter model.Filter, cal timeutil.Calendar) (Filter, error) {
	key := rawFilter.PropertyId
	includeTime := rawFilter.Config != nil && rawFilter.Config.IncludeTime

	if rawFilter.Operator.IsRelativeDate() {
		d1, d2 := quickOptionRange(rawFilter, cal)
		return rangeFilter(key, d1.Unix(), d2.Unix()), nil
	}

	switch rawFilter.Operator {
	case model.OpDateEquals:
		ts, err := dateOperand(rawFilter.Value, cal)
		if err != nil {
			return nil, err
		}
		if includeTime {
			return FilterEq{Key: key, Cond: condEq, Value: domain.Int64(ts)}, nil
		}
		day := timeutil.NewCalendar(time.Unix(ts, 0), cal.Now().Location())
		return rangeFilter(key, day.DayNumStart(0).Unix(), day.DayNumEnd(0).Unix()), nil
	case model.OpDateBefore:
		ts, err := dateOperand(rawFilter.Value, cal)
		if err != nil {
			return nil, err
		}
		if !includeTime {
			ts = cal.DayStartOf(time.Unix(ts, 0)).Unix()
		}
		return FilterEq{Key: key, Cond: condLt, Value: domain.Int64(ts)}, nil
	case model.OpDateAfter:
		ts, err := dateOperand(rawFilter.Value, cal)
		if err != nil {
			return nil, err
		}
		if !includeTime {
			day := timeutil.NewCalendar(time.Unix(ts, 0), cal.Now().Location())
			ts = day.DayNumEnd(0).Unix()
		}
		return FilterEq{Key: key, Cond: condGt, Value: domain.Int64(ts)}, nil
	case model.OpDateBetween:
		from, to, err := dateRangeOperand(rawFilter.Value, cal)
		if err != nil {
			return nil, err
		}
		if !includeTime {
			from = cal.DayStartOf(time.Unix(from, 0)).Unix()
			toDay := timeutil.NewCalendar(time.Unix(to, 0), cal.Now().Location())
			to = toDay.DayNumEnd(0).Unix()
		}
		return rangeFilter(key, from, to), nil
	}
	return nil, nil
}

func rangeFilter(key string, from, to int64) Filter {
	return FiltersAnd{
		FilterEq{Key: key, Cond: condGte, Value: domain.Int64(from)},
		FilterEq{Key: key, Cond: condLte, Value: domain.Int64(to)},
	}
}

func quickOptionRange(f model.Filter, cal timeutil.Calendar) (d1, d2 time.Time) {
	switch f.Operator {
	case model.OpIsYesterday:
		d1, d2 = cal.DayNumStart(-1), cal.DayNumEnd(-1)
	case model.OpIsToday:
		d1, d2 = cal.DayNumStart(0), cal.DayNumEnd(0)
	case model.OpIsTomorrow:
		d1, d2 = cal.DayNumStart(1), cal.DayNumEnd(1)
	case model.OpIsPastWeek:
		d1, d2 = cal.WeekNumStart(-1), cal.WeekNumEnd(-1)
	case model.OpIsThisWeek:
		d1, d2 = cal.WeekNumStart(0), cal.WeekNumEnd(0)
	case model.OpIsNextWeek:
		d1, d2 = cal.WeekNumStart(1), cal.WeekNumEnd(1)
	case model.OpIsPastMonth:
		d1, d2 = cal.MonthNumStart(-1), cal.MonthNumEnd(-1)
	case model.OpIsThisMonth:
		d1, d2 = cal.MonthNumStart(0), cal.MonthNumEnd(0)
	case model.OpIsNextMonth:
		d1, d2 = cal.MonthNumStart(1), cal.MonthNumEnd(1)
	case model.OpIsThisYear:
		d1, d2 = cal.YearNumStart(0), cal.YearNumEnd(0)
	case model.OpIsPastDays:
		days := f.Config.NumberOfDays
		d1, d2 = cal.DayNumStart(-days), cal.DayNumEnd(-1)
	case model.OpIsNextDays:
		days := f.Config.NumberOfDays
		d1, d2 = cal.DayNumStart(0), cal.DayNumEnd(days)
	}
	return d1, d2
}

// dateOperand accepts unix seconds or a parseable date string.
func dateOperand(v any, cal timeutil.Calendar) (int64, error) {
	val := domain.SomeValue(v)
	if ts, ok := val.Int64(); ok {
		return ts, nil
	}
	if s, ok := val.String(); ok {
		t, err := dateparse.ParseIn(s, cal.Now().Location())
		if err != nil {
			return 0, domain.Validationf("cannot parse date value %q", s)
		}
		return t.Unix(), nil
	}
	return 0, domain.Validationf("date value %v must be a timestamp or date string", v)
}

func dateRangeOperand(v any, cal timeutil.Calendar) (from, to int64, err error) {
	val := domain.SomeValue(v)
	if fl, ok := val.FloatList(); ok && len(fl) == 2 {
		return int64(fl[0]), int64(fl[1]), nil
	}
	if sl, ok := val.StringList(); ok && len(sl) == 2 {
		from, err = dateOperand(sl[0], cal)
		if err != nil {
			return 0, 0, err
		}
		to, err = dateOperand(sl[1], cal)
		if err != nil {
			return 0, 0, err
		}
		return from, to, nil
	}
	return 0, 0, domain.Validationf("date range value %v must hold exactly two bounds", v)
}
