package database

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/lifekeep/docview/core/domain"
	"github.com/lifekeep/docview/pkg/lib/model"
	"github.com/lifekeep/docview/util/timeutil"
)

// Order compares two records for one or more sort keys. Used with a
// stable sort so that full ties keep their original relative order.
type Order interface {
	Compare(a, b *domain.Details) int
	String() string
}

type SetOrder []Order

func (so SetOrder) Compare(a, b *domain.Details) int {
	for _, o := range so {
		if comp := o.Compare(a, b); comp != 0 {
			return comp
		}
	}
	return 0
}

func (so SetOrder) String() string {
	ss := make([]string, 0, len(so))
	for _, o := range so {
		ss = append(ss, o.String())
	}
	return strings.Join(ss, ", ")
}

// KeyOrder compares one sort key. Null and empty-string placement is
// absolute: it is decided before the direction flip, so "nulls last"
// keeps nulls last in descending order too.
type KeyOrder struct {
	Key            string
	Direction      model.SortDirection
	NullsFirst     bool
	EmptyString    model.EmptyStringHandling
	TreatAsNumber  bool
	DateFormat     string
	CaseSensitive  bool
	IncludeTime    bool
	relationFormat model.PropertyType
	collator       *collate.Collator
	cal            timeutil.Calendar
}

// NewKeyOrder builds the per-key comparator from the sort's wire config
// and the property's declared type. locale "" keeps codepoint order.
func NewKeyOrder(s model.Sort, propType model.PropertyType, cal timeutil.Calendar, locale string) *KeyOrder {
	ko := &KeyOrder{
		Key:            s.PropertyId,
		Direction:      s.Direction,
		relationFormat: propType,
		cal:            cal,
	}
	if cfg := s.Config; cfg != nil {
		ko.NullsFirst = cfg.NullsFirst
		ko.EmptyString = cfg.EmptyStringHandling
		ko.TreatAsNumber = cfg.TreatAsNumber
		ko.DateFormat = cfg.DateFormat
		ko.CaseSensitive = cfg.CaseSensitive
		ko.IncludeTime = cfg.IncludeTime
		if cfg.Locale != "" {
			locale = cfg.Locale
		}
	}
	if locale != "" {
		opts := []collate.Option{}
		if !ko.CaseSensitive {
			opts = append(opts, collate.IgnoreCase)
		}
		ko.collator = collate.New(language.Make(locale), opts...)
	}
	return ko
}

func (ko *KeyOrder) Compare(a, b *domain.Details) int {
	av := ko.normalize(a.Get(ko.Key))
	bv := ko.normalize(b.Get(ko.Key))

	aNull := ko.treatedAsNull(av)
	bNull := ko.treatedAsNull(bv)
	if aNull && bNull {
		return 0
	}
	if aNull || bNull {
		if ko.NullsFirst == aNull {
			return -1
		}
		return 1
	}

	if ko.EmptyString == model.EmptyStringFirst || ko.EmptyString == model.EmptyStringLast {
		aEmpty := av.Ok() && av.StringOrDefault("x") == ""
		bEmpty := bv.Ok() && bv.StringOrDefault("x") == ""
		if aEmpty != bEmpty {
			if (ko.EmptyString == model.EmptyStringFirst) == aEmpty {
				return -1
			}
			return 1
		}
	}

	comp := ko.compareValues(av, bv)
	if ko.Direction == model.SortDesc {
		comp = -comp
	}
	return comp
}

func (ko *KeyOrder) compareValues(av, bv domain.Value) int {
	as, aIsStr := av.String()
	bs, bIsStr := bv.String()
	if aIsStr && bIsStr {
		if ko.collator != nil {
			return ko.collator.CompareString(as, bs)
		}
		if !ko.CaseSensitive {
			if comp := strings.Compare(strings.ToLower(as), strings.ToLower(bs)); comp != 0 {
				return comp
			}
		}
		return strings.Compare(as, bs)
	}
	return av.Compare(bv)
}

func (ko *KeyOrder) treatedAsNull(v domain.Value) bool {
	if !v.Ok() {
		return true
	}
	if ko.EmptyString != model.EmptyStringFirst && ko.EmptyString != model.EmptyStringLast {
		if s, ok := v.String(); ok && s == "" {
			return true
		}
	}
	return false
}

func (ko *KeyOrder) normalize(v domain.Value) domain.Value {
	if s, ok := v.String(); ok && s != "" {
		if ko.TreatAsNumber {
			if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
				v = domain.Float(f)
			}
		}
		if ko.relationFormat == model.PropertyTypeDate {
			if parsed, err := ko.parseDate(s); err == nil {
				v = domain.Int64(parsed.Unix())
			}
		}
	}
	if ko.relationFormat == model.PropertyTypeDate && !ko.IncludeTime {
		if ts, ok := v.Int64(); ok {
			v = domain.Int64(ko.cal.DayStartOf(time.Unix(ts, 0)).Unix())
		}
	}
	return v
}

func (ko *KeyOrder) parseDate(s string) (time.Time, error) {
	loc := ko.cal.Now().Location()
	if ko.DateFormat != "" {
		if t, err := time.ParseInLocation(ko.DateFormat, s, loc); err == nil {
			return t, nil
		}
	}
	return dateparse.ParseIn(s, loc)
}

func (ko *KeyOrder) String() string {
	s := ko.Key
	if ko.Direction == model.SortDesc {
		s += " DESC"
	}
	return s
}

// CustomOrder pins an explicit value order ahead of the regular key
// comparison. Values missing from the pinned list sort after pinned ones
// and fall back to the wrapped KeyOrder among themselves.
type CustomOrder struct {
	Key          string
	NeedOrderMap map[string]int
	KeyOrd       *KeyOrder
}

func NewCustomOrder(key string, needOrder []string, keyOrd *KeyOrder) CustomOrder {
	m := make(map[string]int, len(needOrder))
	for i, v := range needOrder {
		m[v] = i
	}
	return CustomOrder{Key: key, NeedOrderMap: m, KeyOrd: keyOrd}
}

func (co CustomOrder) Compare(a, b *domain.Details) int {
	aID, aOk := co.NeedOrderMap[valueKey(a.Get(co.Key))]
	bID, bOk := co.NeedOrderMap[valueKey(b.Get(co.Key))]
	if aOk && bOk {
		switch {
		case aID == bID:
			return 0
		case aID < bID:
			return -1
		default:
			return 1
		}
	}
	if aOk {
		return -1
	}
	if bOk {
		return 1
	}
	return co.KeyOrd.Compare(a, b)
}

func (co CustomOrder) String() string {
	return co.Key + " CUSTOM"
}

func valueKey(v domain.Value) string {
	if s, ok := v.String(); ok {
		return s
	}
	if !v.Ok() {
		return ""
	}
	return fmt.Sprintf("%v", v.Raw())
}
