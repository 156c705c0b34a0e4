package database

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"

	"github.com/lifekeep/docview/core/domain"
	"github.com/lifekeep/docview/pkg/lib/model"
	"github.com/lifekeep/docview/util/timeutil"
)

// MakeFilters builds the evaluator tree for a view's filter list.
// Disabled filters are skipped entirely. Consecutive enabled filters
// sharing a groupId fold into one parenthesized sub-expression evaluated
// before the rest of the chain; the group joins the running result with
// the logic of its first member. Ungrouped filters join with their own
// logic.
func MakeFilters(filters []model.Filter, sch Schema, cal timeutil.Calendar) (Filter, error) {
	ordered := make([]model.Filter, 0, len(filters))
	for _, f := range filters {
		if f.Enabled {
			ordered = append(ordered, f)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})

	type chunk struct {
		logic model.FilterLogic
		f     Filter
	}
	var chunks []chunk
	for i := 0; i < len(ordered); {
		first := ordered[i]
		if first.GroupId == nil {
			f, err := MakeFilter(first, sch, cal)
			if err != nil {
				return nil, err
			}
			chunks = append(chunks, chunk{logic: first.Logic, f: f})
			i++
			continue
		}
		// the group folds into one parenthesized sub-expression; members
		// after the first join it with their own logic, the first
		// member's logic joins the group to the running chain
		var group Filter
		j := i
		for ; j < len(ordered); j++ {
			if ordered[j].GroupId == nil || *ordered[j].GroupId != *first.GroupId {
				break
			}
			f, err := MakeFilter(ordered[j], sch, cal)
			if err != nil {
				return nil, err
			}
			if group == nil {
				group = f
			} else if ordered[j].Logic == model.FilterLogicOr {
				group = FiltersOr{group, f}
			} else {
				group = FiltersAnd{group, f}
			}
		}
		chunks = append(chunks, chunk{logic: first.Logic, f: group})
		i = j
	}

	if len(chunks) == 0 {
		return FiltersAnd{}, nil
	}
	result := chunks[0].f
	for _, c := range chunks[1:] {
		if c.logic == model.FilterLogicOr {
			result = FiltersOr{result, c.f}
		} else {
			result = FiltersAnd{result, c.f}
		}
	}
	return result, nil
}

// MakeFilter builds the evaluator for a single predicate. The operator
// must belong to the property type's subset; a dangling propertyId
// degrades to a no-match leaf.
func MakeFilter(rawFilter model.Filter, sch Schema, cal timeutil.Calendar) (Filter, error) {
	prop, ok := sch.PropertyById(rawFilter.PropertyId)
	if !ok {
		log.Warnf("filter references unknown property %s", rawFilter.PropertyId)
		return filterNone{Key: rawFilter.PropertyId}, nil
	}
	if err := validateFilter(rawFilter, prop); err != nil {
		return nil, err
	}

	key := rawFilter.PropertyId
	multiValue := prop.Type == model.PropertyTypeMultiSelect || prop.Type == model.PropertyTypeRelation
	switch rawFilter.Operator {
	case model.OpEquals:
		if multiValue {
			list, err := stringListOperand(rawFilter.Value)
			if err != nil {
				return nil, err
			}
			return FilterExactIn{Key: key, Values: list}, nil
		}
		return FilterEq{Key: key, Cond: condEq, Value: domain.SomeValue(rawFilter.Value)}, nil
	case model.OpNotEquals:
		if multiValue {
			list, err := stringListOperand(rawFilter.Value)
			if err != nil {
				return nil, err
			}
			return FilterNot{FilterExactIn{Key: key, Values: list}}, nil
		}
		return FilterNot{FilterEq{Key: key, Cond: condEq, Value: domain.SomeValue(rawFilter.Value)}}, nil
	case model.OpGreaterThan:
		return FilterEq{Key: key, Cond: condGt, Value: domain.SomeValue(rawFilter.Value)}, nil
	case model.OpGreaterThanOrEqual:
		return FilterEq{Key: key, Cond: condGte, Value: domain.SomeValue(rawFilter.Value)}, nil
	case model.OpLessThan:
		return FilterEq{Key: key, Cond: condLt, Value: domain.SomeValue(rawFilter.Value)}, nil
	case model.OpLessThanOrEqual:
		return FilterEq{Key: key, Cond: condLte, Value: domain.SomeValue(rawFilter.Value)}, nil
	case model.OpContains:
		return newFilterLike(key, stringOperand(rawFilter.Value), rawFilter.CaseSensitive, wholeWord(rawFilter.Config), isRegex(rawFilter.Config))
	case model.OpNotContains:
		like, err := newFilterLike(key, stringOperand(rawFilter.Value), rawFilter.CaseSensitive, wholeWord(rawFilter.Config), isRegex(rawFilter.Config))
		if err != nil {
			return nil, err
		}
		return FilterNot{like}, nil
	case model.OpStartsWith:
		return FilterPrefix{Key: key, Value: stringOperand(rawFilter.Value), CaseSensitive: rawFilter.CaseSensitive}, nil
	case model.OpEndsWith:
		return FilterSuffix{Key: key, Value: stringOperand(rawFilter.Value), CaseSensitive: rawFilter.CaseSensitive}, nil
	case model.OpIsEmpty:
		return FilterEmpty{Key: key}, nil
	case model.OpIsNotEmpty:
		return FilterNot{FilterEmpty{Key: key}}, nil
	case model.OpIncludes:
		return FilterHas{Key: key, Value: stringOperand(rawFilter.Value)}, nil
	case model.OpNotIncludes:
		return FilterNot{FilterHas{Key: key, Value: stringOperand(rawFilter.Value)}}, nil
	case model.OpIncludesAll:
		list, err := stringListOperand(rawFilter.Value)
		if err != nil {
			return nil, err
		}
		return FilterAllIn{Key: key, Values: list}, nil
	case model.OpIncludesAny:
		list, err := stringListOperand(rawFilter.Value)
		if err != nil {
			return nil, err
		}
		return FilterIn{Key: key, Values: list}, nil
	case model.OpIsTrue:
		return FilterEq{Key: key, Cond: condEq, Value: domain.Bool(true)}, nil
	case model.OpIsFalse:
		// "false" must also match records that never set the checkbox
		return FilterNot{FilterEq{Key: key, Cond: condEq, Value: domain.Bool(true)}}, nil
	}

	if dateFilter, err := makeDateFilter(rawFilter, cal); dateFilter != nil || err != nil {
		return dateFilter, err
	}
	return nil, domain.Validationf("unexpected filter operator %q", rawFilter.Operator)
}

// ValidateFilters checks every filter against the schema's operator table
// and aggregates the failures. Called at view-write time so evaluation
// never sees an invalid operator.
func ValidateFilters(filters []model.Filter, sch Schema) error {
	var result *multierror.Error
	for _, f := range filters {
		prop, ok := sch.PropertyById(f.PropertyId)
		if !ok {
			result = multierror.Append(result, domain.Validationf("filter %s: unknown property %q", f.Id, f.PropertyId))
			continue
		}
		if err := validateFilter(f, prop); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func validateFilter(f model.Filter, prop model.Property) error {
	if !f.Operator.ValidFor(prop.Type) {
		return domain.Validationf("operator %q is not valid for property %q of type %q", f.Operator, prop.Id, prop.Type)
	}
	if !f.Operator.IsUnary() && f.Value == nil {
		return domain.Validationf("operator %q on property %q requires a value", f.Operator, prop.Id)
	}
	if f.Operator == model.OpIsPastDays || f.Operator == model.OpIsNextDays {
		if f.Config == nil || f.Config.NumberOfDays <= 0 {
			return domain.Validationf("operator %q on property %q requires config.numberOfDays", f.Operator, prop.Id)
		}
	}
	return nil
}

func stringOperand(v any) string {
	return domain.SomeValue(v).StringOrDefault("")
}

func stringListOperand(v any) ([]string, error) {
	list, ok := domain.SomeValue(v).WrapToStringList()
	if !ok {
		return nil, domain.Validationf("value %v must be a list of strings", v)
	}
	return list, nil
}

func wholeWord(cfg *model.FilterConfig) bool {
	return cfg != nil && cfg.WholeWord
}

func isRegex(cfg *model.FilterConfig) bool {
	return cfg != nil && cfg.Regex
}

// Filter decides whether one record satisfies one predicate. Composite
// filters wrap other filters; leaves read a single property.
type Filter interface {
	FilterRecord(d *domain.Details) bool
	String() string
}

type FiltersAnd []Filter

func (a FiltersAnd) FilterRecord(d *domain.Details) bool {
	for _, f := range a {
		if !f.FilterRecord(d) {
			return false
		}
	}
	return true
}

func (a FiltersAnd) String() string {
	return joinFilters(a, " AND ")
}

type FiltersOr []Filter

func (o FiltersOr) FilterRecord(d *domain.Details) bool {
	if len(o) == 0 {
		return true
	}
	for _, f := range o {
		if f.FilterRecord(d) {
			return true
		}
	}
	return false
}

func (o FiltersOr) String() string {
	return joinFilters(o, " OR ")
}

func joinFilters[F ~[]Filter](fs F, sep string) string {
	ss := make([]string, 0, len(fs))
	for _, f := range fs {
		ss = append(ss, f.String())
	}
	return "(" + strings.Join(ss, sep) + ")"
}

type FilterNot struct {
	Filter Filter
}

func (n FilterNot) FilterRecord(d *domain.Details) bool {
	if n.Filter == nil {
		return false
	}
	return !n.Filter.FilterRecord(d)
}

func (n FilterNot) String() string {
	return "NOT " + n.Filter.String()
}

type cmpCond int

// Negated equality is expressed as FilterNot over condEq: with
// list-valued records that reads "no element equals", which is the
// contract, while a dedicated not-equal condition would unfold to "some
// element differs".
const (
	condEq cmpCond = iota
	condGt
	condGte
	condLt
	condLte
)

var condNames = map[cmpCond]string{
	condEq: "=", condGt: ">", condGte: ">=", condLt: "<", condLte: "<=",
}

// FilterEq covers equality and ordered comparison over scalar values.
// When the record holds a list and the operand is a scalar, any matching
// element satisfies the predicate.
type FilterEq struct {
	Key   string
	Cond  cmpCond
	Value domain.Value
}

func (e FilterEq) FilterRecord(d *domain.Details) bool {
	return e.filterValue(d.Get(e.Key))
}

func (e FilterEq) filterValue(v domain.Value) bool {
	if list, ok := v.StringList(); ok {
		if _, operandIsList := e.Value.StringList(); !operandIsList {
			for _, el := range list {
				if e.filterValue(domain.String(el)) {
					return true
				}
			}
			return false
		}
	}
	comp := e.Value.Compare(v)
	switch e.Cond {
	case condEq:
		return comp == 0
	case condGt:
		return comp == -1
	case condGte:
		return comp <= 0
	case condLt:
		return comp == 1
	case condLte:
		return comp >= 0
	}
	return false
}

func (e FilterEq) String() string {
	return fmt.Sprintf("%s %s %v", e.Key, condNames[e.Cond], e.Value.Raw())
}

// FilterLike matches substrings. Default is case-insensitive; WholeWord
// and Regex come from the filter's config.
type FilterLike struct {
	Key           string
	Value         string
	CaseSensitive bool
	WholeWord     bool
	Regex         bool

	re *regexp.Regexp
}

func newFilterLike(key, value string, caseSensitive, wholeWord, regex bool) (FilterLike, error) {
	f := FilterLike{Key: key, Value: value, CaseSensitive: caseSensitive, WholeWord: wholeWord, Regex: regex}
	if regex || wholeWord {
		pattern := value
		if !regex {
			pattern = regexp.QuoteMeta(value)
		}
		if wholeWord {
			pattern = `\b(?:` + pattern + `)\b`
		}
		if !caseSensitive {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return f, domain.Validationf("invalid text search pattern %q", value)
		}
		f.re = re
	}
	return f, nil
}

func (l FilterLike) FilterRecord(d *domain.Details) bool {
	val, ok := d.Get(l.Key).String()
	if !ok || val == "" {
		return false
	}
	if l.re != nil {
		return l.re.MatchString(val)
	}
	if l.CaseSensitive {
		return strings.Contains(val, l.Value)
	}
	return strings.Contains(strings.ToLower(val), strings.ToLower(l.Value))
}

func (l FilterLike) String() string {
	return fmt.Sprintf("%s LIKE %q", l.Key, l.Value)
}

type FilterPrefix struct {
	Key           string
	Value         string
	CaseSensitive bool
}

func (p FilterPrefix) FilterRecord(d *domain.Details) bool {
	val, ok := d.Get(p.Key).String()
	if !ok {
		return false
	}
	if p.CaseSensitive {
		return strings.HasPrefix(val, p.Value)
	}
	return strings.HasPrefix(strings.ToLower(val), strings.ToLower(p.Value))
}

func (p FilterPrefix) String() string {
	return fmt.Sprintf("%s STARTS WITH %q", p.Key, p.Value)
}

type FilterSuffix struct {
	Key           string
	Value         string
	CaseSensitive bool
}

func (s FilterSuffix) FilterRecord(d *domain.Details) bool {
	val, ok := d.Get(s.Key).String()
	if !ok {
		return false
	}
	if s.CaseSensitive {
		return strings.HasSuffix(val, s.Value)
	}
	return strings.HasSuffix(strings.ToLower(val), strings.ToLower(s.Value))
}

func (s FilterSuffix) String() string {
	return fmt.Sprintf("%s ENDS WITH %q", s.Key, s.Value)
}

// FilterEmpty matches absent values, empty strings, empty lists, zero and
// false.
type FilterEmpty struct {
	Key string
}

func (e FilterEmpty) FilterRecord(d *domain.Details) bool {
	return d.Get(e.Key).IsEmpty()
}

func (e FilterEmpty) String() string {
	return e.Key + " IS EMPTY"
}

// FilterHas matches records whose multi-value property contains the
// single operand.
type FilterHas struct {
	Key   string
	Value string
}

func (h FilterHas) FilterRecord(d *domain.Details) bool {
	list, ok := d.Get(h.Key).WrapToStringList()
	if !ok {
		return false
	}
	return lo.Contains(list, h.Value)
}

func (h FilterHas) String() string {
	return fmt.Sprintf("%s HAS %q", h.Key, h.Value)
}

// FilterIn matches when the property shares at least one element with the
// operand list.
type FilterIn struct {
	Key    string
	Values []string
}

func (i FilterIn) FilterRecord(d *domain.Details) bool {
	list, ok := d.Get(i.Key).WrapToStringList()
	if !ok {
		return false
	}
	return lo.Some(list, i.Values)
}

func (i FilterIn) String() string {
	return fmt.Sprintf("%s IN %v", i.Key, i.Values)
}

// FilterAllIn matches when the property contains every element of the
// operand list.
type FilterAllIn struct {
	Key    string
	Values []string
}

func (a FilterAllIn) FilterRecord(d *domain.Details) bool {
	list, ok := d.Get(a.Key).WrapToStringList()
	if !ok {
		return false
	}
	return lo.Every(list, a.Values)
}

func (a FilterAllIn) String() string {
	return fmt.Sprintf("%s ALL IN %v", a.Key, a.Values)
}

// FilterExactIn matches when the property's value set equals the operand
// set, element order ignored.
type FilterExactIn struct {
	Key    string
	Values []string
}

func (e FilterExactIn) FilterRecord(d *domain.Details) bool {
	list, ok := d.Get(e.Key).WrapToStringList()
	if !ok || len(list) != len(e.Values) {
		return false
	}
	got := slices.Clone(list)
	want := slices.Clone(e.Values)
	slices.Sort(got)
	slices.Sort(want)
	return slices.Equal(got, want)
}

func (e FilterExactIn) String() string {
	return fmt.Sprintf("%s EXACT IN %v", e.Key, e.Values)
}

// filterNone matches nothing. Dangling property references degrade to it
// instead of failing the whole evaluation.
type filterNone struct {
	Key string
}

func (filterNone) FilterRecord(*domain.Details) bool {
	return false
}

func (n filterNone) String() string {
	return n.Key + " IS UNRESOLVED"
}
