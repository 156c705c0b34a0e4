package model

// Operator is a filter predicate drawn from the subset valid for the
// target property's type. Validity is enforced at view-write time, never
// silently coerced at evaluation time.
type Operator string

const (
	// Text operators. Contains, prefix and suffix honor caseSensitive and
	// default to case-insensitive.
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "not_equals"
	OpContains    Operator = "contains"
	OpNotContains Operator = "not_contains"
	OpStartsWith  Operator = "starts_with"
	OpEndsWith    Operator = "ends_with"
	OpIsEmpty     Operator = "is_empty"
	OpIsNotEmpty  Operator = "is_not_empty"

	// Number operators.
	OpGreaterThan        Operator = "greater_than"
	OpGreaterThanOrEqual Operator = "greater_than_or_equal"
	OpLessThan           Operator = "less_than"
	OpLessThanOrEqual    Operator = "less_than_or_equal"

	// Absolute date operators.
	OpDateEquals  Operator = "date_equals"
	OpDateBefore  Operator = "date_before"
	OpDateAfter   Operator = "date_after"
	OpDateBetween Operator = "date_between"

	// Relative date operators, evaluated against the evaluation-time
	// clock with the calendar's week/month boundary convention.
	OpIsToday     Operator = "is_today"
	OpIsYesterday Operator = "is_yesterday"
	OpIsTomorrow  Operator = "is_tomorrow"
	OpIsThisWeek  Operator = "is_this_week"
	OpIsThisMonth Operator = "is_this_month"
	OpIsThisYear  Operator = "is_this_year"
	OpIsPastWeek  Operator = "is_past_week"
	OpIsPastMonth Operator = "is_past_month"
	OpIsNextWeek  Operator = "is_next_week"
	OpIsNextMonth Operator = "is_next_month"
	// Parameterized by Config.NumberOfDays.
	OpIsPastDays Operator = "is_past_days"
	OpIsNextDays Operator = "is_next_days"

	// Multi-value operators (multi_select, relation).
	OpIncludes    Operator = "includes"
	OpNotIncludes Operator = "not_includes"
	OpIncludesAll Operator = "includes_all"
	OpIncludesAny Operator = "includes_any"

	// Boolean operators.
	OpIsTrue  Operator = "is_true"
	OpIsFalse Operator = "is_false"
)

var textOperators = []Operator{
	OpEquals, OpNotEquals, OpContains, OpNotContains,
	OpStartsWith, OpEndsWith, OpIsEmpty, OpIsNotEmpty,
}

var numberOperators = []Operator{
	OpEquals, OpNotEquals, OpGreaterThan, OpGreaterThanOrEqual,
	OpLessThan, OpLessThanOrEqual,
}

var dateOperators = []Operator{
	OpDateEquals, OpDateBefore, OpDateAfter, OpDateBetween,
	OpIsToday, OpIsYesterday, OpIsTomorrow,
	OpIsThisWeek, OpIsThisMonth, OpIsThisYear,
	OpIsPastWeek, OpIsPastMonth, OpIsNextWeek, OpIsNextMonth,
	OpIsPastDays, OpIsNextDays,
	OpIsEmpty, OpIsNotEmpty,
}

var selectOperators = []Operator{
	OpEquals, OpNotEquals, OpIsEmpty, OpIsNotEmpty,
}

// equals/not_equals on a multi-value property compare the whole value
// set, ignoring element order.
var multiValueOperators = []Operator{
	OpEquals, OpNotEquals,
	OpIncludes, OpNotIncludes, OpIncludesAll, OpIncludesAny,
	OpIsEmpty, OpIsNotEmpty,
}

var booleanOperators = []Operator{
	OpIsTrue, OpIsFalse,
}

var operatorsByType = map[PropertyType][]Operator{
	PropertyTypeText:        textOperators,
	PropertyTypeRichText:    textOperators,
	PropertyTypeNumber:      numberOperators,
	PropertyTypeProgress:    numberOperators,
	PropertyTypeDate:        dateOperators,
	PropertyTypeSelect:      selectOperators,
	PropertyTypeIcon:        selectOperators,
	PropertyTypeMultiSelect: multiValueOperators,
	PropertyTypeRelation:    multiValueOperators,
	PropertyTypeBoolean:     booleanOperators,
}

// OperatorsForType returns the closed operator subset for a property
// type. Unknown types have no valid operators.
func OperatorsForType(t PropertyType) []Operator {
	ops := operatorsByType[t]
	res := make([]Operator, len(ops))
	copy(res, ops)
	return res
}

func (op Operator) ValidFor(t PropertyType) bool {
	for _, o := range operatorsByType[t] {
		if o == op {
			return true
		}
	}
	return false
}

// IsUnary reports whether the operator takes no operand value.
func (op Operator) IsUnary() bool {
	switch op {
	case OpIsEmpty, OpIsNotEmpty, OpIsTrue, OpIsFalse,
		OpIsToday, OpIsYesterday, OpIsTomorrow,
		OpIsThisWeek, OpIsThisMonth, OpIsThisYear,
		OpIsPastWeek, OpIsPastMonth, OpIsNextWeek, OpIsNextMonth,
		OpIsPastDays, OpIsNextDays:
		return true
	}
	return false
}

// IsRelativeDate reports whether the operator's match window depends on
// the evaluation-time clock.
func (op Operator) IsRelativeDate() bool {
	switch op {
	case OpIsToday, OpIsYesterday, OpIsTomorrow,
		OpIsThisWeek, OpIsThisMonth, OpIsThisYear,
		OpIsPastWeek, OpIsPastMonth, OpIsNextWeek, OpIsNextMonth,
		OpIsPastDays, OpIsNextDays:
		return true
	}
	return false
}
