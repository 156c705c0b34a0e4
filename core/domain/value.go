package domain

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Value is the tagged union of every value a property can hold. Records,
// filter operands and sort keys all speak this type, so the evaluator can
// match on it exhaustively instead of probing dynamic types.
type Value struct {
	ok    bool
	value any
}

type ValueType int

const (
	ValueTypeNone ValueType = iota
	ValueTypeBool
	ValueTypeFloat
	ValueTypeString
	ValueTypeStringList
	ValueTypeFloatList
)

// Null is the absent value: Ok() is false, Compare places it before
// everything else.
func Null() Value {
	return Value{}
}

func Bool(v bool) Value {
	return Value{ok: true, value: v}
}

func String(v string) Value {
	return Value{ok: true, value: v}
}

func Float(v float64) Value {
	return Value{ok: true, value: v}
}

func Int64(v int64) Value {
	return Value{ok: true, value: float64(v)}
}

func StringList(v []string) Value {
	return Value{ok: true, value: v}
}

func FloatList(v []float64) Value {
	return Value{ok: true, value: v}
}

// SomeValue wraps a raw value. Ints are normalized to float64 so numbers
// coming from JSON and from Go code compare equal.
func SomeValue(value any) Value {
	switch v := value.(type) {
	case nil:
		return Value{}
	case int:
		return Float(float64(v))
	case int64:
		return Float(float64(v))
	case []any:
		return someList(v)
	default:
		return Value{ok: true, value: value}
	}
}

func someList(raw []any) Value {
	if len(raw) == 0 {
		return StringList(nil)
	}
	switch raw[0].(type) {
	case string:
		list := make([]string, 0, len(raw))
		for _, el := range raw {
			s, ok := el.(string)
			if !ok {
				return Value{ok: true, value: raw}
			}
			list = append(list, s)
		}
		return StringList(list)
	case float64:
		list := make([]float64, 0, len(raw))
		for _, el := range raw {
			f, ok := el.(float64)
			if !ok {
				return Value{ok: true, value: raw}
			}
			list = append(list, f)
		}
		return FloatList(list)
	}
	return Value{ok: true, value: raw}
}

var ErrInvalidValue = errors.New("invalid value")

func (v Value) Validate() error {
	if !v.ok {
		return nil
	}
	switch v.value.(type) {
	case bool, string, float64, []string, []float64:
		return nil
	default:
		return errors.Join(ErrInvalidValue, fmt.Errorf("value is of unsupported type %T", v.value))
	}
}

func (v Value) Ok() bool {
	return v.ok
}

func (v Value) Raw() any {
	if !v.ok {
		return nil
	}
	return v.value
}

func (v Value) Type() ValueType {
	if !v.ok {
		return ValueTypeNone
	}
	switch v.value.(type) {
	case bool:
		return ValueTypeBool
	case float64:
		return ValueTypeFloat
	case string:
		return ValueTypeString
	case []string:
		return ValueTypeStringList
	case []float64:
		return ValueTypeFloatList
	default:
		return ValueTypeNone
	}
}

func (v Value) Bool() (bool, bool) {
	if !v.ok {
		return false, false
	}
	b, ok := v.value.(bool)
	return b, ok
}

func (v Value) BoolOrDefault(def bool) bool {
	res, ok := v.Bool()
	if !ok {
		return def
	}
	return res
}

func (v Value) String() (string, bool) {
	if !v.ok {
		return "", false
	}
	s, ok := v.value.(string)
	return s, ok
}

func (v Value) StringOrDefault(def string) string {
	res, ok := v.String()
	if !ok {
		return def
	}
	return res
}

func (v Value) Float() (float64, bool) {
	if !v.ok {
		return 0, false
	}
	f, ok := v.value.(float64)
	return f, ok
}

func (v Value) FloatOrDefault(def float64) float64 {
	res, ok := v.Float()
	if !ok {
		return def
	}
	return res
}

func (v Value) Int64() (int64, bool) {
	f, ok := v.Float()
	if !ok {
		return 0, false
	}
	return int64(f), true
}

func (v Value) Int64OrDefault(def int64) int64 {
	res, ok := v.Int64()
	if !ok {
		return def
	}
	return res
}

func (v Value) StringList() ([]string, bool) {
	if !v.ok {
		return nil, false
	}
	l, ok := v.value.([]string)
	return l, ok
}

func (v Value) StringListOrDefault(def []string) []string {
	res, ok := v.StringList()
	if !ok {
		return def
	}
	return res
}

func (v Value) FloatList() ([]float64, bool) {
	if !v.ok {
		return nil, false
	}
	l, ok := v.value.([]float64)
	return l, ok
}

func (v Value) FloatListOrDefault(def []float64) []float64 {
	res, ok := v.FloatList()
	if !ok {
		return def
	}
	return res
}

// WrapToStringList views a scalar string as a one-element list so that
// multi-value operators work on single-select values too.
func (v Value) WrapToStringList() ([]string, bool) {
	if list, ok := v.StringList(); ok {
		return list, true
	}
	if s, ok := v.String(); ok {
		return []string{s}, true
	}
	return nil, false
}

// IsEmpty reports whether the value counts as "empty" for the is_empty
// operator: absent, empty string, empty list, zero or false.
func (v Value) IsEmpty() bool {
	if !v.ok {
		return true
	}
	switch val := v.value.(type) {
	case bool:
		return !val
	case string:
		return val == ""
	case float64:
		return val == 0
	case []string:
		return len(val) == 0
	case []float64:
		return len(val) == 0
	}
	return false
}

// Compare orders values: none first, then by type, then within a type.
func (v Value) Compare(other Value) int {
	if !v.ok && other.ok {
		return -1
	}
	if v.ok && !other.ok {
		return 1
	}
	if !v.ok {
		return 0
	}

	if v.Type() != other.Type() {
		if v.Type() < other.Type() {
			return -1
		}
		return 1
	}

	switch v1 := v.value.(type) {
	case bool:
		v2, _ := other.Bool()
		if v1 == v2 {
			return 0
		}
		if !v1 {
			return -1
		}
		return 1
	case float64:
		v2, _ := other.Float()
		if v1 < v2 {
			return -1
		}
		if v1 > v2 {
			return 1
		}
		return 0
	case string:
		v2, _ := other.String()
		return strings.Compare(v1, v2)
	case []string:
		v2, _ := other.StringList()
		return slices.Compare(v1, v2)
	case []float64:
		v2, _ := other.FloatList()
		return slices.Compare(v1, v2)
	}
	return 0
}

func (v Value) Equal(other Value) bool {
	return v.Compare(other) == 0
}

func (v Value) EqualAny(other any) bool {
	return v.Equal(SomeValue(other))
}

// Match dispatches on the value's type. Absent values match no case.
func (v Value) Match(
	boolCase func(v bool),
	floatCase func(v float64),
	stringCase func(v string),
	stringListCase func(v []string),
	floatListCase func(v []float64),
) {
	if !v.ok {
		return
	}
	switch v := v.value.(type) {
	case bool:
		boolCase(v)
	case float64:
		floatCase(v)
	case string:
		stringCase(v)
	case []string:
		stringListCase(v)
	case []float64:
		floatListCase(v)
	}
}
