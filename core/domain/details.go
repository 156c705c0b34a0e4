package domain

import (
	"encoding/json"

	"golang.org/x/exp/slices"
)

// Details is one record as a map of property id to value. The engine never
// sees the storage layer's own representation, only this.
type Details struct {
	data map[string]any
}

func NewDetails() *Details {
	return &Details{data: map[string]any{}}
}

func NewDetailsFromMap(m map[string]any) *Details {
	d := &Details{data: make(map[string]any, len(m))}
	for k, v := range m {
		d.Set(k, v)
	}
	return d
}

func (d *Details) Len() int {
	return len(d.data)
}

func (d *Details) Set(key string, value any) {
	d.data[key] = SomeValue(value).Raw()
}

func (d *Details) SetValue(key string, value Value) {
	if !value.Ok() {
		delete(d.data, key)
		return
	}
	d.data[key] = value.Raw()
}

func (d *Details) Delete(key string) {
	delete(d.data, key)
}

func (d *Details) Get(key string) Value {
	v, ok := d.data[key]
	if !ok {
		return Value{}
	}
	return SomeValue(v)
}

func (d *Details) Has(key string) bool {
	_, ok := d.data[key]
	return ok
}

func (d *Details) Keys() []string {
	keys := make([]string, 0, len(d.data))
	for k := range d.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (d *Details) Iterate(proc func(key string, v Value) bool) {
	for k, v := range d.data {
		if !proc(k, SomeValue(v)) {
			return
		}
	}
}

func (d *Details) GetString(key string) (string, bool) {
	return d.Get(key).String()
}

func (d *Details) GetStringOrDefault(key, def string) string {
	return d.Get(key).StringOrDefault(def)
}

func (d *Details) GetBool(key string) (bool, bool) {
	return d.Get(key).Bool()
}

func (d *Details) GetBoolOrDefault(key string, def bool) bool {
	return d.Get(key).BoolOrDefault(def)
}

func (d *Details) GetFloat(key string) (float64, bool) {
	return d.Get(key).Float()
}

func (d *Details) GetFloatOrDefault(key string, def float64) float64 {
	return d.Get(key).FloatOrDefault(def)
}

func (d *Details) GetInt64(key string) (int64, bool) {
	return d.Get(key).Int64()
}

func (d *Details) GetInt64OrDefault(key string, def int64) int64 {
	return d.Get(key).Int64OrDefault(def)
}

func (d *Details) GetStringList(key string) ([]string, bool) {
	return d.Get(key).StringList()
}

func (d *Details) GetStringListOrDefault(key string, def []string) []string {
	return d.Get(key).StringListOrDefault(def)
}

func (d *Details) ShallowCopy() *Details {
	newData := make(map[string]any, len(d.data))
	for k, v := range d.data {
		newData[k] = v
	}
	return &Details{data: newData}
}

func (d *Details) CopyOnlyWithKeys(keys ...string) *Details {
	newData := make(map[string]any, len(keys))
	for k, v := range d.data {
		if slices.Contains(keys, k) {
			newData[k] = v
		}
	}
	return &Details{data: newData}
}

func (d *Details) CopyWithoutKeys(keys ...string) *Details {
	newData := make(map[string]any, len(d.data))
	for k, v := range d.data {
		if !slices.Contains(keys, k) {
			newData[k] = v
		}
	}
	return &Details{data: newData}
}

// Records cross the wire as plain JSON objects.
func (d *Details) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.data)
}

func (d *Details) UnmarshalJSON(raw []byte) error {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return err
	}
	*d = *NewDetailsFromMap(m)
	return nil
}

func (d *Details) ToMap() map[string]any {
	m := make(map[string]any, len(d.data))
	for k, v := range d.data {
		m[k] = v
	}
	return m
}

func (d *Details) Equal(other *Details) bool {
	if d.Len() != other.Len() {
		return false
	}
	for k, v := range d.data {
		otherV, ok := other.data[k]
		if !ok {
			return false
		}
		if !SomeValue(v).EqualAny(otherV) {
			return false
		}
	}
	return true
}

func (d *Details) Merge(other *Details) *Details {
	res := d.ShallowCopy()
	other.Iterate(func(k string, v Value) bool {
		res.SetValue(k, v)
		return true
	})
	return res
}
