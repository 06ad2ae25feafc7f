package rowmap

import (
	"maps"
	"slices"
)

// Values is a column-keyed value bag staged for a write.
// A column present with a nil value is an explicit NULL.
type Values map[string]any

// NewValues returns an empty bag.
func NewValues() Values {
	return make(Values)
}

func (v Values) PutInt32(column string, value int32) { v[column] = value }

func (v Values) PutInt64(column string, value int64) { v[column] = value }

func (v Values) PutInt16(column string, value int16) { v[column] = value }

func (v Values) PutFloat32(column string, value float32) { v[column] = value }

func (v Values) PutFloat64(column string, value float64) { v[column] = value }

func (v Values) PutBool(column string, value bool) { v[column] = value }

func (v Values) PutString(column string, value string) { v[column] = value }

// PutBlob stores a copy of value.
func (v Values) PutBlob(column string, value []byte) {
	if value == nil {
		v[column] = []byte(nil)
		return
	}

	v[column] = slices.Clone(value)
}

// PutNull marks the column as explicitly absent.
func (v Values) PutNull(column string) { v[column] = nil }

// Get returns the staged value for column.
func (v Values) Get(column string) (any, bool) {
	value, ok := v[column]
	return value, ok
}

// IsNull reports whether column was staged as NULL.
func (v Values) IsNull(column string) bool {
	value, ok := v[column]
	return ok && value == nil
}

// Columns returns the staged column names in sorted order.
func (v Values) Columns() []string {
	return slices.Sorted(maps.Keys(v))
}

func (v Values) Len() int {
	return len(v)
}

// Map returns the bag as a plain map, the form query builders accept.
func (v Values) Map() map[string]any {
	return map[string]any(v)
}
