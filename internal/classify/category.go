package classify

import "go/types"

//go:generate go tool stringer -type=Category -linecomment -output=category_string.go

// Category is the storage codec a bound value goes through.
type Category int

const (
	_ Category = iota // zero value is not a valid category

	Int32     // int32
	Int64     // int64
	Int16     // int16
	Float32   // float32
	Float64   // float64
	Bool      // bool
	Bytes     // bytes
	Text      // text
	Timestamp // timestamp

	// CategoryTotal is the number of valid categories.
	CategoryTotal = int(iota) - 1
)

// All returns every valid category in declaration order.
func All() []Category {
	all := make([]Category, 0, CategoryTotal)
	for c := Int32; c <= Timestamp; c++ {
		all = append(all, c)
	}

	return all
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	return c >= Int32 && c <= Timestamp
}

// GoType returns the Go spelling of the value type for c.
func (c Category) GoType() string {
	switch c {
	default:
		panic("no Go type for category: " + c.String())
	case Int32, Int64, Int16, Float32, Float64, Bool:
		return c.String()
	case Bytes:
		return "[]byte"
	case Text:
		return "string"
	case Timestamp:
		return "time.Time"
	}
}

// Of classifies a declared value type. Anything outside the supported set,
// including named types over supported basics, is rejected.
func Of(t types.Type) (Category, bool) {
	switch tt := types.Unalias(t).(type) {
	case *types.Basic:
		return ofBasic(tt)

	case *types.Slice:
		if elem, ok := types.Unalias(tt.Elem()).(*types.Basic); ok && elem.Kind() == types.Byte {
			return Bytes, true
		}

	case *types.Named:
		if isTime(tt) {
			return Timestamp, true
		}
	}

	return 0, false
}

func ofBasic(b *types.Basic) (Category, bool) {
	switch b.Kind() {
	case types.Int32:
		return Int32, true
	case types.Int64:
		return Int64, true
	case types.Int16:
		return Int16, true
	case types.Float32:
		return Float32, true
	case types.Float64:
		return Float64, true
	case types.Bool:
		return Bool, true
	case types.String:
		return Text, true
	default:
		return 0, false
	}
}

func isTime(n *types.Named) bool {
	obj := n.Obj()
	return obj.Pkg() != nil && obj.Pkg().Path() == "time" && obj.Name() == "Time"
}
