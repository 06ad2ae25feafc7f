package classify

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
)

func namedTime() types.Type {
	pkg := types.NewPackage("time", "time")
	obj := types.NewTypeName(0, pkg, "Time", nil)

	return types.NewNamed(obj, types.NewStruct(nil, nil), nil)
}

func TestOf_Supported(t *testing.T) {
	tests := []struct {
		name string
		typ  types.Type
		want Category
	}{
		{"int32", types.Typ[types.Int32], Int32},
		{"rune", types.Universe.Lookup("rune").Type(), Int32},
		{"int64", types.Typ[types.Int64], Int64},
		{"int16", types.Typ[types.Int16], Int16},
		{"float32", types.Typ[types.Float32], Float32},
		{"float64", types.Typ[types.Float64], Float64},
		{"bool", types.Typ[types.Bool], Bool},
		{"string", types.Typ[types.String], Text},
		{"bytes", types.NewSlice(types.Typ[types.Byte]), Bytes},
		{"time", namedTime(), Timestamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Of(tt.typ)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOf_Rejected(t *testing.T) {
	pkg := types.NewPackage("example.com/model", "model")
	status := types.NewNamed(types.NewTypeName(0, pkg, "Status", nil), types.Typ[types.Int32], nil)

	rejected := map[string]types.Type{
		"int":           types.Typ[types.Int],
		"uint64":        types.Typ[types.Uint64],
		"named int32":   status,
		"pointer":       types.NewPointer(types.Typ[types.String]),
		"string slice":  types.NewSlice(types.Typ[types.String]),
		"pointer time":  types.NewPointer(namedTime()),
		"untyped":       types.Typ[types.UntypedInt],
		"empty struct":  types.NewStruct(nil, nil),
		"complex128":    types.Typ[types.Complex128],
		"byte array":    types.NewArray(types.Typ[types.Byte], 4),
		"map of string": types.NewMap(types.Typ[types.String], types.Typ[types.String]),
	}

	for name, typ := range rejected {
		t.Run(name, func(t *testing.T) {
			_, ok := Of(typ)
			assert.False(t, ok)
		})
	}
}

func TestCategory_Names(t *testing.T) {
	assert.Len(t, All(), CategoryTotal)
	assert.Equal(t, "bytes", Bytes.String())
	assert.Equal(t, "timestamp", Timestamp.String())
	assert.Equal(t, "Category(0)", Category(0).String())
	assert.False(t, Category(0).Valid())

	assert.Equal(t, "[]byte", Bytes.GoType())
	assert.Equal(t, "time.Time", Timestamp.GoType())
	assert.Equal(t, "int16", Int16.GoType())
	assert.Panics(t, func() { _ = Category(42).GoType() })
}
