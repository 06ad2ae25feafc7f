package plan

import (
	"go/token"
	"go/types"
	"slices"
	"strings"

	"rowmapper-generator/internal/analyze"
	"rowmapper-generator/internal/classify"
	"rowmapper-generator/internal/diagnostic"
)

//go:generate go tool stringer -type=BindingKind -linecomment -output=bindingkind_string.go

// BindingKind tells how a decoded value reaches the item.
type BindingKind int

const (
	_ BindingKind = iota

	BindingField    // field
	BindingAccessor // accessor
)

// FieldTarget is a direct field write.
type FieldTarget struct {
	Name string
	// Selector is the path below the item, e.g. "Email" or "Person.Email".
	Selector string
}

// AccessorTarget is a setter call.
type AccessorTarget struct {
	Method string
	// Field is the field the setter stands in for; empty for marked methods.
	Field string
}

// Getter is how Encode reads the current value of a binding.
type Getter struct {
	// Expr is appended to the item, e.g. "Email" or "Lastname()".
	Expr string
}

// Binding is one resolved column binding. Exactly one of Field and Accessor is set.
type Binding struct {
	Column   string
	Owner    analyze.TypeID
	Member   string
	Kind     BindingKind
	Field    *FieldTarget
	Accessor *AccessorTarget
	Type     types.Type
	Category classify.Category
	Strict   bool
	Pos      token.Position
	// Getter is nil when the value cannot be read back for encoding.
	Getter *Getter
	// BuilderMethod is the values builder method name for this column.
	BuilderMethod string
}

// Constructor describes how a mapper instantiates the class.
type Constructor struct {
	// Func is the constructor to call; empty means new(T).
	Func           string
	ReturnsPointer bool
}

// ResolvedClass is a class that passed validation.
type ResolvedClass struct {
	ID          analyze.TypeID
	PkgName     string
	Dir         string
	Constructor Constructor
	Ancestors   []analyze.TypeID // closest first
	// Bindings are sorted by column name.
	Bindings []Binding
	// OutputPkgPath is the package the mapper is generated into.
	OutputPkgPath string
	OutputPkgName string
	OutputDir     string
	MapperName    string
	BuilderName   string
}

// Lookup returns the binding for column.
func (c *ResolvedClass) Lookup(column string) (*Binding, bool) {
	i, found := slices.BinarySearchFunc(c.Bindings, column, func(b Binding, col string) int {
		return strings.Compare(b.Column, col)
	})
	if !found {
		return nil, false
	}

	return &c.Bindings[i], true
}

// Columns returns the bound column names in order.
func (c *ResolvedClass) Columns() []string {
	out := make([]string, len(c.Bindings))
	for i, b := range c.Bindings {
		out[i] = b.Column
	}

	return out
}

// SamePackage reports whether the mapper lives next to the class.
func (c *ResolvedClass) SamePackage() bool {
	return c.OutputPkgPath == c.ID.PkgPath
}

// ResolvedPlan is the output of one resolution pass.
type ResolvedPlan struct {
	Classes     []ResolvedClass
	Diagnostics diagnostic.Diagnostics
}
