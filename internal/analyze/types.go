package analyze

import (
	"go/token"
	"go/types"
	"slices"
	"strings"

	"rowmapper-generator/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "rowmapper-generator/examples/people"
	Name    string // e.g., "Customer"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Qualified returns the short "pkg.Name" form used in diagnostics.
func (t TypeID) Qualified() string {
	return common.QualifiedName(t.PkgPath, t.Name)
}

// MemberKind tells fields and methods apart.
type MemberKind int

const (
	MemberField MemberKind = iota
	MemberMethod
)

func (k MemberKind) String() string {
	switch k {
	case MemberField:
		return "field"
	case MemberMethod:
		return "method"
	default:
		return common.UnknownStr
	}
}

// PathSegment is one embedded field on the way from a class to an ancestor.
type PathSegment struct {
	Name     string // embedded field name
	Exported bool
	Pointer  bool   // embedded as *T
	DeclPkg  string // package declaring the struct that holds this field
}

// Ancestor is a value- or pointer-embedded struct contributing members.
type Ancestor struct {
	ID      TypeID
	Path    []PathSegment
	Depth   int
	Pointer bool // some segment on the path is a pointer
}

// ColumnTag is a parsed column marker: "name[,option...]".
type ColumnTag struct {
	Name    string
	Options []string
	Raw     string
}

// ParseColumnTag splits a marker value into the column name and options.
func ParseColumnTag(raw string) ColumnTag {
	parts := strings.Split(raw, ",")
	tag := ColumnTag{Name: strings.TrimSpace(parts[0]), Raw: raw}

	for _, opt := range parts[1:] {
		if opt = strings.TrimSpace(opt); opt != "" {
			tag.Options = append(tag.Options, opt)
		}
	}

	return tag
}

// Has reports whether opt was given.
func (t ColumnTag) Has(opt string) bool {
	return slices.Contains(t.Options, opt)
}

// Member is a field or method carrying a column marker.
type Member struct {
	Kind     MemberKind
	Name     string
	Tag      ColumnTag
	Owner    TypeID // struct declaring the member
	DeclPkg  string
	Exported bool
	// Path leads from the class to Owner through embedded fields (fields only).
	Path []PathSegment
	// Promoted is true when the field can be selected directly on the class.
	Promoted   bool
	ViaPointer bool
	// Type is the field type, or the single parameter type of a method.
	Type        types.Type
	Signature   *types.Signature
	PointerRecv bool
	Pos         token.Position
}

// Inherited reports whether the member is declared by an ancestor.
func (m *Member) Inherited(class TypeID) bool {
	return m.Owner != class
}

// Method is a method of the class's pointer method set.
type Method struct {
	Name        string
	DeclPkg     string
	Exported    bool
	Owner       TypeID
	Signature   *types.Signature
	PointerRecv bool
	ViaPointer  bool
	Pos         token.Position
}

// Constructor describes a New<T> function declared next to the class.
type Constructor struct {
	Name           string
	Params         int
	Variadic       bool
	ReturnsClass   bool // single result of type T or *T
	ReturnsPointer bool
	Exported       bool
	Pos            token.Position
}

// Marker is a rowmapper marker found on an element that cannot carry it.
type Marker struct {
	Directive string
	Element   string
	Class     TypeID // zero for package-level elements
	Pos       token.Position
}

// ClassInfo is everything the resolver needs about one marked type.
type ClassInfo struct {
	ID      TypeID
	PkgName string
	Dir     string
	Pos     token.Position
	Named   *types.Named
	// Kind is "struct" for resolvable classes, otherwise a description of
	// the underlying type.
	Kind        string
	Generic     bool
	Ancestors   []Ancestor // closest first
	Columns     []Member
	Setters     []Method
	Getters     []Method
	Constructor *Constructor
	Markers     []Marker
}

// IsStruct reports whether the class is a plain (non-generic) struct.
func (c *ClassInfo) IsStruct() bool {
	return c.Kind == "struct" && !c.Generic
}

// Setter returns the setter-shaped method called name.
func (c *ClassInfo) Setter(name string) (Method, bool) {
	return findMethod(c.Setters, name)
}

// Getter returns the getter-shaped method called name.
func (c *ClassInfo) Getter(name string) (Method, bool) {
	return findMethod(c.Getters, name)
}

// SetterNames lists setter-shaped method names, for remediation hints.
func (c *ClassInfo) SetterNames() []string {
	names := make([]string, 0, len(c.Setters))
	for _, m := range c.Setters {
		names = append(names, m.Name)
	}

	return names
}

func findMethod(methods []Method, name string) (Method, bool) {
	return common.FirstMatch(methods, func(m Method) bool { return m.Name == name })
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path    string
	Name    string
	Dir     string
	Classes []TypeID
}

// ClassGraph holds every marked class of one pass.
type ClassGraph struct {
	// Classes maps TypeID to ClassInfo for every marked type.
	Classes map[TypeID]*ClassInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
	// Markers are misplaced markers outside any class.
	Markers []Marker
}

// NewClassGraph creates an empty ClassGraph.
func NewClassGraph() *ClassGraph {
	return &ClassGraph{
		Classes:  make(map[TypeID]*ClassInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetClass returns the ClassInfo for a TypeID, or nil if not found.
func (g *ClassGraph) GetClass(id TypeID) *ClassInfo {
	return g.Classes[id]
}

// Sorted returns the classes ordered by package path and name.
func (g *ClassGraph) Sorted() []*ClassInfo {
	out := make([]*ClassInfo, 0, len(g.Classes))
	for _, c := range g.Classes {
		out = append(out, c)
	}

	slices.SortFunc(out, func(a, b *ClassInfo) int {
		return strings.Compare(a.ID.String(), b.ID.String())
	})

	return out
}
