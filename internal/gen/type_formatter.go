package gen

import (
	"path"
	"slices"
	"strconv"

	"rowmapper-generator/internal/plan"
)

// runtimePkgName is the package name the template refers to the runtime by.
const runtimePkgName = "rowmap"

// typeRef is a reference to a type with optional package qualifier.
type typeRef struct {
	Package string // Package alias (empty if same package)
	Name    string // Type name
}

// String returns the full type string (e.g., "people.Customer").
func (t typeRef) String() string {
	if t.Package == "" {
		return t.Name
	}

	return t.Package + "." + t.Name
}

// classRef returns how the mapper file refers to the class.
func classRef(rc *plan.ResolvedClass) typeRef {
	if rc.SamePackage() {
		return typeRef{Name: rc.ID.Name}
	}

	return typeRef{Package: rc.PkgName, Name: rc.ID.Name}
}

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

func (s importSpec) String() string {
	if s.Alias == "" {
		return strconv.Quote(s.Path)
	}

	return s.Alias + " " + strconv.Quote(s.Path)
}

// importSet collects the imports of one file, standard library first.
type importSet struct {
	std   map[string]importSpec
	other map[string]importSpec
}

func newImportSet() *importSet {
	return &importSet{
		std:   make(map[string]importSpec),
		other: make(map[string]importSpec),
	}
}

func (s *importSet) addStd(pkgPath string) {
	s.std[pkgPath] = importSpec{Path: pkgPath}
}

// add imports pkgPath under name. The alias is only spelled out when the name
// differs from the last path element.
func (s *importSet) add(pkgPath, name string) {
	if pkgPath == "" {
		return
	}

	spec := importSpec{Path: pkgPath}
	if name != "" && name != path.Base(pkgPath) {
		spec.Alias = name
	}

	s.other[pkgPath] = spec
}

func (s *importSet) lines() []string {
	var std, other []string

	for _, spec := range s.std {
		std = append(std, spec.String())
	}

	for _, spec := range s.other {
		other = append(other, spec.String())
	}

	slices.Sort(std)
	slices.Sort(other)

	if len(std) > 0 && len(other) > 0 {
		std = append(std, "")
	}

	return append(std, other...)
}
