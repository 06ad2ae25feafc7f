package plan

import (
	"errors"
	"fmt"
	"go/token"
	"slices"
	"strings"

	"rowmapper-generator/internal/analyze"
	"rowmapper-generator/internal/diagnostic"
	"rowmapper-generator/internal/match"
)

// OptionOptional makes a binding lenient: a missing column is skipped even
// when the caller decodes strictly.
const OptionOptional = "optional"

// ResolutionConfig holds configuration for the resolution process.
type ResolutionConfig struct {
	// OutputPkgPath generates every mapper into this package.
	// Empty means next to each class.
	OutputPkgPath string
	// OutputPkgName is the package name used with OutputPkgPath.
	OutputPkgName string
	// OutputDir is the directory of OutputPkgPath.
	OutputDir string
	// MapperSuffix is appended to the class name to form the mapper name.
	MapperSuffix string
}

// DefaultConfig returns the default resolution configuration.
func DefaultConfig() ResolutionConfig {
	return ResolutionConfig{
		MapperSuffix: "Mapper",
	}
}

// Resolver turns scanned classes into validated bindings.
type Resolver struct {
	graph  *analyze.ClassGraph
	config ResolutionConfig
}

// NewResolver creates a new Resolver.
func NewResolver(graph *analyze.ClassGraph, config ResolutionConfig) *Resolver {
	if config.MapperSuffix == "" {
		config.MapperSuffix = DefaultConfig().MapperSuffix
	}

	return &Resolver{
		graph:  graph,
		config: config,
	}
}

// Resolve validates every class of the graph. Classes are processed in a
// stable order; a failing class is reported and skipped.
func (r *Resolver) Resolve() (*ResolvedPlan, error) {
	if r.graph == nil {
		return nil, errors.New("no class graph to resolve")
	}

	if r.config.OutputPkgPath != "" && r.config.OutputPkgName == "" {
		return nil, fmt.Errorf("output package %s has no name", r.config.OutputPkgPath)
	}

	plan := &ResolvedPlan{}

	for _, m := range r.graph.Markers {
		plan.Diagnostics.AddError(diagnostic.CodeNotFieldOrMethod, m.Pos, m.Class.Qualified(), "",
			fmt.Sprintf("//rowmapper:%s can only be placed on a struct field or method, found on %s",
				m.Directive, m.Element))
	}

	for _, class := range r.graph.Sorted() {
		rc, diags := r.resolveClass(class)
		plan.Diagnostics.Merge(diags)

		if diags.HasErrors() {
			continue
		}

		plan.Classes = append(plan.Classes, *rc)
	}

	r.checkMapperNames(plan)

	return plan, nil
}

// classResolution is the per-class working state.
type classResolution struct {
	class  *analyze.ClassInfo
	outPkg string
	diags  diagnostic.Diagnostics
	// byColumn remembers which member first claimed a column.
	byColumn map[string]*analyze.Member
}

func (c *classResolution) name() string {
	return c.class.ID.Qualified()
}

// reachable reports whether an identifier declared in pkg can be used from the
// output package.
func (c *classResolution) reachable(exported bool, pkg string) bool {
	return exported || pkg == c.outPkg
}

func (c *classResolution) errorf(code diagnostic.Code, pos token.Position, member, format string, args ...any) {
	c.diags.AddError(code, pos, c.name(), member, fmt.Sprintf(format, args...))
}

func (r *Resolver) resolveClass(class *analyze.ClassInfo) (*ResolvedClass, diagnostic.Diagnostics) {
	cr := &classResolution{
		class:    class,
		outPkg:   r.outputPkg(class),
		byColumn: make(map[string]*analyze.Member),
	}

	for _, m := range class.Markers {
		cr.errorf(diagnostic.CodeNotFieldOrMethod, m.Pos, "",
			"//rowmapper:%s can only be placed on a struct field (as a %q tag) or method, found on %s",
			m.Directive, analyze.DefaultTagKey, m.Element)
	}

	if !class.IsStruct() {
		reason := "is a " + class.Kind
		if class.Generic {
			reason = "is generic"
		}

		cr.errorf(diagnostic.CodeNotStruct, class.Pos, "",
			"%s %s and cannot be instantiated by a mapper; only non-generic struct types can be mappable",
			class.ID.Name, reason)

		return nil, cr.diags
	}

	rc := &ResolvedClass{
		ID:            class.ID,
		PkgName:       class.PkgName,
		Dir:           class.Dir,
		OutputPkgPath: cr.outPkg,
		OutputPkgName: class.PkgName,
		OutputDir:     class.Dir,
		MapperName:    class.ID.Name + r.config.MapperSuffix,
		BuilderName:   class.ID.Name + "ValuesBuilder",
	}

	if r.config.OutputPkgPath != "" {
		rc.OutputPkgName = r.config.OutputPkgName
		rc.OutputDir = r.config.OutputDir
	}

	for _, a := range class.Ancestors {
		rc.Ancestors = append(rc.Ancestors, a.ID)
	}

	rc.Constructor = cr.resolveConstructor()

	for i := range class.Columns {
		m := &class.Columns[i]

		b, ok := cr.resolveMember(m)
		if !ok {
			continue
		}

		rc.Bindings = append(rc.Bindings, *b)
	}

	slices.SortFunc(rc.Bindings, func(a, b Binding) int {
		return strings.Compare(a.Column, b.Column)
	})

	assignBuilderMethods(rc.Bindings)

	return rc, cr.diags
}

func (r *Resolver) outputPkg(class *analyze.ClassInfo) string {
	if r.config.OutputPkgPath != "" {
		return r.config.OutputPkgPath
	}

	return class.ID.PkgPath
}

// resolveConstructor checks that the class can be created without arguments
// from the output package.
func (c *classResolution) resolveConstructor() Constructor {
	class := c.class
	exported := token.IsExported(class.ID.Name)

	if !c.reachable(exported, class.ID.PkgPath) {
		c.errorf(diagnostic.CodeNoZeroArgConstructor, class.Pos, "",
			"%s is unexported and cannot be instantiated from package %s; export the type or generate the mapper into %s",
			class.ID.Name, c.outPkg, class.ID.PkgPath)

		return Constructor{}
	}

	ctor := class.Constructor
	if ctor == nil || !ctor.ReturnsClass {
		return Constructor{}
	}

	if ctor.Params > 0 && !(ctor.Params == 1 && ctor.Variadic) {
		c.errorf(diagnostic.CodeNoZeroArgConstructor, ctor.Pos, "",
			"%s must provide a zero-argument constructor, but %s takes %d parameter(s)",
			class.ID.Name, ctor.Name, ctor.Params)

		return Constructor{}
	}

	if !c.reachable(ctor.Exported, class.ID.PkgPath) {
		c.errorf(diagnostic.CodeNoZeroArgConstructor, ctor.Pos, "",
			"constructor %s of %s is not reachable from package %s", ctor.Name, class.ID.Name, c.outPkg)

		return Constructor{}
	}

	return Constructor{Func: ctor.Name, ReturnsPointer: ctor.ReturnsPointer}
}

// checkMapperNames drops classes whose mapper would clash with another
// mapper generated into the same package.
func (r *Resolver) checkMapperNames(plan *ResolvedPlan) {
	type slot struct {
		pkg  string
		name string
	}

	seen := make(map[slot]analyze.TypeID)
	kept := plan.Classes[:0]

	for _, rc := range plan.Classes {
		key := slot{pkg: rc.OutputPkgPath, name: strings.ToLower(rc.MapperName)}
		if first, dup := seen[key]; dup {
			plan.Diagnostics.AddError(diagnostic.CodeMapperNameCollision, token.Position{}, rc.ID.Qualified(), "",
				fmt.Sprintf("mapper %s for %s collides with the mapper generated for %s in package %s",
					rc.MapperName, rc.ID, first, rc.OutputPkgPath))

			continue
		}

		seen[key] = rc.ID
		kept = append(kept, rc)
	}

	plan.Classes = kept
}

// assignBuilderMethods gives every binding a unique builder method name.
// Bindings must already be sorted so the outcome is stable.
func assignBuilderMethods(bindings []Binding) {
	taken := map[string]struct{}{"Build": {}}

	free := func(name string) bool {
		if name == "" || !token.IsIdentifier(name) {
			return false
		}

		_, a := taken[name]
		_, b := taken[name+"AsNull"]

		return !a && !b
	}

	claim := func(name string) {
		taken[name] = struct{}{}
		taken[name+"AsNull"] = struct{}{}
	}

	for i := range bindings {
		b := &bindings[i]

		base := builderBase(b)
		switch {
		case free(base):
		case free(match.ExportedIdent(b.Column)):
			base = match.ExportedIdent(b.Column)
		default:
			if !token.IsIdentifier(base) {
				base = "Column"
			}

			stem := newStem(base, nil)
			for base = stem.Next(); !free(base); {
				base = stem.Next()
			}
		}

		claim(base)
		b.BuilderMethod = base
	}
}

func builderBase(b *Binding) string {
	if b.Kind == BindingAccessor && b.Accessor.Field == "" {
		return match.PropertyName(b.Accessor.Method, true)
	}

	return match.PropertyName(b.Member, false)
}
