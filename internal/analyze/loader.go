package analyze

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// syntaxMode is used to read doc comments of packages that were only seen
// through export data.
const syntaxMode = packages.NeedName | packages.NeedFiles | packages.NeedSyntax

// DefaultTagKey is the struct tag key binding a field to a column.
const DefaultTagKey = "column"

// Config controls package loading.
type Config struct {
	// TagKey is the struct tag key read from fields.
	TagKey string
	// Dir is the directory packages are resolved from ("" = current).
	Dir string
}

// DefaultConfig returns the default loading configuration.
func DefaultConfig() Config {
	return Config{TagKey: DefaultTagKey}
}

type methodKey struct {
	Recv   string
	Method string
}

// Analyzer loads Go packages and collects marked classes.
type Analyzer struct {
	config Config
	fset   *token.FileSet
	graph  *ClassGraph
	// directives indexes //rowmapper:column methods by package path.
	directives map[string]map[methodKey]Directive
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(config Config) *Analyzer {
	if config.TagKey == "" {
		config.TagKey = DefaultTagKey
	}

	return &Analyzer{
		config:     config,
		fset:       token.NewFileSet(),
		graph:      NewClassGraph(),
		directives: make(map[string]map[methodKey]Directive),
	}
}

// LoadPackages loads the specified packages and collects their marked classes.
// Patterns are standard Go package patterns (e.g., "./model", "rowmapper-generator/examples/people").
func (a *Analyzer) LoadPackages(patterns ...string) (*ClassGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.config.Dir,
		Fset: a.fset,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages matched %v", patterns)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	for _, pkg := range pkgs {
		a.indexDirectives(pkg.PkgPath, pkg.Syntax)
	}

	for _, pkg := range pkgs {
		if err := a.processPackage(pkg); err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
	}

	return a.graph, nil
}

// Graph returns the current class graph.
func (a *Analyzer) Graph() *ClassGraph {
	return a.graph
}

// Fset returns the file set positions are reported against.
func (a *Analyzer) Fset() *token.FileSet {
	return a.fset
}

func (a *Analyzer) indexDirectives(pkgPath string, files []*ast.File) {
	index := make(map[methodKey]Directive)

	for _, file := range files {
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv == nil || len(fn.Recv.List) == 0 {
				continue
			}

			if d, ok := findDirective(directives(fn.Doc), DirectiveColumn); ok {
				key := methodKey{Recv: receiverName(fn.Recv.List[0].Type), Method: fn.Name.Name}
				index[key] = d
			}
		}
	}

	a.directives[pkgPath] = index
}

// methodDirective returns the column directive on a method, parsing the
// owner's package on first use when it was not part of the load.
func (a *Analyzer) methodDirective(owner TypeID, method string) (Directive, bool) {
	if owner.PkgPath == "" {
		return Directive{}, false
	}

	index, ok := a.directives[owner.PkgPath]
	if !ok {
		a.loadSyntax(owner.PkgPath)
		index = a.directives[owner.PkgPath]
	}

	d, ok := index[methodKey{Recv: owner.Name, Method: method}]

	return d, ok
}

func (a *Analyzer) loadSyntax(pkgPath string) {
	// Mark as visited first so a failing load is not retried.
	a.directives[pkgPath] = nil

	cfg := &packages.Config{
		Mode: syntaxMode,
		Dir:  a.config.Dir,
		Fset: token.NewFileSet(),
	}

	pkgs, err := packages.Load(cfg, pkgPath)
	if err != nil || len(pkgs) != 1 {
		return
	}

	a.indexDirectives(pkgPath, pkgs[0].Syntax)
}

// processPackage collects marked classes and misplaced markers of a package.
func (a *Analyzer) processPackage(pkg *packages.Package) error {
	if pkg.Types == nil || pkg.TypesInfo == nil {
		return errors.New("package has no type information")
	}

	pkgInfo := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	if len(pkg.GoFiles) > 0 {
		pkgInfo.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				a.processGenDecl(pkg, pkgInfo, d)
			case *ast.FuncDecl:
				a.processFuncDecl(d)
			}
		}
	}

	a.graph.Packages[pkg.PkgPath] = pkgInfo

	return nil
}

func (a *Analyzer) processGenDecl(pkg *packages.Package, pkgInfo *PackageInfo, decl *ast.GenDecl) {
	for _, spec := range decl.Specs {
		doc := specDoc(spec)
		if doc == nil && len(decl.Specs) == 1 {
			doc = decl.Doc
		}

		dirs := directives(doc)

		switch s := spec.(type) {
		case *ast.TypeSpec:
			obj, ok := pkg.TypesInfo.Defs[s.Name].(*types.TypeName)
			if !ok {
				continue
			}

			if _, ok := findDirective(dirs, DirectiveMappable); !ok {
				a.misplaced(dirs, "type "+s.Name.Name, TypeID{})
				continue
			}

			class := a.buildClass(pkgInfo, obj, s)
			if d, ok := findDirective(dirs, DirectiveColumn); ok {
				class.Markers = append(class.Markers, a.marker(d, "type "+s.Name.Name, class.ID))
			}

			a.graph.Classes[class.ID] = class
			pkgInfo.Classes = append(pkgInfo.Classes, class.ID)

		case *ast.ValueSpec:
			kind := "var"
			if decl.Tok == token.CONST {
				kind = "const"
			}

			for _, name := range s.Names {
				a.misplaced(dirs, kind+" "+name.Name, TypeID{})
			}
		}
	}
}

func (a *Analyzer) processFuncDecl(fn *ast.FuncDecl) {
	dirs := directives(fn.Doc)
	if len(dirs) == 0 {
		return
	}

	if fn.Recv == nil {
		a.misplaced(dirs, "func "+fn.Name.Name, TypeID{})
		return
	}

	// Column markers on methods are valid; a class marker is not.
	if d, ok := findDirective(dirs, DirectiveMappable); ok {
		element := "method " + receiverName(fn.Recv.List[0].Type) + "." + fn.Name.Name
		a.graph.Markers = append(a.graph.Markers, a.marker(d, element, TypeID{}))
	}
}

func (a *Analyzer) misplaced(dirs []Directive, element string, class TypeID) {
	for _, d := range dirs {
		if d.Name != DirectiveMappable && d.Name != DirectiveColumn {
			continue
		}

		a.graph.Markers = append(a.graph.Markers, a.marker(d, element, class))
	}
}

func (a *Analyzer) marker(d Directive, element string, class TypeID) Marker {
	return Marker{
		Directive: d.Name,
		Element:   element,
		Class:     class,
		Pos:       a.fset.Position(d.Pos),
	}
}

func specDoc(spec ast.Spec) *ast.CommentGroup {
	switch s := spec.(type) {
	case *ast.TypeSpec:
		return s.Doc
	case *ast.ValueSpec:
		return s.Doc
	default:
		return nil
	}
}
