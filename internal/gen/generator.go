package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"path/filepath"
	"strconv"

	"rowmapper-generator/internal/analyze"
	"rowmapper-generator/internal/match"
	"rowmapper-generator/internal/plan"
)

// DefaultRuntimePkg is the import path of the runtime the mappers are written against.
const DefaultRuntimePkg = "rowmapper-generator/rowmap"

// Header is the first line of every generated file.
const Header = "// Code generated by rowmapper-generator. DO NOT EDIT."

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// RuntimePkg is the import path of the rowmap runtime package.
	RuntimePkg string
	// FileSuffix is appended to the snake-cased class name.
	FileSuffix string
	// GenerateComments annotates every decode step with the member it writes.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		RuntimePkg:       DefaultRuntimePkg,
		FileSuffix:       "_mapper.go",
		GenerateComments: true,
	}
}

// Generator assembles one mapper file per resolved class.
type Generator struct {
	config  GeneratorConfig
	emitter *CodeEmitter
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	defaults := DefaultGeneratorConfig()
	if config.RuntimePkg == "" {
		config.RuntimePkg = defaults.RuntimePkg
	}

	if config.FileSuffix == "" {
		config.FileSuffix = defaults.FileSuffix
	}

	return &Generator{
		config:  config,
		emitter: NewCodeEmitter(config.GenerateComments),
	}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "customer_mapper.go").
	Filename string
	// Dir is the directory of the package the file belongs to.
	Dir string
	// PkgPath is the import path of that package.
	PkgPath string
	// Class is the type the mapper was generated for.
	Class analyze.TypeID
	// Content is the formatted Go source code.
	Content []byte
}

// Path returns where the file is written.
func (f *GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// Generate generates the mapper files of a resolved plan, in plan order.
func (g *Generator) Generate(p *plan.ResolvedPlan) ([]GeneratedFile, error) {
	files := make([]GeneratedFile, 0, len(p.Classes))
	names := make(map[string]struct{})

	for i := range p.Classes {
		rc := &p.Classes[i]

		file, err := g.generateClass(rc, names)
		if err != nil {
			return nil, fmt.Errorf("generating mapper for %s: %w", rc.ID, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

func (g *Generator) generateClass(rc *plan.ResolvedClass, names map[string]struct{}) (*GeneratedFile, error) {
	data := g.buildTemplateData(rc)
	data.Filename = g.filename(rc, names)

	var buf bytes.Buffer
	if err := mapperTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	file := &GeneratedFile{
		Filename: data.Filename,
		Dir:      rc.OutputDir,
		PkgPath:  rc.OutputPkgPath,
		Class:    rc.ID,
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: leave the raw output next to the target for inspection.
		_ = writeDebugUnformatted(rc.OutputDir, data.Filename, buf.Bytes())

		file.Content = buf.Bytes()

		return file, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	file.Content = formatted

	return file, nil
}

// filename picks <snake>_mapper.go, numbering it when two classes of one
// output directory snake-case to the same name.
func (g *Generator) filename(rc *plan.ResolvedClass, names map[string]struct{}) string {
	base := match.SnakeCase(rc.ID.Name)
	name := base + g.config.FileSuffix

	for n := 2; ; n++ {
		key := filepath.Join(rc.OutputDir, name)
		if _, taken := names[key]; !taken {
			names[key] = struct{}{}
			return name
		}

		name = base + "_" + strconv.Itoa(n) + g.config.FileSuffix
	}
}

// templateData holds all data needed for the mapper template.
type templateData struct {
	PackageName string
	Filename    string
	// Imports are rendered one per line; an empty entry separates groups.
	Imports    []string
	ClassName  string
	Class      string
	MapperVar  string
	MapperType string
	Builder    string
	NewItem    string
	Columns    int
	Decode     []decodeStep
	Builders   []builderStep
}

func (g *Generator) buildTemplateData(rc *plan.ResolvedClass) *templateData {
	ref := classRef(rc)

	data := &templateData{
		PackageName: rc.OutputPkgName,
		ClassName:   rc.ID.Name,
		Class:       ref.String(),
		MapperVar:   rc.MapperName,
		MapperType:  "mapper" + match.Capitalize(rc.ID.Name),
		Builder:     rc.BuilderName,
		NewItem:     newItem(rc, ref),
		Columns:     len(rc.Bindings),
	}

	for i := range rc.Bindings {
		b := &rc.Bindings[i]
		data.Decode = append(data.Decode, g.emitter.DecodeStep(i, b))
		data.Builders = append(data.Builders, g.emitter.BuilderStep(b))
	}

	imports := newImportSet()
	if needsTime(rc.Bindings) {
		imports.addStd("time")
	}

	imports.add(g.config.RuntimePkg, runtimePkgName)

	if !rc.SamePackage() {
		imports.add(rc.ID.PkgPath, rc.PkgName)
	}

	data.Imports = imports.lines()

	return data
}

// newItem is the statement creating the decoded item.
func newItem(rc *plan.ResolvedClass, ref typeRef) string {
	ctor := rc.Constructor
	if ctor.Func == "" {
		return "item := new(" + ref.String() + ")"
	}

	call := typeRef{Package: ref.Package, Name: ctor.Func}.String() + "()"
	if ctor.ReturnsPointer {
		return "item := " + call
	}

	return "obj := " + call + "\n\titem := &obj"
}
