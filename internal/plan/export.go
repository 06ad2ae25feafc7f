package plan

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Manifest is a reviewable summary of the resolved bindings.
type Manifest struct {
	Version string          `yaml:"version"`
	Classes []ManifestClass `yaml:"classes"`
}

// ManifestClass summarizes one resolved class.
type ManifestClass struct {
	Type        string            `yaml:"type"`
	Mapper      string            `yaml:"mapper"`
	Package     string            `yaml:"package"`
	Constructor string            `yaml:"constructor,omitempty"`
	Ancestors   []string          `yaml:"ancestors,omitempty"`
	Bindings    []ManifestBinding `yaml:"bindings"`
}

// ManifestBinding summarizes one column binding.
type ManifestBinding struct {
	Column   string `yaml:"column"`
	Member   string `yaml:"member"`
	Kind     string `yaml:"kind"`
	Via      string `yaml:"via,omitempty"`
	Owner    string `yaml:"owner"`
	Category string `yaml:"category"`
	Strict   bool   `yaml:"strict"`
	Builder  string `yaml:"builder"`
	Encode   string `yaml:"encode,omitempty"`
}

// ExportManifest builds the manifest of a resolved plan.
func ExportManifest(plan *ResolvedPlan) *Manifest {
	m := &Manifest{
		Version: "1",
		Classes: []ManifestClass{},
	}

	for i := range plan.Classes {
		m.Classes = append(m.Classes, exportClass(&plan.Classes[i]))
	}

	return m
}

// ExportManifestYAML renders the manifest as YAML.
func ExportManifestYAML(plan *ResolvedPlan) ([]byte, error) {
	out, err := yaml.Marshal(ExportManifest(plan))
	if err != nil {
		return nil, fmt.Errorf("marshaling manifest: %w", err)
	}

	return out, nil
}

func exportClass(rc *ResolvedClass) ManifestClass {
	mc := ManifestClass{
		Type:        rc.ID.String(),
		Mapper:      rc.MapperName,
		Package:     rc.OutputPkgPath,
		Constructor: rc.Constructor.Func,
		Bindings:    []ManifestBinding{},
	}

	for _, a := range rc.Ancestors {
		mc.Ancestors = append(mc.Ancestors, a.String())
	}

	for _, b := range rc.Bindings {
		mb := ManifestBinding{
			Column:   b.Column,
			Member:   b.Member,
			Kind:     b.Kind.String(),
			Owner:    b.Owner.String(),
			Category: b.Category.String(),
			Strict:   b.Strict,
			Builder:  b.BuilderMethod,
		}

		switch b.Kind {
		case BindingField:
			mb.Via = b.Field.Selector
		case BindingAccessor:
			mb.Via = b.Accessor.Method
		}

		if b.Getter != nil {
			mb.Encode = b.Getter.Expr
		}

		mc.Bindings = append(mc.Bindings, mb)
	}

	return mc
}
