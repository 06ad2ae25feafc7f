package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"rowmapper-generator/internal/plan"
)

// LockVersion is the only lock file version understood.
const LockVersion = "1"

// LoadFile loads and parses a lock file from the given path.
func LoadFile(path string) (*plan.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lock file %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// Parse parses YAML data into a manifest.
func Parse(data []byte) (*plan.Manifest, error) {
	var m plan.Manifest

	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse lock YAML: %w", err)
	}

	applyDefaults(&m)

	if m.Version != LockVersion {
		return nil, fmt.Errorf("unsupported lock version %q, want %q", m.Version, LockVersion)
	}

	return &m, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(m *plan.Manifest) {
	if m.Version == "" {
		m.Version = LockVersion
	}

	for i := range m.Classes {
		c := &m.Classes[i]
		if c.Package == "" {
			c.Package = pkgOf(c.Type)
		}
	}
}

// WriteFile writes the manifest of p to path.
func WriteFile(p *plan.ResolvedPlan, path string) error {
	data, err := plan.ExportManifestYAML(p)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write lock file %s: %w", path, err)
	}

	return nil
}
