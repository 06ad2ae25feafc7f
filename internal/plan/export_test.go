package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"rowmapper-generator/internal/analyze"
)

func TestExportManifest(t *testing.T) {
	owner := id(modelPkg, "Customer")
	base := id(modelPkg, "Entity")

	inherited := field(base, "ID", "id", tInt64)
	inherited.Path = []analyze.PathSegment{{Name: "Entity", Exported: true, DeclPkg: modelPkg}}

	c := class("Customer",
		field(owner, "mLastname", "lastname,optional", tString),
		inherited,
	)
	c.Ancestors = []analyze.Ancestor{{ID: base, Path: inherited.Path, Depth: 1}}
	c.Constructor = &analyze.Constructor{Name: "NewCustomer", ReturnsClass: true, ReturnsPointer: true, Exported: true}
	c.Setters = []analyze.Method{method(owner, "SetLastname", signature(tString))}

	p := resolve(t, separate(), c)
	m := ExportManifest(p)

	require.Len(t, m.Classes, 1)

	mc := m.Classes[0]
	assert.Equal(t, "example.com/model.Customer", mc.Type)
	assert.Equal(t, "CustomerMapper", mc.Mapper)
	assert.Equal(t, mapperPkg, mc.Package)
	assert.Equal(t, "NewCustomer", mc.Constructor)
	assert.Equal(t, []string{"example.com/model.Entity"}, mc.Ancestors)

	assert.Equal(t, []ManifestBinding{
		{
			Column: "id", Member: "ID", Kind: "field", Via: "ID", Owner: "example.com/model.Entity",
			Category: "int64", Strict: true, Builder: "ID", Encode: "ID",
		},
		{
			Column: "lastname", Member: "mLastname", Kind: "accessor", Via: "SetLastname", Owner: "example.com/model.Customer",
			Category: "text", Strict: false, Builder: "Lastname",
		},
	}, mc.Bindings)
}

func TestExportManifestYAML(t *testing.T) {
	owner := id(modelPkg, "Order")
	p := resolve(t, DefaultConfig(), class("Order", field(owner, "Total", "total", tFloat64)))

	out, err := ExportManifestYAML(p)
	require.NoError(t, err)

	var back Manifest
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, *ExportManifest(p), back)
	assert.Contains(t, string(out), "mapper: OrderMapper")
	assert.Contains(t, string(out), "category: float64")
}

func TestExportManifest_Empty(t *testing.T) {
	m := ExportManifest(&ResolvedPlan{})

	assert.Equal(t, "1", m.Version)
	assert.Empty(t, m.Classes)
	assert.NotNil(t, m.Classes)
}
