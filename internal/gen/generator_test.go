package gen

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rowmapper-generator/internal/analyze"
	"rowmapper-generator/internal/classify"
	"rowmapper-generator/internal/plan"
)

const peoplePkg = "example.com/people"

func fieldBinding(column, selector string, category classify.Category, strict bool) plan.Binding {
	return plan.Binding{
		Column:        column,
		Owner:         analyze.TypeID{PkgPath: peoplePkg, Name: "Customer"},
		Member:        selector,
		Kind:          plan.BindingField,
		Field:         &plan.FieldTarget{Name: selector, Selector: selector},
		Category:      category,
		Strict:        strict,
		Getter:        &plan.Getter{Expr: selector},
		BuilderMethod: selector,
	}
}

func setterBinding(column, member, setter string, category classify.Category, getter string) plan.Binding {
	b := plan.Binding{
		Column:        column,
		Owner:         analyze.TypeID{PkgPath: peoplePkg, Name: "Customer"},
		Member:        member,
		Kind:          plan.BindingAccessor,
		Accessor:      &plan.AccessorTarget{Method: setter, Field: member},
		Category:      category,
		Strict:        true,
		BuilderMethod: strings.TrimPrefix(setter, "Set"),
	}

	if getter != "" {
		b.Getter = &plan.Getter{Expr: getter}
	}

	return b
}

func customer(bindings ...plan.Binding) plan.ResolvedClass {
	return plan.ResolvedClass{
		ID:            analyze.TypeID{PkgPath: peoplePkg, Name: "Customer"},
		PkgName:       "people",
		Dir:           "/src/people",
		OutputPkgPath: peoplePkg,
		OutputPkgName: "people",
		OutputDir:     "/src/people",
		MapperName:    "CustomerMapper",
		BuilderName:   "CustomerValuesBuilder",
		Bindings:      bindings,
	}
}

func generateOne(t *testing.T, rc plan.ResolvedClass) (GeneratedFile, string) {
	t.Helper()

	files, err := NewGenerator(DefaultGeneratorConfig()).Generate(&plan.ResolvedPlan{Classes: []plan.ResolvedClass{rc}})
	require.NoError(t, err)
	require.Len(t, files, 1)

	_, err = parser.ParseFile(token.NewFileSet(), files[0].Filename, files[0].Content, parser.AllErrors)
	require.NoError(t, err, string(files[0].Content))

	return files[0], string(files[0].Content)
}

func TestGenerator_Generate_SamePackage(t *testing.T) {
	rc := customer(
		fieldBinding("active", "Active", classify.Bool, true),
		fieldBinding("email", "Email", classify.Text, true),
		setterBinding("lastname", "mLastname", "SetLastname", classify.Text, "Lastname()"),
	)

	file, content := generateOne(t, rc)

	assert.Equal(t, "customer_mapper.go", file.Filename)
	assert.Equal(t, "/src/people", file.Dir)
	assert.Equal(t, filepath.Join("/src/people", "customer_mapper.go"), file.Path())
	assert.Equal(t, rc.ID, file.Class)

	assert.True(t, strings.HasPrefix(content, Header+"\n"))
	assert.Contains(t, content, "package people")
	assert.Contains(t, content, `"rowmapper-generator/rowmap"`)
	assert.NotContains(t, content, `"time"`)
	assert.NotContains(t, content, `"example.com/people"`)

	assert.Contains(t, content, "var CustomerMapper mapperCustomer")
	assert.Contains(t, content, "func (m mapperCustomer) DecodeOne(cur rowmap.Cursor) (*Customer, error)")
	assert.Contains(t, content, "func (m mapperCustomer) DecodeOneWith(cur rowmap.Cursor, strict bool) (_ *Customer, err error)")
	assert.Contains(t, content, "func (m mapperCustomer) DecodeList(cur rowmap.Cursor) ([]*Customer, error)")
	assert.Contains(t, content, "func (m mapperCustomer) DecodeListWith(cur rowmap.Cursor, strict bool) (_ []*Customer, err error)")
	assert.Contains(t, content, "defer rowmap.Release(cur, &err)")
	assert.Contains(t, content, "return []*Customer{}, nil")
	assert.Contains(t, content, "items := make([]*Customer, 0, max(cur.Count(), 0))")
	assert.NotContains(t, content, "cur.Count() == 0")

	assert.Contains(t, content, "(idx [3]int, err error)")
	assert.Contains(t, content, `if idx[0], err = rowmap.ResolveColumn(cur, "active", strict); err != nil {`)
	assert.Contains(t, content, `if idx[2], err = rowmap.ResolveColumn(cur, "lastname", strict); err != nil {`)

	assert.Contains(t, content, "item := new(Customer)")
	assert.Contains(t, content, "v, err := cur.Int32(i)")
	assert.Contains(t, content, "item.Active = v != 0")
	assert.Contains(t, content, "item.Email = v")
	assert.Contains(t, content, "item.SetLastname(v)")
	assert.Contains(t, content, `return nil, rowmap.WrapDecode("email", err)`)
	assert.Contains(t, content, "// mLastname (text) from people.Customer")

	assert.Contains(t, content, "func (b *CustomerValuesBuilder) Active(value bool) *CustomerValuesBuilder")
	assert.Contains(t, content, `b.values.PutBool("active", value)`)
	assert.Contains(t, content, "func (b *CustomerValuesBuilder) LastnameAsNull() *CustomerValuesBuilder")
	assert.Contains(t, content, `b.values.PutNull("lastname")`)
	assert.Contains(t, content, "func (b *CustomerValuesBuilder) Build() rowmap.Values")

	assert.Contains(t, content, "b.Active(item.Active)")
	assert.Contains(t, content, "b.Lastname(item.Lastname())")
}

func TestGenerator_Generate_Categories(t *testing.T) {
	tests := []struct {
		category classify.Category
		reader   string
		assign   string
		param    string
		put      string
	}{
		{classify.Int32, "Int32", "item.Value = v", "int32", `PutInt32("value", value)`},
		{classify.Int64, "Int64", "item.Value = v", "int64", `PutInt64("value", value)`},
		{classify.Int16, "Int16", "item.Value = v", "int16", `PutInt16("value", value)`},
		{classify.Float32, "Float32", "item.Value = v", "float32", `PutFloat32("value", value)`},
		{classify.Float64, "Float64", "item.Value = v", "float64", `PutFloat64("value", value)`},
		{classify.Bool, "Int32", "item.Value = v != 0", "bool", `PutBool("value", value)`},
		{classify.Bytes, "Blob", "item.Value = v", "[]byte", `PutBlob("value", value)`},
		{classify.Text, "String", "item.Value = v", "string", `PutString("value", value)`},
		{classify.Timestamp, "Int64", "item.Value = time.UnixMilli(v).UTC()", "time.Time", `PutInt64("value", value.UnixMilli())`},
	}

	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			_, content := generateOne(t, customer(fieldBinding("value", "Value", tt.category, true)))

			assert.Contains(t, content, "cur."+tt.reader+"(i)")
			assert.Contains(t, content, tt.assign)
			assert.Contains(t, content, "Value(value "+tt.param+")")
			assert.Contains(t, content, tt.put)

			if tt.category == classify.Timestamp {
				assert.Contains(t, content, "import (\n\t\"time\"\n\n\t\"rowmapper-generator/rowmap\"\n)")
			} else {
				assert.NotContains(t, content, `"time"`)
			}
		})
	}
}

func TestGenerator_Generate_OptionalColumn(t *testing.T) {
	_, content := generateOne(t, customer(
		fieldBinding("email", "Email", classify.Text, true),
		fieldBinding("nickname", "Nickname", classify.Text, false),
	))

	assert.Contains(t, content, `rowmap.ResolveColumn(cur, "email", strict)`)
	assert.Contains(t, content, `rowmap.ResolveColumn(cur, "nickname", false)`)
}

func TestGenerator_Generate_SeparatePackage(t *testing.T) {
	rc := customer(
		setterBinding("firstname", "firstname", "SetFirstname", classify.Text, ""),
		fieldBinding("id", "ID", classify.Int64, true),
	)
	rc.OutputPkgPath = "example.com/people/mappers"
	rc.OutputPkgName = "mappers"
	rc.OutputDir = "/src/people/mappers"
	rc.Constructor = plan.Constructor{Func: "NewCustomer", ReturnsPointer: true}

	file, content := generateOne(t, rc)

	assert.Equal(t, "/src/people/mappers", file.Dir)
	assert.Equal(t, "example.com/people/mappers", file.PkgPath)
	assert.Contains(t, content, "package mappers")
	assert.Contains(t, content, "import (\n\t\"example.com/people\"\n\t\"rowmapper-generator/rowmap\"\n)")
	assert.Contains(t, content, "(*people.Customer, error)")
	assert.Contains(t, content, "item := people.NewCustomer()")
	assert.Contains(t, content, "func (m mapperCustomer) Encode(item *people.Customer) rowmap.Values")
	assert.Contains(t, content, "b.ID(item.ID)")
	assert.NotContains(t, content, "b.Firstname(")
	assert.Contains(t, content, "func (b *CustomerValuesBuilder) Firstname(value string)")
}

func TestGenerator_Generate_ValueConstructor(t *testing.T) {
	rc := customer(fieldBinding("id", "ID", classify.Int64, true))
	rc.Constructor = plan.Constructor{Func: "NewCustomer"}

	_, content := generateOne(t, rc)

	assert.Contains(t, content, "obj := NewCustomer()\n\titem := &obj")
}

func TestGenerator_Generate_NoBindings(t *testing.T) {
	_, content := generateOne(t, customer())

	assert.Contains(t, content, "(idx [0]int, err error)")
	assert.Contains(t, content, "idx *[0]int")
	assert.Contains(t, content, "func (b *CustomerValuesBuilder) Build() rowmap.Values")
}

func TestGenerator_Generate_Filenames(t *testing.T) {
	first := customer()
	first.ID.Name = "OrderItem"
	first.MapperName = "OrderItemMapper"

	second := customer()
	second.ID.Name = "Order_Item"
	second.MapperName = "Order_ItemMapper"

	other := customer()
	other.ID.Name = "OrderItem"
	other.OutputDir = "/src/other"

	files, err := NewGenerator(DefaultGeneratorConfig()).Generate(&plan.ResolvedPlan{
		Classes: []plan.ResolvedClass{first, second, other},
	})
	require.NoError(t, err)
	require.Len(t, files, 3)

	assert.Equal(t, "order_item_mapper.go", files[0].Filename)
	assert.Equal(t, "order_item_2_mapper.go", files[1].Filename)
	assert.Equal(t, "order_item_mapper.go", files[2].Filename)
}

func TestGenerator_Generate_Deterministic(t *testing.T) {
	rc := customer(
		fieldBinding("a", "A", classify.Int32, true),
		fieldBinding("b", "B", classify.Timestamp, false),
		setterBinding("c", "c", "SetC", classify.Bytes, "C()"),
	)

	_, first := generateOne(t, rc)
	for range 5 {
		_, again := generateOne(t, rc)
		assert.Equal(t, first, again)
	}
}

func TestGenerator_NoComments(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.GenerateComments = false

	files, err := NewGenerator(cfg).Generate(&plan.ResolvedPlan{
		Classes: []plan.ResolvedClass{customer(fieldBinding("email", "Email", classify.Text, true))},
	})
	require.NoError(t, err)

	assert.NotContains(t, string(files[0].Content), "// Email (text)")
}

func TestCodeEmitter_UnknownCategoryPanics(t *testing.T) {
	b := fieldBinding("x", "X", classify.Category(0), true)

	assert.Panics(t, func() { NewCodeEmitter(false).DecodeStep(0, &b) })
	assert.Panics(t, func() { NewCodeEmitter(false).BuilderStep(&b) })
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()

	files := []GeneratedFile{
		{Filename: "a_mapper.go", Dir: filepath.Join(dir, "a"), Content: []byte("package a\n")},
		{Filename: "b_mapper.go", Dir: filepath.Join(dir, "b"), Content: []byte("package b\n")},
	}

	require.NoError(t, WriteFiles(files, ""))

	got, err := os.ReadFile(filepath.Join(dir, "a", "a_mapper.go"))
	require.NoError(t, err)
	assert.Equal(t, "package a\n", string(got))
	assert.FileExists(t, filepath.Join(dir, "b", "b_mapper.go"))

	override := filepath.Join(dir, "flat")
	require.NoError(t, WriteFiles(files, override))
	assert.FileExists(t, filepath.Join(override, "a_mapper.go"))
	assert.FileExists(t, filepath.Join(override, "b_mapper.go"))

	require.Error(t, WriteFiles([]GeneratedFile{{Filename: "x.go"}}, ""))
}

func TestWriteDebugUnformatted(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, writeDebugUnformatted(dir, "customer_mapper.go", []byte("broken {")))
	assert.FileExists(t, filepath.Join(dir, "customer_mapper.go.unformatted"))
	require.NoError(t, writeDebugUnformatted("", "x.go", nil))
}
