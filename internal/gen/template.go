package gen

import "text/template"

// Template for the mapper file

var mapperTemplate = template.Must(template.New("mapper").Parse(Header + `

package {{.PackageName}}

import (
{{range .Imports}}{{if .}}	{{.}}
{{else}}
{{end}}{{end}})

// {{.MapperVar}} decodes {{.ClassName}} rows and encodes {{.ClassName}} column values.
var {{.MapperVar}} {{.MapperType}}

type {{.MapperType}} struct{}

// DecodeOne decodes the first row of cur and closes it. Every strict column must exist.
func (m {{.MapperType}}) DecodeOne(cur rowmap.Cursor) (*{{.Class}}, error) {
	return m.DecodeOneWith(cur, true)
}

// DecodeOneWith decodes the first row of cur and closes it. It returns nil when
// there is no row. With strict unset, missing columns are skipped.
func (m {{.MapperType}}) DecodeOneWith(cur rowmap.Cursor, strict bool) (_ *{{.Class}}, err error) {
	if cur == nil {
		return nil, nil
	}

	defer rowmap.Release(cur, &err)

	if !cur.MoveToFirst() {
		return nil, nil
	}

	idx, err := m.columnIndexes(cur, strict)
	if err != nil {
		return nil, err
	}

	return m.decodeRow(cur, &idx)
}

// DecodeList decodes every row of cur and closes it. Every strict column must exist.
func (m {{.MapperType}}) DecodeList(cur rowmap.Cursor) ([]*{{.Class}}, error) {
	return m.DecodeListWith(cur, true)
}

// DecodeListWith decodes every row of cur and closes it. The result is empty,
// never nil, when there are no rows.
func (m {{.MapperType}}) DecodeListWith(cur rowmap.Cursor, strict bool) (_ []*{{.Class}}, err error) {
	if cur == nil {
		return []*{{.Class}}{}, nil
	}

	defer rowmap.Release(cur, &err)

	if !cur.MoveToFirst() {
		return []*{{.Class}}{}, nil
	}

	idx, err := m.columnIndexes(cur, strict)
	if err != nil {
		return nil, err
	}

	items := make([]*{{.Class}}, 0, max(cur.Count(), 0))

	for {
		item, err := m.decodeRow(cur, &idx)
		if err != nil {
			return nil, err
		}

		items = append(items, item)

		if !cur.MoveToNext() {
			break
		}
	}

	return items, nil
}

func ({{.MapperType}}) columnIndexes(cur rowmap.Cursor, strict bool) (idx [{{.Columns}}]int, err error) {
{{range .Decode}}	if idx[{{.Index}}], err = rowmap.ResolveColumn(cur, {{.Column}}, {{if .Strict}}strict{{else}}false{{end}}); err != nil {
		return idx, err
	}

{{end}}	return idx, nil
}

func ({{.MapperType}}) decodeRow(cur rowmap.Cursor, idx *[{{.Columns}}]int) (*{{.Class}}, error) {
	{{.NewItem}}
{{range .Decode}}
{{if .Comment}}	// {{.Comment}}
{{end}}	if i := idx[{{.Index}}]; i >= 0 {
		v, err := cur.{{.Reader}}(i)
		if err != nil {
			return nil, rowmap.WrapDecode({{.Column}}, err)
		}

		{{.Assign}}
	}
{{end}}
	return item, nil
}

// Encode returns the column values of item. Columns without a getter are left out.
func (m {{.MapperType}}) Encode(item *{{.Class}}) rowmap.Values {
	b := m.NewValuesBuilder()
	if item == nil {
		return b.Build()
	}
{{range .Builders}}{{if .Getter}}
	b.{{.Method}}({{.Getter}}){{end}}{{end}}

	return b.Build()
}

// NewValuesBuilder returns an empty {{.Builder}}.
func ({{.MapperType}}) NewValuesBuilder() *{{.Builder}} {
	return &{{.Builder}}{values: rowmap.NewValues()}
}

// {{.Builder}} stages {{.ClassName}} column values for a write.
type {{.Builder}} struct {
	values rowmap.Values
}
{{range .Builders}}
// {{.Method}} stages column {{.Column}}.
func (b *{{$.Builder}}) {{.Method}}(value {{.ParamType}}) *{{$.Builder}} {
	b.values.{{.Put}}({{.Column}}, {{.Encode}})
	return b
}

// {{.Method}}AsNull stages NULL for column {{.Column}}.
func (b *{{$.Builder}}) {{.Method}}AsNull() *{{$.Builder}} {
	b.values.PutNull({{.Column}})
	return b
}
{{end}}
// Build returns the staged values.
func (b *{{.Builder}}) Build() rowmap.Values {
	return b.values
}
`))
