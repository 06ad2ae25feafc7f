package rowmap

import (
	sq "github.com/Masterminds/squirrel"
)

// Insert starts an INSERT of values into table. Columns are emitted in sorted order.
func Insert(table string, values Values) sq.InsertBuilder {
	return sq.Insert(table).SetMap(values.Map())
}

// Update starts an UPDATE of table setting every staged column.
func Update(table string, values Values) sq.UpdateBuilder {
	b := sq.Update(table)
	for _, column := range values.Columns() {
		b = b.Set(column, values[column])
	}

	return b
}
