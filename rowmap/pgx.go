package rowmap

import (
	"fmt"

	"github.com/jackc/pgx/v5"
)

// FromPgxRows drains pgx rows into a MemoryCursor and closes them.
func FromPgxRows(rows pgx.Rows) (*MemoryCursor, error) {
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))

	for i, field := range fields {
		columns[i] = field.Name
	}

	var data [][]any

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(data), err)
		}

		data = append(data, values)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return NewMemoryCursor(columns, data...)
}
