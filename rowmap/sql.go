package rowmap

import (
	"database/sql"
	"errors"
	"fmt"
)

// FromRows drains rows into a MemoryCursor and closes them.
func FromRows(rows *sql.Rows) (cur *MemoryCursor, err error) {
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", cerr)
		}
	}()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}

	var data [][]any

	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))

		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row %d: %w", len(data), err)
		}

		data = append(data, values)
	}

	if err := rows.Err(); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return NewMemoryCursor(columns, data...)
}
