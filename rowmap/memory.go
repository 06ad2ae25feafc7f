package rowmap

import (
	"fmt"
	"math"
	"slices"
	"time"
)

// MemoryCursor is a Cursor over rows held in memory.
// It starts positioned before the first row.
type MemoryCursor struct {
	columns []string
	rows    [][]any
	pos     int
	closes  int
}

// NewMemoryCursor creates a cursor over rows. Every row must have one value per column.
func NewMemoryCursor(columns []string, rows ...[]any) (*MemoryCursor, error) {
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, want %d", i, len(row), len(columns))
		}
	}

	return &MemoryCursor{
		columns: slices.Clone(columns),
		rows:    rows,
		pos:     -1,
	}, nil
}

// CursorOf builds a cursor with one row per bag. The column set is the sorted
// union of all staged columns; a column missing from a bag reads as NULL.
func CursorOf(bags ...Values) *MemoryCursor {
	seen := make(map[string]struct{})

	var columns []string

	for _, bag := range bags {
		for column := range bag {
			if _, ok := seen[column]; ok {
				continue
			}

			seen[column] = struct{}{}
			columns = append(columns, column)
		}
	}

	slices.Sort(columns)

	rows := make([][]any, 0, len(bags))
	for _, bag := range bags {
		row := make([]any, len(columns))
		for i, column := range columns {
			row[i] = bag[column]
		}

		rows = append(rows, row)
	}

	return &MemoryCursor{columns: columns, rows: rows, pos: -1}
}

func (c *MemoryCursor) HasRow() bool {
	return c.pos >= 0 && c.pos < len(c.rows)
}

func (c *MemoryCursor) MoveToFirst() bool {
	if len(c.rows) == 0 {
		return false
	}

	c.pos = 0

	return true
}

func (c *MemoryCursor) MoveToNext() bool {
	if c.pos >= len(c.rows) {
		return false
	}

	c.pos++

	return c.pos < len(c.rows)
}

func (c *MemoryCursor) Count() int {
	return len(c.rows)
}

// Close never fails; it only counts invocations.
func (c *MemoryCursor) Close() error {
	c.closes++
	return nil
}

// Closes reports how many times Close was called.
func (c *MemoryCursor) Closes() int {
	return c.closes
}

// Columns returns the column names in index order.
func (c *MemoryCursor) Columns() []string {
	return slices.Clone(c.columns)
}

func (c *MemoryCursor) ColumnIndex(name string) int {
	return slices.Index(c.columns, name)
}

func (c *MemoryCursor) ColumnIndexOrErr(name string) (int, error) {
	idx := c.ColumnIndex(name)
	if idx < 0 {
		return -1, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
	}

	return idx, nil
}

func (c *MemoryCursor) value(i int) (any, error) {
	if !c.HasRow() {
		return nil, ErrNoRow
	}

	if i < 0 || i >= len(c.columns) {
		return nil, fmt.Errorf("%w: %d", ErrColumnIndex, i)
	}

	return c.rows[c.pos][i], nil
}

func (c *MemoryCursor) Int64(i int) (int64, error) {
	v, err := c.value(i)
	if err != nil {
		return 0, err
	}

	return toInt64(v)
}

func (c *MemoryCursor) Int32(i int) (int32, error) {
	n, err := c.Int64(i)
	if err != nil {
		return 0, err
	}

	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d does not fit int32", ErrOutOfRange, n)
	}

	return int32(n), nil
}

func (c *MemoryCursor) Int16(i int) (int16, error) {
	n, err := c.Int64(i)
	if err != nil {
		return 0, err
	}

	if n < math.MinInt16 || n > math.MaxInt16 {
		return 0, fmt.Errorf("%w: %d does not fit int16", ErrOutOfRange, n)
	}

	return int16(n), nil
}

func (c *MemoryCursor) Float64(i int) (float64, error) {
	v, err := c.value(i)
	if err != nil {
		return 0, err
	}

	switch x := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	}

	n, err := toInt64(v)
	if err != nil {
		return 0, err
	}

	return float64(n), nil
}

func (c *MemoryCursor) Float32(i int) (float32, error) {
	v, err := c.value(i)
	if err != nil {
		return 0, err
	}

	if x, ok := v.(float32); ok {
		return x, nil
	}

	f, err := c.Float64(i)
	if err != nil {
		return 0, err
	}

	if math.Abs(f) > math.MaxFloat32 && !math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %g does not fit float32", ErrOutOfRange, f)
	}

	return float32(f), nil
}

func (c *MemoryCursor) Blob(i int) ([]byte, error) {
	v, err := c.value(i)
	if err != nil {
		return nil, err
	}

	switch x := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return slices.Clone(x), nil
	case string:
		return []byte(x), nil
	default:
		return nil, fmt.Errorf("%w: %T is not a blob", ErrTypeMismatch, v)
	}
}

func (c *MemoryCursor) String(i int) (string, error) {
	v, err := c.value(i)
	if err != nil {
		return "", err
	}

	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	default:
		return "", fmt.Errorf("%w: %T is not text", ErrTypeMismatch, v)
	}
}

func toInt64(v any) (int64, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case int64:
		return x, nil
	case int:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d does not fit int64", ErrOutOfRange, x)
		}

		return int64(x), nil
	case bool:
		if x {
			return 1, nil
		}

		return 0, nil
	case time.Time:
		return x.UnixMilli(), nil
	case float64:
		return floatToInt64(x)
	case float32:
		return floatToInt64(float64(x))
	default:
		return 0, fmt.Errorf("%w: %T is not an integer", ErrTypeMismatch, v)
	}
}

func floatToInt64(f float64) (int64, error) {
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %g is not integral", ErrTypeMismatch, f)
	}

	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %g does not fit int64", ErrOutOfRange, f)
	}

	return int64(f), nil
}
