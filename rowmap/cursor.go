package rowmap

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrColumnNotFound is returned when a strictly resolved column is absent.
	ErrColumnNotFound = errors.New("column not found")
	// ErrNoRow is returned when a value is read while the cursor has no current row.
	ErrNoRow = errors.New("cursor has no current row")
	// ErrColumnIndex is returned for a column index outside the row.
	ErrColumnIndex = errors.New("column index out of range")
	// ErrTypeMismatch is returned when a stored value cannot be read as the requested type.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrOutOfRange is returned when a stored number does not fit the requested type.
	ErrOutOfRange = errors.New("value out of range")
)

// Cursor is a forward-iterable handle over query result rows.
// Column readers take a zero-based column index.
type Cursor interface {
	// HasRow reports whether the cursor is positioned on a row.
	HasRow() bool
	// MoveToFirst positions the cursor on the first row.
	MoveToFirst() bool
	// MoveToNext advances to the next row.
	MoveToNext() bool
	// Count returns the number of rows.
	Count() int
	Close() error

	// ColumnIndex returns the index of the named column or -1.
	ColumnIndex(name string) int
	// ColumnIndexOrErr returns the index of the named column or ErrColumnNotFound.
	ColumnIndexOrErr(name string) (int, error)

	Int32(i int) (int32, error)
	Int64(i int) (int64, error)
	Int16(i int) (int16, error)
	Float32(i int) (float32, error)
	Float64(i int) (float64, error)
	Blob(i int) ([]byte, error)
	String(i int) (string, error)
}

// ResolveColumn returns the index of the named column. When strict is false a
// missing column yields -1 instead of an error.
func ResolveColumn(cur Cursor, name string, strict bool) (int, error) {
	if !strict {
		return cur.ColumnIndex(name), nil
	}

	idx, err := cur.ColumnIndexOrErr(name)
	if err != nil {
		return -1, fmt.Errorf("resolving column %q: %w", name, err)
	}

	return idx, nil
}

// DecodeError reports a column value that could not be decoded.
type DecodeError struct {
	Column string
	Err    error
}

// WrapDecode wraps err with the column it was raised for.
func WrapDecode(column string, err error) error {
	return &DecodeError{Column: column, Err: err}
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding column %q: %v", e.Column, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Release closes c and stores the close error into *errp unless an earlier
// error is already set. Generated decoders defer it right after taking a cursor.
func Release(c io.Closer, errp *error) {
	cerr := c.Close()
	if cerr != nil && *errp == nil {
		*errp = fmt.Errorf("closing cursor: %w", cerr)
	}
}
