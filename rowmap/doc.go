// Package rowmap is the runtime support library used by generated row mappers.
//
// It defines the row Cursor consumed by generated decoders, the Values bag
// produced by generated encoders, and adapters that turn database/sql and pgx
// result sets into cursors.
//
// Key types:
//   - Cursor: forward-iterable rows with indexed, typed column access
//   - Values: column-keyed value bag for inserts and updates
//   - MemoryCursor: in-memory Cursor with value coercion
package rowmap
