package rowmap

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCursor_Positioning(t *testing.T) {
	t.Parallel()

	cur, err := NewMemoryCursor([]string{"id"}, []any{int64(1)}, []any{int64(2)})
	require.NoError(t, err)

	assert.False(t, cur.HasRow())
	assert.Equal(t, 2, cur.Count())

	require.True(t, cur.MoveToFirst())
	assert.True(t, cur.HasRow())

	id, err := cur.Int64(0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	require.True(t, cur.MoveToNext())
	id, err = cur.Int64(0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)

	assert.False(t, cur.MoveToNext())
	assert.False(t, cur.HasRow())
	assert.False(t, cur.MoveToNext())

	_, err = cur.Int64(0)
	assert.ErrorIs(t, err, ErrNoRow)
}

func TestMemoryCursor_RowWidth(t *testing.T) {
	t.Parallel()

	_, err := NewMemoryCursor([]string{"a", "b"}, []any{1})
	require.Error(t, err)
}

func TestMemoryCursor_ColumnIndex(t *testing.T) {
	t.Parallel()

	cur, err := NewMemoryCursor([]string{"id", "name"})
	require.NoError(t, err)

	assert.Equal(t, 1, cur.ColumnIndex("name"))
	assert.Equal(t, -1, cur.ColumnIndex("missing"))

	_, err = cur.ColumnIndexOrErr("missing")
	require.ErrorIs(t, err, ErrColumnNotFound)

	idx, err := ResolveColumn(cur, "missing", false)
	require.NoError(t, err)
	assert.Equal(t, -1, idx)

	_, err = ResolveColumn(cur, "missing", true)
	require.ErrorIs(t, err, ErrColumnNotFound)
}

func TestMemoryCursor_Coercion(t *testing.T) {
	t.Parallel()

	stamp := time.UnixMilli(1_700_000_000_123).UTC()
	cur, err := NewMemoryCursor(
		[]string{"flag", "big", "small", "real", "text", "blob", "null", "stamp"},
		[]any{true, int64(math.MaxInt32) + 1, int64(-40000), 2.5, []byte("hi"), "raw", nil, stamp},
	)
	require.NoError(t, err)
	require.True(t, cur.MoveToFirst())

	flag, err := cur.Int32(0)
	require.NoError(t, err)
	assert.Equal(t, int32(1), flag)

	_, err = cur.Int32(1)
	require.ErrorIs(t, err, ErrOutOfRange)

	_, err = cur.Int16(2)
	require.ErrorIs(t, err, ErrOutOfRange)

	_, err = cur.Int64(3)
	require.ErrorIs(t, err, ErrTypeMismatch)

	f, err := cur.Float32(3)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, f, 0)

	s, err := cur.String(4)
	require.NoError(t, err)
	assert.Equal(t, "hi", s)

	b, err := cur.Blob(5)
	require.NoError(t, err)
	assert.Equal(t, []byte("raw"), b)

	_, err = cur.Int64(4)
	require.ErrorIs(t, err, ErrTypeMismatch)

	n, err := cur.Int64(6)
	require.NoError(t, err)
	assert.Zero(t, n)

	blob, err := cur.Blob(6)
	require.NoError(t, err)
	assert.Nil(t, blob)

	ms, err := cur.Int64(7)
	require.NoError(t, err)
	assert.Equal(t, stamp.UnixMilli(), ms)

	_, err = cur.String(99)
	require.ErrorIs(t, err, ErrColumnIndex)
}

func TestMemoryCursor_CloseCounting(t *testing.T) {
	t.Parallel()

	cur := CursorOf()
	require.NoError(t, cur.Close())
	require.NoError(t, cur.Close())
	assert.Equal(t, 2, cur.Closes())
}

func TestCursorOf_UnionOfColumns(t *testing.T) {
	t.Parallel()

	first := NewValues()
	first.PutString("name", "ann")
	first.PutInt64("id", 1)

	second := NewValues()
	second.PutInt64("id", 2)
	second.PutInt32("age", 40)

	cur := CursorOf(first, second)
	assert.Equal(t, []string{"age", "id", "name"}, cur.Columns())
	assert.Equal(t, 2, cur.Count())

	require.True(t, cur.MoveToFirst())
	age, err := cur.Int32(0)
	require.NoError(t, err)
	assert.Zero(t, age)

	require.True(t, cur.MoveToNext())
	name, err := cur.String(2)
	require.NoError(t, err)
	assert.Empty(t, name)
}
