package rowmap

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestFromRows_DrainsAndCloses(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, name FROM customers").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(int64(1), "ann").
			AddRow(int64(2), nil)).
		RowsWillBeClosed()

	rows, err := db.Query("SELECT id, name FROM customers")
	require.NoError(t, err)

	cur, err := FromRows(rows)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, []string{"id", "name"}, cur.Columns())
	require.True(t, cur.MoveToFirst())

	name, err := cur.String(1)
	require.NoError(t, err)
	assert.Equal(t, "ann", name)

	require.True(t, cur.MoveToNext())
	name, err = cur.String(1)
	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestFromRows_RowError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id FROM customers").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).
			AddRow(int64(1)).
			RowError(0, assert.AnError))

	rows, err := db.Query("SELECT id FROM customers")
	require.NoError(t, err)

	_, err = FromRows(rows)
	require.ErrorIs(t, err, assert.AnError)
}

func TestSQLite_InsertAndRead(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE notes (id INTEGER, body TEXT, pinned INTEGER, payload BLOB)`)
	require.NoError(t, err)

	v := NewValues()
	v.PutInt64("id", 7)
	v.PutString("body", "hello")
	v.PutBool("pinned", true)
	v.PutNull("payload")

	_, err = Insert("notes", v).RunWith(db).Exec()
	require.NoError(t, err)

	rows, err := db.Query(`SELECT id, body, pinned, payload FROM notes`)
	require.NoError(t, err)

	cur, err := FromRows(rows)
	require.NoError(t, err)
	require.True(t, cur.MoveToFirst())

	id, err := cur.Int64(cur.ColumnIndex("id"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	pinned, err := cur.Int32(cur.ColumnIndex("pinned"))
	require.NoError(t, err)
	assert.Equal(t, int32(1), pinned)

	payload, err := cur.Blob(cur.ColumnIndex("payload"))
	require.NoError(t, err)
	assert.Nil(t, payload)
}
