package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/oagudo/rebel"
	"github.com/oagudo/rebel/internal/drivertest"
	"github.com/stretchr/testify/require"
)

func newDriver(t *testing.T) rebel.Driver {
	t.Helper()

	d := Memory()
	t.Cleanup(func() {
		_ = d.Close()
	})
	return d
}

func createTables(t *testing.T, db *rebel.DB) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, db.Execute(ctx, `
		CREATE TABLE IF NOT EXISTS cities (
			id INTEGER PRIMARY KEY,
			name VARCHAR(254)
		)
	`))
	require.NoError(t, db.Execute(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY,
			email VARCHAR(254)
		)
	`))
}

func clearTables(t *testing.T, db *rebel.DB) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, db.Execute(ctx, "DELETE FROM cities"))
	require.NoError(t, db.Execute(ctx, "DELETE FROM users"))
}

var suite = drivertest.Suite{
	NewDriver:    newDriver,
	CreateTables: createTables,
	ClearTables:  clearTables,
}

func TestSQLite(t *testing.T) {
	suite.Run(t)
}

func TestSelectLastInsertID(t *testing.T) {
	db := suite.Setup(t)
	ctx := context.Background()

	require.NoError(t, db.Execute(ctx, "INSERT INTO users (email) VALUES (?)", "foo@bar.com"))

	id, ok, err := db.QueryValue(ctx, "SELECT last_insert_rowid()")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(1), id)
}

func TestQueryPreservesInsertionOrder(t *testing.T) {
	db := suite.Setup(t)

	cities, err := db.Query(context.Background(), "SELECT * FROM cities")
	require.NoError(t, err)
	require.Len(t, cities, 3)

	want := []map[string]any{
		{"id": int64(1), "name": "New York"},
		{"id": int64(2), "name": "Washington"},
		{"id": int64(3), "name": "Los Angeles"},
	}
	for i, city := range cities {
		require.Equal(t, []string{"id", "name"}, city.Columns())
		require.Equal(t, want[i], city.Map())
	}
}

func TestBlobColumnsStayBytes(t *testing.T) {
	db := rebel.New(newDriver(t))
	ctx := context.Background()

	require.NoError(t, db.Execute(ctx, "CREATE TABLE files (name TEXT, content BLOB)"))
	require.NoError(t, db.Execute(ctx, "INSERT INTO files (name, content) VALUES (?, ?)", "a.txt", []byte("hello")))

	file, ok, err := db.QueryOne(ctx, "SELECT name, content FROM files")
	require.NoError(t, err)
	require.True(t, ok)

	name, _ := file.Get("name")
	content, _ := file.Get("content")
	require.Equal(t, "a.txt", name)
	require.Equal(t, []byte("hello"), content)
}

func TestMemoryDatabasesAreIsolated(t *testing.T) {
	ctx := context.Background()
	first := rebel.New(newDriver(t))
	second := rebel.New(newDriver(t))

	require.NoError(t, first.Execute(ctx, "CREATE TABLE t (v INTEGER)"))

	_, err := second.Query(ctx, "SELECT * FROM t")
	require.Error(t, err)
}

func TestMemoryDSNSharesDatabaseByName(t *testing.T) {
	ctx := context.Background()
	name := uuid.NewString()

	writer := New(MemoryDSN(name))
	reader := New(MemoryDSN(name))
	t.Cleanup(func() {
		_ = reader.Close()
		_ = writer.Close()
	})

	w := rebel.New(writer)
	require.NoError(t, w.Execute(ctx, "CREATE TABLE t (v INTEGER)"))
	require.NoError(t, w.Execute(ctx, "INSERT INTO t (v) VALUES (?)", 7))

	v, ok, err := rebel.New(reader).QueryValue(ctx, "SELECT v FROM t")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(7), v)
}

func TestFileDatabase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "rebel.db")

	d := New(path)
	db := rebel.New(d)
	require.NoError(t, db.Execute(ctx, "CREATE TABLE t (v TEXT)"))
	require.NoError(t, db.Transaction(ctx, func(ctx context.Context) error {
		return db.Execute(ctx, "INSERT INTO t (v) VALUES (:v)", rebel.Named{"v": "persisted"})
	}))
	require.NoError(t, d.Close())

	reopened := New(path)
	t.Cleanup(func() {
		_ = reopened.Close()
	})
	v, ok, err := rebel.New(reopened).QueryValue(ctx, "SELECT v FROM t")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "persisted", v)
}
