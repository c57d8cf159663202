package rebel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func newFakeDB(opts ...Option) (*DB, *fakeDriver) {
	driver := &fakeDriver{
		columns: []string{"id", "name"},
		rows: [][]any{
			{int64(1), "New York"},
			{int64(2), "Washington"},
			{int64(3), "Los Angeles"},
		},
	}
	return New(driver, opts...), driver
}

func TestNewDoesNotConnect(t *testing.T) {
	_, driver := newFakeDB()

	require.Zero(t, driver.connects)
}

func TestConnectsOnce(t *testing.T) {
	db, driver := newFakeDB()
	ctx := context.Background()

	_, err := db.Query(ctx, "SELECT * FROM cities")
	require.NoError(t, err)
	require.NoError(t, db.Execute(ctx, "DELETE FROM cities"))
	require.NoError(t, db.StartTransaction(ctx))
	require.NoError(t, db.Commit(ctx))
	_, _, err = db.QueryOne(ctx, "SELECT * FROM cities")
	require.NoError(t, err)

	require.Equal(t, 1, driver.connects)
	require.Equal(t, "connect", driver.calls[0])
}

func TestConnectErrorIsRetriedOnNextCall(t *testing.T) {
	db, driver := newFakeDB()
	ctx := context.Background()
	driver.connectErr = errors.New("connection refused")

	_, err := db.Query(ctx, "SELECT 1")
	require.ErrorIs(t, err, driver.connectErr)
	require.Empty(t, driver.queries)

	driver.connectErr = nil
	_, err = db.Query(ctx, "SELECT 1")
	require.NoError(t, err)
	require.Equal(t, 2, driver.connects)
}

func TestQueryReturnsRowsInOrder(t *testing.T) {
	db, driver := newFakeDB()

	rows, err := db.Query(context.Background(), "SELECT * FROM cities WHERE id > ?", 0)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, map[string]any{"id": int64(1), "name": "New York"}, rows[0].Map())
	require.Equal(t, map[string]any{"id": int64(3), "name": "Los Angeles"}, rows[2].Map())

	require.Equal(t, fakeQuery{query: "SELECT * FROM cities WHERE id > ?", args: []any{0}}, driver.lastQuery())
	require.True(t, driver.cursors[0].closed)
}

func TestQueryWithoutRowsReturnsEmptySlice(t *testing.T) {
	db, driver := newFakeDB()
	driver.rows = nil

	rows, err := db.Query(context.Background(), "SELECT * FROM users")
	require.NoError(t, err)
	require.NotNil(t, rows)
	require.Empty(t, rows)
}

func TestQueryBindsNamedArguments(t *testing.T) {
	db, driver := newFakeDB()

	_, err := db.Query(context.Background(), "SELECT * FROM cities WHERE name = :name OR alias = :name",
		Named{"name": "Los Angeles"})
	require.NoError(t, err)
	require.Equal(t, fakeQuery{
		query: "SELECT * FROM cities WHERE name = ? OR alias = ?",
		args:  []any{"Los Angeles", "Los Angeles"},
	}, driver.lastQuery())
}

func TestQueryRejectsMixedArguments(t *testing.T) {
	db, driver := newFakeDB()

	_, err := db.Query(context.Background(), "SELECT * FROM cities WHERE id = ? AND name = :name",
		1, Named{"name": "New York"})
	require.ErrorIs(t, err, ErrMixedArguments)
	require.Empty(t, driver.queries)
}

func TestQueryPropagatesDriverErrorsUnchanged(t *testing.T) {
	db, driver := newFakeDB()
	driver.queryErr = errors.New("syntax error at or near \"SELEC\"")

	_, err := db.Query(context.Background(), "SELEC 1")
	require.Equal(t, driver.queryErr, err)
}

func TestQueryReturnsCursorCloseError(t *testing.T) {
	db, driver := newFakeDB()
	driver.closeErr = errors.New("close failed")

	_, err := db.Query(context.Background(), "SELECT 1")
	require.ErrorIs(t, err, driver.closeErr)
}

func TestQueryOne(t *testing.T) {
	db, driver := newFakeDB()
	ctx := context.Background()

	row, ok, err := db.QueryOne(ctx, "SELECT * FROM cities")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, map[string]any{"id": int64(1), "name": "New York"}, row.Map())

	driver.rows = nil
	row, ok, err = db.QueryOne(ctx, "SELECT * FROM cities WHERE id = ?", 42)
	require.NoError(t, err)
	require.False(t, ok)
	require.Zero(t, row.Len())
}

func TestQueryValue(t *testing.T) {
	db, driver := newFakeDB()
	ctx := context.Background()

	value, ok, err := db.QueryValue(ctx, "SELECT id, name FROM cities")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(1), value)

	driver.rows = nil
	value, ok, err = db.QueryValue(ctx, "SELECT id FROM cities WHERE id = ?", 42)
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, value)
}

func TestQueryValueOfNullColumn(t *testing.T) {
	db, driver := newFakeDB()
	driver.columns = []string{"email"}
	driver.rows = [][]any{{nil}}

	value, ok, err := db.QueryValue(context.Background(), "SELECT email FROM users")
	require.NoError(t, err)
	require.True(t, ok)
	require.Nil(t, value)
}

func TestQueryValues(t *testing.T) {
	db, driver := newFakeDB()
	driver.columns = []string{"name", "id"}
	driver.rows = [][]any{
		{"New York", int64(1)},
		{"Washington", int64(2)},
	}

	values, err := db.QueryValues(context.Background(), "SELECT name, id FROM cities")
	require.NoError(t, err)
	require.Equal(t, []any{"New York", "Washington"}, values)
}

func TestQueryValuesPropagatesErrors(t *testing.T) {
	db, driver := newFakeDB()
	driver.queryErr = errors.New("boom")

	values, err := db.QueryValues(context.Background(), "SELECT name FROM cities")
	require.ErrorIs(t, err, driver.queryErr)
	require.Nil(t, values)
}

func TestExecute(t *testing.T) {
	db, driver := newFakeDB()

	err := db.Execute(context.Background(), "INSERT INTO users (id, email) VALUES (:id, :email)",
		Named{"id": 1, "email": "foo@bar.com"})
	require.NoError(t, err)
	require.Equal(t, fakeQuery{
		query: "INSERT INTO users (id, email) VALUES (?, ?)",
		args:  []any{1, "foo@bar.com"},
	}, driver.lastQuery())
	require.True(t, driver.cursors[0].closed)
}

func TestExecuteErrors(t *testing.T) {
	t.Run("mixed arguments", func(t *testing.T) {
		db, driver := newFakeDB()

		err := db.Execute(context.Background(), "INSERT INTO users (id, email) VALUES (?, :email)",
			1, Named{"email": "foo@bar.com"})
		require.ErrorIs(t, err, ErrMixedArguments)
		require.Empty(t, driver.queries)
	})

	t.Run("driver error", func(t *testing.T) {
		db, driver := newFakeDB()
		driver.queryErr = errors.New("UNIQUE constraint failed: users.id")

		err := db.Execute(context.Background(), "INSERT INTO users (id) VALUES (?)", 1)
		require.Equal(t, driver.queryErr, err)
	})

	t.Run("close error", func(t *testing.T) {
		db, driver := newFakeDB()
		driver.closeErr = errors.New("close failed")

		err := db.Execute(context.Background(), "DELETE FROM users")
		require.ErrorIs(t, err, driver.closeErr)
	})
}

func TestDriverAccessor(t *testing.T) {
	db, driver := newFakeDB()

	require.Same(t, driver, db.Driver())
}
