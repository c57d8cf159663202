package drivertest

import (
	"context"
	"testing"

	"github.com/oagudo/rebel"
	"github.com/stretchr/testify/require"
)

var builderTests = map[string]testFunc{
	"Query": func(t *testing.T, db *rebel.DB) {
		sql := db.SQL("SELECT id, name FROM cities")
		sql.Add("WHERE id > ?", 1)
		sql.Add("ORDER BY id")

		cities, err := sql.Query(context.Background())
		require.NoError(t, err)
		require.Equal(t, []Record{
			{"id": "2", "name": "Washington"},
			{"id": "3", "name": "Los Angeles"},
		}, Records(cities))
	},

	"QueryOne": func(t *testing.T, db *rebel.DB) {
		sql := db.SQL("SELECT id, name FROM cities")
		sql.Add("WHERE id = ?", 2)

		city, ok, err := sql.QueryOne(context.Background())
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, Record{"id": "2", "name": "Washington"}, ToRecord(city))
	},

	"QueryValue": func(t *testing.T, db *rebel.DB) {
		sql := db.SQL("SELECT name FROM cities")
		sql.Add("WHERE id = ?", 3)

		name, ok, err := sql.QueryValue(context.Background())
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "Los Angeles", name)
	},

	"QueryValues": func(t *testing.T, db *rebel.DB) {
		sql := db.SQL("SELECT name FROM cities")
		sql.Add("WHERE id > 0")
		sql.Add("ORDER BY id")

		names, err := sql.QueryValues(context.Background())
		require.NoError(t, err)
		require.Equal(t, []any{"New York", "Washington", "Los Angeles"}, names)

		names, err = sql.QueryValues(context.Background())
		require.NoError(t, err)
		require.Equal(t, []any{"New York", "Washington", "Los Angeles"}, names)
	},

	"Execute": func(t *testing.T, db *rebel.DB) {
		sql := db.SQL("INSERT INTO users (email)")
		err := sql.Add("values (?)", "foo@bar.com").Execute(context.Background())
		require.NoError(t, err)

		requireFirstUser(t, db, Record{"id": "1", "email": "foo@bar.com"})
	},

	"Back": func(t *testing.T, db *rebel.DB) {
		ctx := context.Background()
		sql := db.SQL("INSERT INTO users (email) VALUES")
		for _, email := range []string{"foo@bar.com", "bar@foo.com"} {
			sql.Add("(?)", email).Add(",")
		}
		sql.Back()
		require.NoError(t, sql.Execute(ctx))

		users, err := db.Query(ctx, "SELECT id, email FROM users ORDER BY id")
		require.NoError(t, err)
		require.Equal(t, []Record{
			{"id": "1", "email": "foo@bar.com"},
			{"id": "2", "email": "bar@foo.com"},
		}, Records(users))
	},

	"NamedArguments": func(t *testing.T, db *rebel.DB) {
		sql := db.SQL("SELECT id, name FROM cities")
		sql.Add("WHERE id = :id", rebel.Named{"id": 2})

		city, ok, err := sql.QueryOne(context.Background())
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, Record{"id": "2", "name": "Washington"}, ToRecord(city))
	},

	"RepeatedNamedArgumentsAcrossAddCalls": func(t *testing.T, db *rebel.DB) {
		ctx := context.Background()
		sql := db.SQL("INSERT INTO users (email) VALUES")
		for _, email := range []string{"foo@bar.com", "bar@foo.com"} {
			sql.Add("(:email)", rebel.Named{"email": email})
			sql.Add(",")
		}
		sql.Back()
		require.NoError(t, sql.Execute(ctx))

		users, err := db.Query(ctx, "SELECT id, email FROM users ORDER BY id")
		require.NoError(t, err)
		require.Equal(t, []Record{
			{"id": "1", "email": "foo@bar.com"},
			{"id": "2", "email": "bar@foo.com"},
		}, Records(users))
	},

	"CannotMixPositionalAndNamedArguments": func(t *testing.T, db *rebel.DB) {
		sql := db.SQL("SELECT * FROM cities")
		sql.Add("WHERE id = ?, name = :name", 1, rebel.Named{"name": "New York"})
		require.ErrorIs(t, sql.Err(), rebel.ErrMixedArguments)

		_, err := sql.Query(context.Background())
		require.ErrorIs(t, err, rebel.ErrMixedArguments)
	},
}
