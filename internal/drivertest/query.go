package drivertest

import (
	"context"
	"testing"

	"github.com/oagudo/rebel"
	"github.com/stretchr/testify/require"
)

var queryTests = map[string]testFunc{
	"QueryEmptyTableReturnsEmptySlice": func(t *testing.T, db *rebel.DB) {
		users, err := db.Query(context.Background(), "SELECT * FROM users")
		require.NoError(t, err)
		require.NotNil(t, users)
		require.Empty(t, users)
	},

	"QueryFilledTableReturnsRows": func(t *testing.T, db *rebel.DB) {
		cities, err := db.Query(context.Background(), "SELECT * FROM cities")
		require.NoError(t, err)
		require.Len(t, cities, 3)
	},

	"QueryOneReturnsRow": func(t *testing.T, db *rebel.DB) {
		city, ok, err := db.QueryOne(context.Background(), "SELECT id, name FROM cities WHERE id = ?", 1)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, []string{"id", "name"}, city.Columns())
		require.Equal(t, Record{"id": "1", "name": "New York"}, ToRecord(city))
	},

	"QueryOneWithoutRows": func(t *testing.T, db *rebel.DB) {
		_, ok, err := db.QueryOne(context.Background(), "SELECT * FROM cities WHERE id = ?", 42)
		require.NoError(t, err)
		require.False(t, ok)
	},

	"QueryValue": func(t *testing.T, db *rebel.DB) {
		name, ok, err := db.QueryValue(context.Background(), "SELECT name FROM cities WHERE id = ?", 1)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "New York", name)
	},

	"QueryValueWithoutRows": func(t *testing.T, db *rebel.DB) {
		name, ok, err := db.QueryValue(context.Background(), "SELECT name FROM cities WHERE id = ?", 42)
		require.NoError(t, err)
		require.False(t, ok)
		require.Nil(t, name)
	},

	"QueryValues": func(t *testing.T, db *rebel.DB) {
		names, err := db.QueryValues(context.Background(), "SELECT name FROM cities ORDER BY id")
		require.NoError(t, err)
		require.Equal(t, []any{"New York", "Washington", "Los Angeles"}, names)
	},

	"ExecuteStatementWithArguments": func(t *testing.T, db *rebel.DB) {
		err := db.Execute(context.Background(), `
			INSERT INTO users (id, email)
			VALUES (?, ?)
		`, 1, "foo@bar.com")
		require.NoError(t, err)

		requireFirstUser(t, db, Record{"id": "1", "email": "foo@bar.com"})
	},

	"ExecuteStatementWithNamedArguments": func(t *testing.T, db *rebel.DB) {
		err := db.Execute(context.Background(), `
			INSERT INTO users (id, email)
			VALUES (:id, :email)
		`, rebel.Named{"id": 1, "email": "foo@bar.com"})
		require.NoError(t, err)

		requireFirstUser(t, db, Record{"id": "1", "email": "foo@bar.com"})
	},

	"ExecuteStatementWithRepeatedNamedArguments": func(t *testing.T, db *rebel.DB) {
		ctx := context.Background()
		err := db.Execute(ctx, `
			INSERT INTO cities (name)
			VALUES (:name), (:name)
		`, rebel.Named{"name": "California"})
		require.NoError(t, err)

		cities, err := db.Query(ctx, `
			SELECT id, name FROM cities
			WHERE name = :name ORDER BY id
		`, rebel.Named{"name": "California"})
		require.NoError(t, err)
		require.Equal(t, []Record{
			{"id": "4", "name": "California"},
			{"id": "5", "name": "California"},
		}, Records(cities))
	},

	"QueryStatementWithNamedArguments": func(t *testing.T, db *rebel.DB) {
		cities, err := db.Query(context.Background(), "SELECT id, name FROM cities WHERE name = :name",
			rebel.Named{"name": "Los Angeles"})
		require.NoError(t, err)
		require.Equal(t, []Record{{"id": "3", "name": "Los Angeles"}}, Records(cities))
	},

	"QueryOneWithNamedArguments": func(t *testing.T, db *rebel.DB) {
		city, ok, err := db.QueryOne(context.Background(), "SELECT id, name FROM cities WHERE name = :name",
			rebel.Named{"name": "Los Angeles"})
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, Record{"id": "3", "name": "Los Angeles"}, ToRecord(city))
	},

	"QueryValueWithNamedArguments": func(t *testing.T, db *rebel.DB) {
		name, ok, err := db.QueryValue(context.Background(), "SELECT name FROM cities WHERE id = :id",
			rebel.Named{"id": 3})
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "Los Angeles", name)
	},

	"QueryValuesWithNamedArguments": func(t *testing.T, db *rebel.DB) {
		names, err := db.QueryValues(context.Background(), "SELECT name FROM cities WHERE id > :id ORDER BY id",
			rebel.Named{"id": 0})
		require.NoError(t, err)
		require.Equal(t, []any{"New York", "Washington", "Los Angeles"}, names)
	},

	"CannotMixPositionalAndNamedArgumentsInExecute": func(t *testing.T, db *rebel.DB) {
		err := db.Execute(context.Background(), `
			INSERT INTO users (id, email)
			VALUES (?, :email)
		`, 1, rebel.Named{"email": "foo@bar.com"})
		require.ErrorIs(t, err, rebel.ErrMixedArguments)

		requireNoUsers(t, db)
	},

	"CannotMixPositionalAndNamedArgumentsInQuery": func(t *testing.T, db *rebel.DB) {
		_, err := db.Query(context.Background(), `
			SELECT * FROM cities
			WHERE id = ? and name = :name
		`, 1, rebel.Named{"name": "New York"})
		require.ErrorIs(t, err, rebel.ErrMixedArguments)
	},

	"UnknownNamedParameter": func(t *testing.T, db *rebel.DB) {
		_, err := db.Query(context.Background(), "SELECT * FROM cities WHERE id = :id AND name = :name",
			rebel.Named{"id": 1})
		require.ErrorIs(t, err, rebel.ErrUnknownParameter)
		require.ErrorContains(t, err, ":name")
	},

	"InsertAndQuery": func(t *testing.T, db *rebel.DB) {
		ctx := context.Background()
		users := []struct {
			id    int
			email string
		}{
			{1, "email1@email.com"},
			{2, "email2@email.com"},
		}
		for _, user := range users {
			err := db.Execute(ctx, "insert into users (id, email) values (?, ?)", user.id, user.email)
			require.NoError(t, err)
		}

		result, err := db.Query(ctx, "SELECT id, email FROM users ORDER BY id")
		require.NoError(t, err)
		require.Equal(t, []Record{
			{"id": "1", "email": "email1@email.com"},
			{"id": "2", "email": "email2@email.com"},
		}, Records(result))
	},
}
