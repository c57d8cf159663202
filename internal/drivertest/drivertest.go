// Package drivertest holds the behavior every rebel driver must show against a real database.
//
// Each engine package runs the Suite with its own table definitions. The suite works on two
// tables:
//
//	cities (id auto-increment primary key, name varchar(254))
//	users  (id auto-increment primary key, email varchar(254))
//
// Explicit ids must be accepted on users. Values are compared through fmt.Sprint so engines
// returning different Go types for the same column still compare equal.
package drivertest

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/oagudo/rebel"
	"github.com/stretchr/testify/require"
)

// Suite runs the shared driver tests.
type Suite struct {
	// NewDriver returns a driver for the database under test. It is called once per test.
	NewDriver func(t *testing.T) rebel.Driver
	// CreateTables creates the cities and users tables when they do not exist.
	CreateTables func(t *testing.T, db *rebel.DB)
	// ClearTables removes every row from both tables and restarts their ids at 1.
	ClearTables func(t *testing.T, db *rebel.DB)
}

// Record is a row with every value formatted by fmt.Sprint.
type Record map[string]string

// Records formats rows for comparison.
func Records(rows []rebel.Row) []Record {
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, ToRecord(row))
	}
	return out
}

// ToRecord formats one row for comparison.
func ToRecord(row rebel.Row) Record {
	rec := make(Record, row.Len())
	for i, column := range row.Columns() {
		rec[column] = fmt.Sprint(row.Values()[i])
	}
	return rec
}

// Strings formats values for comparison.
func Strings(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

type testFunc func(t *testing.T, db *rebel.DB)

// Run runs every shared test as a subtest of t.
func (s Suite) Run(t *testing.T) {
	groups := []struct {
		name  string
		tests map[string]testFunc
	}{
		{"Query", queryTests},
		{"Builder", builderTests},
		{"Transaction", transactionTests},
	}

	for _, group := range groups {
		t.Run(group.name, func(t *testing.T) {
			for name, fn := range group.tests {
				t.Run(name, func(t *testing.T) {
					fn(t, s.setup(t))
				})
			}
		})
	}
}

// Setup returns a DB whose tables hold the three fixture cities and no users.
func (s Suite) Setup(t *testing.T) *rebel.DB {
	t.Helper()
	return s.setup(t)
}

func (s Suite) setup(t *testing.T) *rebel.DB {
	t.Helper()

	db := rebel.New(s.NewDriver(t))
	s.CreateTables(t, db)
	s.ClearTables(t, db)
	fillCities(t, db)
	return db
}

func fillCities(t *testing.T, db *rebel.DB) {
	t.Helper()

	err := db.Execute(context.Background(), `
		INSERT INTO cities (name)
		VALUES (?), (?), (?)
	`, "New York", "Washington", "Los Angeles")
	require.NoError(t, err)
}

var errTest = errors.New("test error")

func insertUser(t *testing.T, db *rebel.DB, email string) {
	t.Helper()

	err := db.Execute(context.Background(), "INSERT INTO users (email) VALUES (?)", email)
	require.NoError(t, err)
}

func firstUser(t *testing.T, db *rebel.DB) (Record, bool) {
	t.Helper()

	user, ok, err := db.QueryOne(context.Background(), "SELECT id, email FROM users ORDER BY id")
	require.NoError(t, err)
	if !ok {
		return nil, false
	}
	return ToRecord(user), true
}

func requireNoUsers(t *testing.T, db *rebel.DB) {
	t.Helper()

	_, ok := firstUser(t, db)
	require.False(t, ok, "expected users table to be empty")
}

func requireFirstUser(t *testing.T, db *rebel.DB, want Record) {
	t.Helper()

	user, ok := firstUser(t, db)
	require.True(t, ok, "expected a user")
	require.Equal(t, want, user)
}
