// Package sqlite configures rebel.SQLDriver for SQLite through github.com/mattn/go-sqlite3.
package sqlite

import (
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/oagudo/rebel"
)

// DriverName is the database/sql name registered by go-sqlite3.
const DriverName = "sqlite3"

// New returns a driver for the database file at path. Path accepts every form go-sqlite3
// does, including ":memory:" and "file:" URIs.
//
// The pool is limited to one connection: SQLite serializes writers anyway, and a private
// in-memory database exists only on the connection that created it.
func New(path string, opts ...rebel.SQLDriverOption) *rebel.SQLDriver {
	opts = append([]rebel.SQLDriverOption{rebel.WithMaxOpenConns(1)}, opts...)
	return rebel.NewSQLDriver(DriverName, path, rebel.SQLDialectSQLite, opts...)
}

// Memory returns a driver for a new, empty in-memory database.
// Every call creates a distinct database, named with a random UUID.
func Memory(opts ...rebel.SQLDriverOption) *rebel.SQLDriver {
	return New(MemoryDSN(uuid.NewString()), opts...)
}

// MemoryDSN returns the DSN of the shared in-memory database called name. Drivers opened
// with the same name in one process see the same data.
func MemoryDSN(name string) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
}
