// Package duckdb configures rebel.SQLDriver for DuckDB through github.com/duckdb/duckdb-go/v2.
package duckdb

import (
	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/oagudo/rebel"
)

// DriverName is the database/sql name registered by duckdb-go.
const DriverName = "duckdb"

// New returns a driver for the database file at path. An empty path opens a new
// in-memory database.
//
// DuckDB has a single isolation level; isolation levels passed to StartTransaction are ignored.
func New(path string, opts ...rebel.SQLDriverOption) *rebel.SQLDriver {
	return rebel.NewSQLDriver(DriverName, path, rebel.SQLDialectDuckDB, opts...)
}

// Memory returns a driver for a new, empty in-memory database.
func Memory(opts ...rebel.SQLDriverOption) *rebel.SQLDriver {
	opts = append([]rebel.SQLDriverOption{rebel.WithMaxOpenConns(1)}, opts...)
	return New("", opts...)
}
