// Package rebel is a thin layer over a relational database driver for writing vanilla SQL.
//
// It provides four things on top of a [Driver]:
//
//  1. Argument binding: statements take either positional arguments ("?") or a single
//     [Named] map whose values are bound to ":name" placeholders. Named placeholders are
//     rewritten to positional ones before the statement reaches the driver.
//
//  2. Result mapping: rows come back as [Row] values, ordered column-name to value mappings.
//
//  3. Incremental statements: a [Builder] accumulates SQL fragments and their arguments
//     and can drop the last fragment before running the statement.
//
//  4. Nested transactions: [DB.StartTransaction], [DB.Commit] and [DB.Rollback] may be nested.
//     Only the outermost level touches the underlying driver transaction, and a rollback at
//     any level turns the whole transaction into a rollback. [DB.Transaction] wraps a callback
//     in one such level.
//
// A [DB] is not safe for concurrent use. It is meant to be used by one caller at a time.
//
// The generic [SQLDriver] adapts any database/sql driver. The drivers/ subpackages configure
// it for SQLite, PostgreSQL, MySQL, Oracle, SQL Server and DuckDB.
package rebel
