package rebel

import (
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
)

// SQLDialect represents a SQL database dialect.
type SQLDialect string

// Supported database dialects.
const (
	SQLDialectPostgres  SQLDialect = "postgres"
	SQLDialectMySQL     SQLDialect = "mysql"
	SQLDialectMariaDB   SQLDialect = "mariadb"
	SQLDialectSQLite    SQLDialect = "sqlite"
	SQLDialectOracle    SQLDialect = "oracle"
	SQLDialectSQLServer SQLDialect = "sqlserver"
	SQLDialectDuckDB    SQLDialect = "duckdb"
)

// bindType returns the sqlx placeholder style of the dialect.
func (d SQLDialect) bindType() int {
	switch d {
	case SQLDialectPostgres:
		return sqlx.DOLLAR // $1, $2...
	case SQLDialectOracle:
		return sqlx.NAMED // :arg1, :arg2...
	case SQLDialectSQLServer:
		return sqlx.AT // @p1, @p2...
	default:
		return sqlx.QUESTION
	}
}

// rebind rewrites "?" placeholders into the dialect's syntax.
func (d SQLDialect) rebind(query string) string {
	return sqlx.Rebind(d.bindType(), query)
}

// isolation maps level to what the dialect's database/sql driver accepts.
func (d SQLDialect) isolation(level IsolationLevel) sql.IsolationLevel {
	switch d {
	case SQLDialectSQLite, SQLDialectDuckDB:
		// single isolation level engines
		return sql.LevelDefault
	case SQLDialectOracle:
		switch level {
		case ReadUncommitted, ReadCommitted:
			return sql.LevelReadCommitted
		case RepeatableRead, Serializable:
			return sql.LevelSerializable
		}
		return sql.LevelDefault
	}

	switch level {
	case ReadUncommitted:
		return sql.LevelReadUncommitted
	case ReadCommitted:
		return sql.LevelReadCommitted
	case RepeatableRead:
		return sql.LevelRepeatableRead
	case Serializable:
		return sql.LevelSerializable
	default:
		return sql.LevelDefault
	}
}

// binaryColumn reports whether values of the given database type should stay []byte.
func binaryColumn(databaseTypeName string) bool {
	name := strings.ToUpper(databaseTypeName)
	for _, marker := range []string{"BLOB", "BYTEA", "BINARY", "RAW", "IMAGE"} {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}
