// Package oracle configures rebel.SQLDriver for Oracle Database through github.com/sijms/go-ora/v2.
//
// Statements are written with "?" and rewritten to :arg1, :arg2... Oracle reports unquoted
// identifiers in upper case; column names are lower-cased so rows read the same as on other engines.
package oracle

import (
	"strings"

	"github.com/oagudo/rebel"
	go_ora "github.com/sijms/go-ora/v2"
)

// DriverName is the database/sql name registered by go-ora.
const DriverName = "oracle"

// Config describes an Oracle service.
type Config struct {
	Host     string
	Port     int
	Service  string
	User     string
	Password string
	// Options holds go-ora URL options, e.g. "SSL" or "TRACE FILE".
	Options map[string]string
}

// DSN returns the go-ora connection URL for the config.
func (c Config) DSN() string {
	port := c.Port
	if port == 0 {
		port = 1521
	}
	return go_ora.BuildUrl(c.Host, port, c.Service, c.User, c.Password, c.Options)
}

// New returns an Oracle driver for cfg.
func New(cfg Config, opts ...rebel.SQLDriverOption) *rebel.SQLDriver {
	return Open(cfg.DSN(), opts...)
}

// Open returns an Oracle driver for a go-ora connection URL.
func Open(dsn string, opts ...rebel.SQLDriverOption) *rebel.SQLDriver {
	opts = append([]rebel.SQLDriverOption{rebel.WithColumnNameMapper(strings.ToLower)}, opts...)
	return rebel.NewSQLDriver(DriverName, dsn, rebel.SQLDialectOracle, opts...)
}
