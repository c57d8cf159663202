// Package postgres configures rebel.SQLDriver for PostgreSQL.
//
// New uses github.com/lib/pq and NewPgx uses the database/sql adapter of github.com/jackc/pgx/v5.
// Both produce the same behavior; statements are written with "?" and rewritten to $1, $2...
package postgres

import (
	"net"
	"net/url"
	"strconv"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/oagudo/rebel"
)

// Driver names registered by lib/pq and pgx.
const (
	DriverName    = "postgres"
	PgxDriverName = "pgx"
)

// Config describes a PostgreSQL server. Zero fields are left to the driver defaults.
type Config struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	// SSLMode is passed as the sslmode parameter, e.g. "disable" or "require".
	SSLMode string
	// Params holds extra connection parameters.
	Params map[string]string
}

// DSN returns the connection URL for the config.
func (c Config) DSN() string {
	u := url.URL{Scheme: "postgres", Path: "/" + c.Database}

	host := c.Host
	if host == "" {
		host = "localhost"
	}
	if c.Port != 0 {
		host = net.JoinHostPort(host, strconv.Itoa(c.Port))
	}
	u.Host = host

	switch {
	case c.User != "" && c.Password != "":
		u.User = url.UserPassword(c.User, c.Password)
	case c.User != "":
		u.User = url.User(c.User)
	}

	q := url.Values{}
	for k, v := range c.Params {
		q.Set(k, v)
	}
	if c.SSLMode != "" {
		q.Set("sslmode", c.SSLMode)
	}
	u.RawQuery = q.Encode()

	return u.String()
}

// New returns a lib/pq driver for cfg.
func New(cfg Config, opts ...rebel.SQLDriverOption) *rebel.SQLDriver {
	return Open(cfg.DSN(), opts...)
}

// NewPgx returns a pgx driver for cfg.
func NewPgx(cfg Config, opts ...rebel.SQLDriverOption) *rebel.SQLDriver {
	return rebel.NewSQLDriver(PgxDriverName, cfg.DSN(), rebel.SQLDialectPostgres, opts...)
}

// Open returns a lib/pq driver for a DSN in any form lib/pq accepts.
func Open(dsn string, opts ...rebel.SQLDriverOption) *rebel.SQLDriver {
	return rebel.NewSQLDriver(DriverName, dsn, rebel.SQLDialectPostgres, opts...)
}
