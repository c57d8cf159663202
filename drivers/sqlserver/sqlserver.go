// Package sqlserver configures rebel.SQLDriver for Microsoft SQL Server through
// github.com/denisenkom/go-mssqldb. Statements are written with "?" and rewritten to @p1, @p2...
package sqlserver

import (
	"net"
	"net/url"
	"strconv"

	_ "github.com/denisenkom/go-mssqldb"
	"github.com/oagudo/rebel"
)

// DriverName is the database/sql name registered by go-mssqldb.
const DriverName = "sqlserver"

// Config describes a SQL Server instance.
type Config struct {
	Host     string
	Port     int
	Instance string
	Database string
	User     string
	Password string
	// Params holds extra connection parameters, e.g. "encrypt".
	Params map[string]string
}

// DSN returns the sqlserver:// connection URL for the config.
func (c Config) DSN() string {
	host := c.Host
	if host == "" {
		host = "localhost"
	}
	if c.Port != 0 {
		host = net.JoinHostPort(host, strconv.Itoa(c.Port))
	}

	u := url.URL{Scheme: "sqlserver", Host: host, User: url.UserPassword(c.User, c.Password)}
	if c.Instance != "" {
		u.Path = "/" + c.Instance
	}

	q := url.Values{}
	for k, v := range c.Params {
		q.Set(k, v)
	}
	if c.Database != "" {
		q.Set("database", c.Database)
	}
	u.RawQuery = q.Encode()

	return u.String()
}

// New returns a SQL Server driver for cfg.
func New(cfg Config, opts ...rebel.SQLDriverOption) *rebel.SQLDriver {
	return Open(cfg.DSN(), opts...)
}

// Open returns a SQL Server driver for a DSN in any form go-mssqldb accepts.
func Open(dsn string, opts ...rebel.SQLDriverOption) *rebel.SQLDriver {
	return rebel.NewSQLDriver(DriverName, dsn, rebel.SQLDialectSQLServer, opts...)
}
