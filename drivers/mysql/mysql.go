// Package mysql configures rebel.SQLDriver for MySQL and MariaDB through
// github.com/go-sql-driver/mysql.
package mysql

import (
	"net"
	"strconv"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/oagudo/rebel"
)

// DriverName is the database/sql name registered by go-sql-driver/mysql.
const DriverName = "mysql"

// Config describes a MySQL server.
type Config struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	// Params holds extra connection parameters, e.g. "charset".
	Params map[string]string
}

// DSN returns the go-sql-driver/mysql DSN for the config. Time values are parsed into time.Time.
func (c Config) DSN() string {
	cfg := gomysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.DBName = c.Database
	cfg.ParseTime = true

	host, port := c.Host, c.Port
	if host == "" {
		host = "localhost"
	}
	if port == 0 {
		port = 3306
	}
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(port))

	if len(c.Params) > 0 {
		cfg.Params = make(map[string]string, len(c.Params))
		for k, v := range c.Params {
			cfg.Params[k] = v
		}
	}

	return cfg.FormatDSN()
}

// New returns a MySQL driver for cfg.
func New(cfg Config, opts ...rebel.SQLDriverOption) *rebel.SQLDriver {
	return Open(cfg.DSN(), opts...)
}

// NewMariaDB returns a MariaDB driver for cfg.
func NewMariaDB(cfg Config, opts ...rebel.SQLDriverOption) *rebel.SQLDriver {
	return rebel.NewSQLDriver(DriverName, cfg.DSN(), rebel.SQLDialectMariaDB, opts...)
}

// Open returns a MySQL driver for a go-sql-driver/mysql DSN.
func Open(dsn string, opts ...rebel.SQLDriverOption) *rebel.SQLDriver {
	return rebel.NewSQLDriver(DriverName, dsn, rebel.SQLDialectMySQL, opts...)
}
