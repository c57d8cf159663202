package rebel

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLDriver is a Driver over a database/sql driver.
//
// Outside a transaction every statement runs on the connection pool and is committed by
// the engine as it runs. Between StartTransaction and Commit or Rollback, statements run on
// a single *sql.Tx.
type SQLDriver struct {
	driverName string
	dsn        string
	dialect    SQLDialect

	db *sql.DB
	tx *sql.Tx

	maxOpenConns    int
	connectAttempts int
	delayFunc       DelayFunc
	columnName      func(string) string
	logger          Logger
}

// SQLDriverOption is a function that configures a SQLDriver instance.
type SQLDriverOption func(*SQLDriver)

// WithMaxOpenConns limits the size of the connection pool. Default is no limit.
func WithMaxOpenConns(n int) SQLDriverOption {
	return func(d *SQLDriver) {
		d.maxOpenConns = n
	}
}

// WithConnectRetry makes Connect try attempts times to reach the database, waiting
// delayFunc between attempts. Default is a single attempt.
func WithConnectRetry(attempts int, delayFunc DelayFunc) SQLDriverOption {
	return func(d *SQLDriver) {
		if attempts > 0 {
			d.connectAttempts = attempts
		}
		if delayFunc != nil {
			d.delayFunc = delayFunc
		}
	}
}

// WithColumnNameMapper transforms the column names reported by the engine,
// e.g. strings.ToLower for engines that upper-case unquoted identifiers.
func WithColumnNameMapper(fn func(string) string) SQLDriverOption {
	return func(d *SQLDriver) {
		d.columnName = fn
	}
}

// WithDriverLogger sets the logger used for connection diagnostics.
func WithDriverLogger(logger Logger) SQLDriverOption {
	return func(d *SQLDriver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewSQLDriver creates a SQLDriver that opens dsn with the database/sql driver registered
// as driverName when Connect is called.
func NewSQLDriver(driverName, dsn string, dialect SQLDialect, opts ...SQLDriverOption) *SQLDriver {
	d := &SQLDriver{
		driverName:      driverName,
		dsn:             dsn,
		dialect:         dialect,
		connectAttempts: 1,
		delayFunc:       Exponential(200*time.Millisecond, 5*time.Second),
		logger:          nopLogger{},
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// NewSQLDriverWithDB creates a SQLDriver on an already opened *sql.DB.
func NewSQLDriverWithDB(db *sql.DB, dialect SQLDialect, opts ...SQLDriverOption) *SQLDriver {
	d := NewSQLDriver("", "", dialect, opts...)
	d.db = db
	return d
}

// Dialect returns the SQL dialect of the driver.
func (d *SQLDriver) Dialect() SQLDialect {
	return d.dialect
}

// DB returns the underlying pool, nil before Connect.
func (d *SQLDriver) DB() *sql.DB {
	return d.db
}

// Connect opens the pool if needed and checks that the database is reachable.
func (d *SQLDriver) Connect(ctx context.Context) error {
	if d.db == nil {
		db, err := sql.Open(d.driverName, d.dsn)
		if err != nil {
			return fmt.Errorf("opening %s database: %w", d.dialect, err)
		}
		d.db = db
	}
	if d.maxOpenConns > 0 {
		d.db.SetMaxOpenConns(d.maxOpenConns)
	}

	err := retry(ctx, d.connectAttempts, d.delayFunc,
		func() error { return d.db.PingContext(ctx) },
		func(attempt int, wait time.Duration, err error) {
			d.logger.Printf("[WARN] Unable to connect to %s database on attempt %d [%s]. Retrying in %s.",
				d.dialect, attempt+1, err, wait)
		})
	if err != nil {
		return fmt.Errorf("connecting to %s database: %w", d.dialect, err)
	}
	return nil
}

// Query rewrites the placeholders of query for the dialect, runs it and reads every row.
func (d *SQLDriver) Query(ctx context.Context, query string, args []any) (Cursor, error) {
	if d.db == nil {
		return nil, errors.New("rebel: sql driver is not connected")
	}

	rows, err := d.queryer().QueryContext(ctx, d.dialect.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	columns, binary, err := d.describe(rows)
	if err != nil {
		return nil, err
	}

	var tuples [][]any
	for rows.Next() {
		values, err := sqlx.SliceScan(rows)
		if err != nil {
			return nil, err
		}
		for i, value := range values {
			if b, ok := value.([]byte); ok && !binary[i] {
				values[i] = string(b)
			}
		}
		tuples = append(tuples, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	return NewCursor(columns, tuples), nil
}

// StartTransaction begins a *sql.Tx that every statement uses until Commit or Rollback.
func (d *SQLDriver) StartTransaction(ctx context.Context, level IsolationLevel) error {
	if d.db == nil {
		return errors.New("rebel: sql driver is not connected")
	}
	if d.tx != nil {
		return errors.New("rebel: sql driver transaction already in progress")
	}

	// the transaction outlives this call, a cancelled ctx must not roll it back
	tx, err := d.db.BeginTx(context.WithoutCancel(ctx), &sql.TxOptions{Isolation: d.dialect.isolation(level)})
	if err != nil {
		return err
	}
	d.tx = tx
	return nil
}

// Commit commits the open transaction and returns to autocommit.
// Without an open transaction there is nothing to commit and it returns nil.
func (d *SQLDriver) Commit(_ context.Context) error {
	if d.tx == nil {
		return nil
	}
	tx := d.tx
	d.tx = nil
	return tx.Commit()
}

// Rollback rolls back the open transaction and returns to autocommit.
// Without an open transaction there is nothing to discard and it returns nil.
func (d *SQLDriver) Rollback(_ context.Context) error {
	if d.tx == nil {
		return nil
	}
	tx := d.tx
	d.tx = nil
	return tx.Rollback()
}

// Close rolls back any open transaction and closes the pool.
func (d *SQLDriver) Close() error {
	if d.db == nil {
		return nil
	}
	var rbErr error
	if d.tx != nil {
		rbErr = d.tx.Rollback()
		d.tx = nil
	}
	return errors.Join(rbErr, d.db.Close())
}

// queryer represents a query executor, either the pool or the open transaction.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (d *SQLDriver) queryer() queryer {
	if d.tx != nil {
		return d.tx
	}
	return d.db
}

func (d *SQLDriver) describe(rows *sql.Rows) ([]string, []bool, error) {
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, nil, err
	}

	columns := make([]string, len(types))
	binary := make([]bool, len(types))
	for i, t := range types {
		columns[i] = t.Name()
		if d.columnName != nil {
			columns[i] = d.columnName(columns[i])
		}
		binary[i] = binaryColumn(t.DatabaseTypeName())
	}
	return columns, binary, nil
}
