package rebel

import (
	"context"
)

// DB runs statements against a Driver and tracks nested transactions.
//
// The driver connection is established on first use. A DB must not be used by
// several goroutines at once.
type DB struct {
	driver Driver
	logger Logger

	connected      bool
	depth          int
	rollbackIssued bool
}

// Option is a function that configures a DB instance.
type Option func(*DB)

// WithLogger sets the logger used for transaction diagnostics.
// By default nothing is logged.
func WithLogger(logger Logger) Option {
	return func(db *DB) {
		if logger != nil {
			db.logger = logger
		}
	}
}

// New creates a DB on top of driver. It does not connect.
func New(driver Driver, opts ...Option) *DB {
	db := &DB{
		driver: driver,
		logger: nopLogger{},
	}

	for _, opt := range opts {
		opt(db)
	}

	return db
}

// Driver returns the underlying driver.
func (db *DB) Driver() Driver {
	return db.driver
}

// SQL starts a Builder with query as its first fragment.
func (db *DB) SQL(query string, args ...any) *Builder {
	b := &Builder{db: db}
	return b.Add(query, args...)
}

// Query runs query and returns all of its rows. It returns an empty slice when no row matches.
//
// Example:
//
//	cities, err := db.Query(ctx, "SELECT * FROM cities WHERE id > ?", 1)
//	if err != nil {
//	    return err
//	}
//	for _, city := range cities {
//	    name, _ := city.Get("name")
//	    fmt.Println(name)
//	}
func (db *DB) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	err := db.connectOnce(ctx)
	if err != nil {
		return nil, err
	}

	query, values, err := Bind(query, args...)
	if err != nil {
		return nil, err
	}

	return db.fetch(ctx, query, values)
}

// QueryOne runs query and returns its first row. The boolean is false when no row matches.
func (db *DB) QueryOne(ctx context.Context, query string, args ...any) (Row, bool, error) {
	rows, err := db.Query(ctx, query, args...)
	return firstRow(rows, err)
}

// QueryValue runs query and returns the first column of its first row.
// The boolean is false when no row matches.
func (db *DB) QueryValue(ctx context.Context, query string, args ...any) (any, bool, error) {
	rows, err := db.Query(ctx, query, args...)
	return firstValue(rows, err)
}

// QueryValues runs query and returns the first column of every row.
func (db *DB) QueryValues(ctx context.Context, query string, args ...any) ([]any, error) {
	rows, err := db.Query(ctx, query, args...)
	return firstValues(rows, err)
}

// Execute runs a statement and discards any rows it returns.
//
// Example:
//
//	err := db.Execute(ctx, "INSERT INTO users (id, email) VALUES (:id, :email)",
//	    rebel.Named{"id": 1, "email": "foo@bar.com"})
func (db *DB) Execute(ctx context.Context, query string, args ...any) error {
	err := db.connectOnce(ctx)
	if err != nil {
		return err
	}

	query, values, err := Bind(query, args...)
	if err != nil {
		return err
	}

	cursor, err := db.driver.Query(ctx, query, values)
	if err != nil {
		return err
	}
	return cursor.Close()
}

func (db *DB) fetch(ctx context.Context, query string, values []any) (rows []Row, err error) {
	cursor, err := db.driver.Query(ctx, query, values)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := cursor.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return MapRows(cursor), nil
}

func (db *DB) connectOnce(ctx context.Context) error {
	if db.connected {
		return nil
	}
	err := db.driver.Connect(ctx)
	if err != nil {
		return err
	}
	db.connected = true
	return nil
}

func firstRow(rows []Row, err error) (Row, bool, error) {
	if err != nil || len(rows) == 0 {
		return Row{}, false, err
	}
	return rows[0], true, nil
}

func firstValue(rows []Row, err error) (any, bool, error) {
	row, ok, err := firstRow(rows, err)
	if !ok {
		return nil, false, err
	}
	value, _ := row.First()
	return value, true, nil
}

func firstValues(rows []Row, err error) ([]any, error) {
	if err != nil {
		return nil, err
	}
	values := make([]any, 0, len(rows))
	for _, row := range rows {
		value, _ := row.First()
		values = append(values, value)
	}
	return values, nil
}
