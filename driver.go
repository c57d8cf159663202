package rebel

import "context"

// Driver is the engine-specific side of a DB.
//
// Statements reach the driver with "?" positional placeholders only; rewriting them into the
// engine's own syntax is the driver's job. The DB calls Connect once, before any other method.
type Driver interface {
	// Connect establishes the connection to the database.
	Connect(ctx context.Context) error
	// Query runs query bound to args and returns its rows. Statements without a result set
	// return a cursor with no rows.
	Query(ctx context.Context, query string, args []any) (Cursor, error)
	// StartTransaction begins a transaction. LevelDefault selects the engine's default isolation.
	StartTransaction(ctx context.Context, level IsolationLevel) error
	// Commit ends the current transaction. Drivers that autocommit outside a transaction
	// return to autocommit afterwards.
	Commit(ctx context.Context) error
	// Rollback ends the current transaction, discarding its changes. Drivers that autocommit
	// outside a transaction return to autocommit afterwards.
	Rollback(ctx context.Context) error
}

// Cursor is the result of Driver.Query.
type Cursor interface {
	// Columns returns the column names in select order.
	Columns() []string
	// Rows returns every row, each holding one value per column.
	Rows() [][]any
	// Close releases the cursor.
	Close() error
}

// NewCursor returns a Cursor over rows already read into memory.
func NewCursor(columns []string, rows [][]any) Cursor {
	return &bufferedCursor{columns: columns, rows: rows}
}

type bufferedCursor struct {
	columns []string
	rows    [][]any
}

func (c *bufferedCursor) Columns() []string { return c.columns }
func (c *bufferedCursor) Rows() [][]any     { return c.rows }
func (c *bufferedCursor) Close() error      { return nil }
