package rebel

import (
	"context"
	"strings"
)

// Builder assembles one statement from SQL fragments.
//
// Each fragment is bound on its own when added, so named arguments may be reused
// across fragments. Fragments are joined with single spaces when the statement runs.
//
//	sql := db.SQL("INSERT INTO users (email) VALUES")
//	for _, email := range emails {
//	    sql.Add("(?)", email).Add(",")
//	}
//	sql.Back() // drop the trailing comma
//	err := sql.Execute(ctx)
//
// The first binding error is kept and returned by Err, Build and every method that
// runs the statement.
type Builder struct {
	db        *DB
	fragments []fragment
	err       error
}

type fragment struct {
	query string
	args  []any
}

// Add appends a fragment and its arguments.
func (b *Builder) Add(query string, args ...any) *Builder {
	if b.err != nil {
		return b
	}

	query, values, err := Bind(query, args...)
	if err != nil {
		b.err = err
		return b
	}

	b.fragments = append(b.fragments, fragment{query: query, args: values})
	return b
}

// Back removes the last added fragment. It does nothing when there are no fragments.
func (b *Builder) Back() *Builder {
	if len(b.fragments) > 0 {
		b.fragments = b.fragments[:len(b.fragments)-1]
	}
	return b
}

// Err returns the first error met while adding fragments.
func (b *Builder) Err() error {
	return b.err
}

// Build joins the fragments into a statement and its positional arguments.
func (b *Builder) Build() (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}

	var sb strings.Builder
	args := make([]any, 0, len(b.fragments))
	for _, f := range b.fragments {
		sb.WriteString(f.query)
		sb.WriteByte(' ')
		args = append(args, f.args...)
	}

	return strings.TrimSpace(sb.String()), args, nil
}

// Query runs the statement, see [DB.Query].
func (b *Builder) Query(ctx context.Context) ([]Row, error) {
	query, args, err := b.Build()
	if err != nil {
		return nil, err
	}
	return b.db.Query(ctx, query, args...)
}

// QueryOne runs the statement, see [DB.QueryOne].
func (b *Builder) QueryOne(ctx context.Context) (Row, bool, error) {
	query, args, err := b.Build()
	if err != nil {
		return Row{}, false, err
	}
	return b.db.QueryOne(ctx, query, args...)
}

// QueryValue runs the statement, see [DB.QueryValue].
func (b *Builder) QueryValue(ctx context.Context) (any, bool, error) {
	query, args, err := b.Build()
	if err != nil {
		return nil, false, err
	}
	return b.db.QueryValue(ctx, query, args...)
}

// QueryValues runs the statement, see [DB.QueryValues].
func (b *Builder) QueryValues(ctx context.Context) ([]any, error) {
	query, args, err := b.Build()
	if err != nil {
		return nil, err
	}
	return b.db.QueryValues(ctx, query, args...)
}

// Execute runs the statement, see [DB.Execute].
func (b *Builder) Execute(ctx context.Context) error {
	query, args, err := b.Build()
	if err != nil {
		return err
	}
	return b.db.Execute(ctx, query, args...)
}
