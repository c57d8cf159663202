package rebel

import (
	"context"
)

type fakeQuery struct {
	query string
	args  []any
}

type fakeCursor struct {
	Cursor
	closeErr error
	closed   bool
}

func (c *fakeCursor) Close() error {
	c.closed = true
	return c.closeErr
}

// fakeDriver records every call it receives. Statements are answered with columns and rows.
type fakeDriver struct {
	connectErr  error
	queryErr    error
	beginErr    error
	commitErr   error
	rollbackErr error
	closeErr    error

	columns []string
	rows    [][]any

	connects   int
	queries    []fakeQuery
	cursors    []*fakeCursor
	begins     []IsolationLevel
	commits    int
	rollbacks  int
	calls      []string
	inProgress bool
}

func (f *fakeDriver) Connect(_ context.Context) error {
	f.connects++
	f.calls = append(f.calls, "connect")
	return f.connectErr
}

func (f *fakeDriver) Query(_ context.Context, query string, args []any) (Cursor, error) {
	f.calls = append(f.calls, "query")
	f.queries = append(f.queries, fakeQuery{query: query, args: args})
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	c := &fakeCursor{Cursor: NewCursor(f.columns, f.rows), closeErr: f.closeErr}
	f.cursors = append(f.cursors, c)
	return c, nil
}

func (f *fakeDriver) StartTransaction(_ context.Context, level IsolationLevel) error {
	f.calls = append(f.calls, "begin")
	if f.beginErr != nil {
		return f.beginErr
	}
	f.begins = append(f.begins, level)
	f.inProgress = true
	return nil
}

func (f *fakeDriver) Commit(_ context.Context) error {
	f.calls = append(f.calls, "commit")
	f.commits++
	f.inProgress = false
	return f.commitErr
}

func (f *fakeDriver) Rollback(_ context.Context) error {
	f.calls = append(f.calls, "rollback")
	f.rollbacks++
	f.inProgress = false
	return f.rollbackErr
}

func (f *fakeDriver) lastQuery() fakeQuery {
	if len(f.queries) == 0 {
		return fakeQuery{}
	}
	return f.queries[len(f.queries)-1]
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, _ ...any) {
	l.lines = append(l.lines, format)
}
