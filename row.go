package rebel

// Row is one result row: column names mapped to values, in select order.
//
// Like a map, a Row holds each column name once. When a result repeats a column name,
// the name keeps its first position and takes the last value.
type Row struct {
	columns []string
	values  []any
}

// NewRow builds a Row from parallel column and value slices.
func NewRow(columns []string, values []any) Row {
	r := Row{
		columns: make([]string, 0, len(columns)),
		values:  make([]any, 0, len(columns)),
	}
	for i, column := range columns {
		var value any
		if i < len(values) {
			value = values[i]
		}
		if idx := r.index(column); idx >= 0 {
			r.values[idx] = value
			continue
		}
		r.columns = append(r.columns, column)
		r.values = append(r.values, value)
	}
	return r
}

// Columns returns the column names in order.
func (r Row) Columns() []string { return r.columns }

// Values returns the values in column order.
func (r Row) Values() []any { return r.values }

// Len returns the number of columns.
func (r Row) Len() int { return len(r.columns) }

// Get returns the value of the named column.
func (r Row) Get(column string) (any, bool) {
	idx := r.index(column)
	if idx < 0 {
		return nil, false
	}
	return r.values[idx], true
}

// First returns the value of the first column.
func (r Row) First() (any, bool) {
	if len(r.values) == 0 {
		return nil, false
	}
	return r.values[0], true
}

// Map returns the row as a map. Column order is lost.
func (r Row) Map() map[string]any {
	m := make(map[string]any, len(r.columns))
	for i, column := range r.columns {
		m[column] = r.values[i]
	}
	return m
}

func (r Row) index(column string) int {
	for i, c := range r.columns {
		if c == column {
			return i
		}
	}
	return -1
}

// MapRows converts the rows of cursor into Row values. The result is never nil.
func MapRows(cursor Cursor) []Row {
	columns := cursor.Columns()
	tuples := cursor.Rows()

	rows := make([]Row, 0, len(tuples))
	for _, tuple := range tuples {
		rows = append(rows, NewRow(columns, tuple))
	}
	return rows
}
