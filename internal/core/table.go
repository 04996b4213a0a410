package core

// Table is a named-column tabular result handed to the rendering layer.
// An empty result is a valid table with zero rows and known columns, so
// templates only ever branch on "is it empty", never on "is it missing".
type Table struct {
	Columns []string
	Rows    [][]string
}

// NewTable returns an empty table shaped with the given columns.
func NewTable(columns ...string) Table {
	return Table{Columns: columns, Rows: [][]string{}}
}

// Append adds one row. Short rows are padded so every row matches the
// column count.
func (t *Table) Append(values ...string) {
	row := make([]string, len(t.Columns))
	copy(row, values)
	t.Rows = append(t.Rows, row)
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}
