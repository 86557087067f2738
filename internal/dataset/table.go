package dataset

import "sort"

// Row is a single record keyed by column name. Cells hold what the JSON
// decoder produced: float64, string, bool, or nil.
type Row map[string]any

// Table is an immutable, read-only view over rows of one logical dataset.
// Columns may be absent for a given snapshot revision; accessors report
// absence instead of failing.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable builds a table with an explicit column order.
func NewTable(columns []string, rows []Row) Table {
	return Table{Columns: columns, Rows: rows}
}

// FromRows builds a table whose column set is the sorted union of row keys.
func FromRows(rows []Row) Table {
	seen := make(map[string]struct{})
	for _, row := range rows {
		for col := range row {
			seen[col] = struct{}{}
		}
	}
	columns := make([]string, 0, len(seen))
	for col := range seen {
		columns = append(columns, col)
	}
	sort.Strings(columns)
	return Table{Columns: columns, Rows: rows}
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// IsEmpty reports whether the table holds no rows.
func (t Table) IsEmpty() bool { return len(t.Rows) == 0 }

// HasColumn reports whether the column exists in this snapshot revision.
func (t Table) HasColumn(name string) bool {
	for _, col := range t.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// Float returns the numeric cell value at (row, col). The second return is
// false when the cell is absent, null, or not numeric.
func (t Table) Float(row int, col string) (float64, bool) {
	if row < 0 || row >= len(t.Rows) {
		return 0, false
	}
	v, ok := t.Rows[row][col]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// String returns the cell as a string, or "" when absent or not a string.
func (t Table) String(row int, col string) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	v, ok := t.Rows[row][col]
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Cell returns the raw cell value and whether it is present and non-null.
func (t Table) Cell(row int, col string) (any, bool) {
	if row < 0 || row >= len(t.Rows) {
		return nil, false
	}
	v, ok := t.Rows[row][col]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Derive returns a new table sharing this table's column order over a row
// subset. Rows are shared, never copied; tables are read-only by contract.
func (t Table) Derive(rows []Row) Table {
	return Table{Columns: t.Columns, Rows: rows}
}

// DistinctStrings returns the distinct values of a string column in first-seen
// order, skipping absent and non-string cells.
func (t Table) DistinctStrings(col string) []string {
	var out []string
	seen := make(map[string]struct{})
	for i := range t.Rows {
		v := t.String(i, col)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
