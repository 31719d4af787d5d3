// Package table holds the receiving report spreadsheet: loading it from
// xlsx, annotating it with LPN matches and writing it back out.
package table

import (
	"fmt"
	"strings"
)

const (
	// KeyColumn is the expected-shipment identifier column.
	KeyColumn = "PACKAGEID"
	// LPNColumn holds the matched LPN, or "" when none was found.
	LPNColumn = "PDF LPN"
	// MatchColumn holds "YES" or "NO".
	MatchColumn = "RECEIVE MATCH"

	// Yes and No are the values of MatchColumn.
	Yes = "YES"
	No  = "NO"
)

// Table is an ordered set of rows sharing one header.
// Every row has exactly len(Columns) cells; cells are never nil-like,
// a blank cell is "".
type Table struct {
	Columns []string
	Rows    [][]string
}

// New creates a table, padding or truncating rows to the header width.
func New(columns []string, rows [][]string) *Table {
	t := &Table{Columns: append([]string(nil), columns...)}
	t.Rows = make([][]string, len(rows))
	for i, row := range rows {
		t.Rows[i] = fit(row, len(columns))
	}
	return t
}

func fit(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}

// Index returns the position of the first column named name, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// RequireColumn returns a SchemaError when name is not a column.
func (t *Table) RequireColumn(name string) error {
	if t.Index(name) < 0 {
		return &SchemaError{Column: name, Columns: append([]string(nil), t.Columns...)}
	}
	return nil
}

// Column returns a copy of the named column's values.
func (t *Table) Column(name string) ([]string, error) {
	idx := t.Index(name)
	if idx < 0 {
		return nil, &SchemaError{Column: name, Columns: append([]string(nil), t.Columns...)}
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, nil
}

// Row returns row i as a column name to value map. With duplicate
// column names the first occurrence wins.
func (t *Table) Row(i int) map[string]string {
	m := make(map[string]string, len(t.Columns))
	for j := len(t.Columns) - 1; j >= 0; j-- {
		m[t.Columns[j]] = t.Rows[i][j]
	}
	return m
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// normalizeHeader trims and upper-cases header cells. Blank names become
// "UNNAMED: <index>" and repeated names get a ".N" suffix so every
// column stays addressable; the first occurrence keeps the plain name.
func normalizeHeader(raw []string, width int) []string {
	cols := make([]string, width)
	seen := make(map[string]int, width)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(raw) {
			name = strings.ToUpper(strings.TrimSpace(raw[i]))
		}
		if name == "" {
			name = fmt.Sprintf("UNNAMED: %d", i)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			seen[name] = 0
		}
		cols[i] = name
	}
	return cols
}
