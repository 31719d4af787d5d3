package table

import (
	"github.com/jackzampolin/lpnmatch/internal/lpn"
)

// Annotate returns a copy of t with LPNColumn and MatchColumn appended.
// A row matches when its trimmed KeyColumn value is in ids; the matched
// LPN is that trimmed value. t is not modified.
func Annotate(t *Table, ids *lpn.Set) (*Table, error) {
	key := t.Index(KeyColumn)
	if key < 0 {
		return nil, t.RequireColumn(KeyColumn)
	}

	out := &Table{
		Columns: make([]string, 0, len(t.Columns)+2),
		Rows:    make([][]string, len(t.Rows)),
	}
	out.Columns = append(out.Columns, t.Columns...)
	out.Columns = append(out.Columns, LPNColumn, MatchColumn)

	for i, row := range t.Rows {
		lpnValue, match := matchRow(row[key], ids)
		annotated := make([]string, 0, len(row)+2)
		annotated = append(annotated, row...)
		annotated = append(annotated, lpnValue, match)
		out.Rows[i] = annotated
	}
	return out, nil
}

func matchRow(packageID string, ids *lpn.Set) (string, string) {
	id := lpn.Normalize(packageID)
	if id != "" && ids.Contains(id) {
		return id, Yes
	}
	return "", No
}

// Counts tallies YES and NO values of an annotated table. The last
// MatchColumn is used, which is the one Annotate appended.
func Counts(t *Table) (matched, unmatched int) {
	idx := -1
	for i := len(t.Columns) - 1; i >= 0; i-- {
		if t.Columns[i] == MatchColumn {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, 0
	}
	for _, row := range t.Rows {
		if row[idx] == Yes {
			matched++
		} else {
			unmatched++
		}
	}
	return matched, unmatched
}
