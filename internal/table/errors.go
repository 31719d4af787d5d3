package table

import (
	"fmt"
	"strings"
)

// SchemaError reports a required column missing from the header row.
type SchemaError struct {
	Column  string
	Columns []string
}

func (e *SchemaError) Error() string {
	if len(e.Columns) == 0 {
		return fmt.Sprintf("missing required column %q on header row %d (header row is empty)", e.Column, HeaderRow)
	}
	return fmt.Sprintf("missing required column %q on header row %d (found: %s)",
		e.Column, HeaderRow, strings.Join(e.Columns, ", "))
}

// ReadError reports a spreadsheet that could not be decoded.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read spreadsheet: %v", e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
