package table

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/xuri/excelize/v2"
)

const (
	// TitleRow is the 1-indexed banner row discarded on load.
	TitleRow = 1
	// HeaderRow is the 1-indexed row holding column names on load.
	HeaderRow = 2
)

// ErrLocked is returned by WriteFile when another run holds the output.
var ErrLocked = errors.New("output file is locked by another run")

// Load reads the first worksheet of an xlsx stream. Row 1 is a title
// banner and is dropped, row 2 names the columns, data starts on row 3.
// Cell values are read as stored, without number formatting, so numeric
// identifiers are never rounded or shown in exponent form.
func Load(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &ReadError{Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ReadError{Err: errors.New("workbook has no worksheets")}
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &ReadError{Err: fmt.Errorf("sheet %q: %w", sheets[0], err)}
	}

	var header []string
	if len(rows) >= HeaderRow {
		header = rows[HeaderRow-1]
	}
	var data [][]string
	if len(rows) > HeaderRow {
		data = trimBlankTail(rows[HeaderRow:])
	}

	width := lastNonBlank(header) + 1
	for _, row := range data {
		if w := lastNonBlank(row) + 1; w > width {
			width = w
		}
	}

	return New(normalizeHeader(header, width), data), nil
}

// LoadFile opens path and loads it.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Err: err}
	}
	defer f.Close()
	return Load(f)
}

func lastNonBlank(row []string) int {
	for i := len(row) - 1; i >= 0; i-- {
		if strings.TrimSpace(row[i]) != "" {
			return i
		}
	}
	return -1
}

// trimBlankTail drops fully blank rows at the end of the sheet. Blank
// rows between data rows are kept so output stays row-for-row aligned.
func trimBlankTail(rows [][]string) [][]string {
	end := len(rows)
	for end > 0 && lastNonBlank(rows[end-1]) < 0 {
		end--
	}
	return rows[:end]
}

// Write encodes t as an xlsx workbook with a single header row.
func Write(w io.Writer, t *Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	if err := sw.SetRow("A1", toCells(t.Columns)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, toCells(row)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func toCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

// WriteFile writes t to path. The workbook is written to a temporary
// file in the same directory and renamed into place while an advisory
// lock on path+".lock" is held.
func WriteFile(path string, t *Table) error {
	lockPath := path + ".lock"
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%s: %w", path, ErrLocked)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lockPath)
	}()

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := Write(tmp, t); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}
