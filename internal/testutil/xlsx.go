package testutil

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Workbook builds an xlsx file in the receiving-report layout: a title
// banner on row 1, header on row 2, data from row 3.
func Workbook(t testing.TB, title string, header []string, rows [][]string) []byte {
	t.Helper()

	all := make([][]string, 0, len(rows)+2)
	all = append(all, []string{title}, header)
	all = append(all, rows...)
	return SheetRows(t, all)
}

// SheetRows writes rows verbatim, starting at A1, as string cells.
// Empty strings leave the cell unset.
func SheetRows(t testing.TB, rows [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			if v == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellStr(sheet, cell, v); err != nil {
				t.Fatalf("set cell %s: %v", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}
