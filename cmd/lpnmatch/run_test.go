package main

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/jackzampolin/lpnmatch/internal/match"
	"github.com/jackzampolin/lpnmatch/internal/table"
	"github.com/jackzampolin/lpnmatch/internal/testutil"
)

func TestExpandPDFs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "a.PDF", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.pdf"), 0o755); err != nil {
		t.Fatal(err)
	}
	single := filepath.Join(dir, "notes.txt")

	got, err := expandPDFs([]string{single, dir})
	if err != nil {
		t.Fatalf("expandPDFs() error = %v", err)
	}
	want := []string{
		single,
		filepath.Join(dir, "a.PDF"),
		filepath.Join(dir, "b.pdf"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expandPDFs() = %v, want %v", got, want)
	}
}

func TestExpandPDFs_Errors(t *testing.T) {
	t.Run("directory without pdfs", func(t *testing.T) {
		if _, err := expandPDFs([]string{t.TempDir()}); err == nil {
			t.Error("expected error")
		}
	})
}

func TestExpandPDFs_KeepsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.pdf")
	gone := filepath.Join(dir, "gone.pdf")
	if err := os.WriteFile(good, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := expandPDFs([]string{good, gone})
	if err != nil {
		t.Fatalf("expandPDFs() error = %v", err)
	}
	if want := []string{good, gone}; !reflect.DeepEqual(got, want) {
		t.Errorf("expandPDFs() = %v, want %v", got, want)
	}
}

func quietOptions() match.Options {
	return match.Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestRunMatch_SkipsMissingPDF(t *testing.T) {
	dir := t.TempDir()
	report := filepath.Join(dir, "week12.xlsx")
	workbook := testutil.Workbook(t, "Receiving report", []string{"PACKAGEID", "CARRIER"}, [][]string{
		{"20000000", "UPS"},
		{"30000000", "FedEx"},
	})
	if err := os.WriteFile(report, workbook, 0o644); err != nil {
		t.Fatal(err)
	}
	receipt := filepath.Join(dir, "receipt.pdf")
	if err := os.WriteFile(receipt, testutil.PDF("LPN 20000000"), 0o644); err != nil {
		t.Fatal(err)
	}
	gone := filepath.Join(dir, "gone.pdf")

	outDir := filepath.Join(dir, "out")
	res, path, err := runMatch(report, []string{receipt, gone}, outDir, quietOptions())
	if err != nil {
		t.Fatalf("runMatch() error = %v", err)
	}

	skipped := res.Report.Skipped()
	if len(skipped) != 1 || skipped[0].Name != "gone.pdf" {
		t.Errorf("skipped = %+v, want only gone.pdf", skipped)
	}
	if res.Summary.Matched != 1 || res.Summary.Unmatched != 1 {
		t.Errorf("Summary = %+v", res.Summary)
	}
	if want := filepath.Join(outDir, "week12_RECEIVE_MATCH.xlsx"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestRunMatch_MissingReport(t *testing.T) {
	dir := t.TempDir()
	receipt := filepath.Join(dir, "receipt.pdf")
	if err := os.WriteFile(receipt, testutil.PDF("LPN 20000000"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := runMatch(filepath.Join(dir, "missing.xlsx"), []string{receipt}, "", quietOptions())
	var readErr *table.ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("error = %v, want *table.ReadError", err)
	}
}
