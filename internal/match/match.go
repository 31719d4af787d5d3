// Package match runs a receive match: it reads the receiving report,
// collects LPNs from the receipt PDFs and annotates every report row
// with whether its PACKAGEID was found.
//
// Both the CLI and the HTTP server call Run; neither re-implements any
// part of it.
package match

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/jackzampolin/lpnmatch/internal/document"
	"github.com/jackzampolin/lpnmatch/internal/extract"
	"github.com/jackzampolin/lpnmatch/internal/table"
)

// OutputSuffix is appended to the report's base name to name the output.
const OutputSuffix = "_RECEIVE_MATCH.xlsx"

// Request carries everything a run needs. Nothing is read from ambient
// state.
type Request struct {
	// TableName is the report's file name, used to name the output.
	TableName string
	// Table is the xlsx receiving report.
	Table io.Reader
	// Documents are the receipt PDFs.
	Documents []document.Source
}

// Options tune a run without changing its result.
type Options struct {
	Workers int
	Logger  *slog.Logger
}

// Summary counts the outcome of a run.
type Summary struct {
	Rows        int `json:"rows" yaml:"rows"`
	Matched     int `json:"matched" yaml:"matched"`
	Unmatched   int `json:"unmatched" yaml:"unmatched"`
	Identifiers int `json:"identifiers" yaml:"identifiers"`
	Documents   int `json:"documents" yaml:"documents"`
	Skipped     int `json:"skipped" yaml:"skipped"`
}

// Result is a completed run.
type Result struct {
	Table      *table.Table
	Report     *extract.Report
	Summary    Summary
	OutputName string
}

// ValidationError reports a request missing one of its inputs.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing input: %s (both a spreadsheet and PDF files are required)", strings.Join(e.Missing, " and "))
}

// Validate checks that both inputs are present.
func (r Request) Validate() error {
	var missing []string
	if r.Table == nil {
		missing = append(missing, "spreadsheet")
	}
	if len(r.Documents) == 0 {
		missing = append(missing, "PDF files")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Run executes a receive match. The report is loaded and checked for a
// PACKAGEID column before any PDF is read; a bad report fails the run
// while a bad PDF is only skipped.
func Run(req Request, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	tbl, err := table.Load(req.Table)
	if err != nil {
		return nil, err
	}
	if err := tbl.RequireColumn(table.KeyColumn); err != nil {
		return nil, err
	}
	log.Info("loaded receiving report", "table", req.TableName, "rows", tbl.Len(), "columns", len(tbl.Columns))

	extractor := &extract.Extractor{Workers: opts.Workers, Logger: log}
	ids, report := extractor.Extract(req.Documents)

	annotated, err := table.Annotate(tbl, ids)
	if err != nil {
		return nil, err
	}

	matched, unmatched := table.Counts(annotated)
	result := &Result{
		Table:  annotated,
		Report: report,
		Summary: Summary{
			Rows:        annotated.Len(),
			Matched:     matched,
			Unmatched:   unmatched,
			Identifiers: ids.Len(),
			Documents:   len(req.Documents),
			Skipped:     len(report.Skipped()),
		},
		OutputName: OutputName(req.TableName),
	}

	log.Info("receive match complete",
		"rows", result.Summary.Rows,
		"matched", matched,
		"unmatched", unmatched,
		"output", result.OutputName)

	return result, nil
}

// OutputName derives the output file name from the report's name:
// "dir/report.xlsx" becomes "report_RECEIVE_MATCH.xlsx".
func OutputName(tableName string) string {
	base := filepath.Base(strings.ReplaceAll(tableName, `\`, "/"))
	if base == "." || base == "/" {
		base = ""
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" {
		base = "report"
	}
	return base + OutputSuffix
}
