// Package extract builds the set of LPNs printed in a batch of receipts.
package extract

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jackzampolin/lpnmatch/internal/document"
	"github.com/jackzampolin/lpnmatch/internal/lpn"
)

// Extractor scans documents for LPNs.
type Extractor struct {
	// Workers bounds how many documents are read at once.
	// Zero or one reads documents sequentially.
	Workers int

	// Logger receives skip notices. Defaults to slog.Default().
	Logger *slog.Logger
}

// DocumentStats describes what extraction got out of one document.
type DocumentStats struct {
	Name          string `json:"name" yaml:"name"`
	Pages         int    `json:"pages" yaml:"pages"`
	PagesWithText int    `json:"pages_with_text" yaml:"pages_with_text"`
	Identifiers   int    `json:"identifiers" yaml:"identifiers"`
	Skipped       bool   `json:"skipped" yaml:"skipped"`
	Error         string `json:"error,omitempty" yaml:"error,omitempty"`

	err error
}

// Err returns the read error that caused the document to be skipped.
func (s DocumentStats) Err() error { return s.err }

// Report summarizes an extraction run, in input order.
type Report struct {
	Documents []DocumentStats `json:"documents" yaml:"documents"`
}

// Skipped returns the documents that could not be read.
func (r *Report) Skipped() []DocumentStats {
	var out []DocumentStats
	for _, d := range r.Documents {
		if d.Skipped {
			out = append(out, d)
		}
	}
	return out
}

// Pages returns the total number of pages across readable documents.
func (r *Report) Pages() int {
	n := 0
	for _, d := range r.Documents {
		n += d.Pages
	}
	return n
}

// Extract reads every source and returns the union of LPNs found.
// Unreadable documents and pages without text are skipped; they show up
// in the report but never fail the run.
func (e *Extractor) Extract(sources []document.Source) (*lpn.Set, *Report) {
	log := e.Logger
	if log == nil {
		log = slog.Default()
	}

	ids := lpn.NewSet()
	report := &Report{Documents: make([]DocumentStats, len(sources))}
	if len(sources) == 0 {
		return ids, report
	}

	workers := e.Workers
	if workers > len(sources) {
		workers = len(sources)
	}

	if workers <= 1 {
		for i, src := range sources {
			report.Documents[i] = scanDocument(src, ids, log)
		}
	} else {
		// Each worker writes only its own report slot; the Set is shared.
		done := make(chan struct{}, len(sources))
		sem := make(chan struct{}, workers)

		for i, src := range sources {
			sem <- struct{}{} // acquire
			go func(i int, src document.Source) {
				defer func() { <-sem }() // release
				report.Documents[i] = scanDocument(src, ids, log)
				done <- struct{}{}
			}(i, src)
		}

		for range sources {
			<-done
		}
	}

	skipped := len(report.Skipped())
	log.Info("extraction complete",
		"documents", len(sources),
		"skipped", skipped,
		"pages", report.Pages(),
		"identifiers", ids.Len())

	return ids, report
}

// scanDocument reads one document page by page into ids.
func scanDocument(src document.Source, ids *lpn.Set, log *slog.Logger) (stats DocumentStats) {
	stats = DocumentStats{Name: src.Name()}

	// A panicking Document implementation loses only its own document.
	defer func() {
		if rec := recover(); rec != nil {
			err := &document.ReadError{Name: src.Name(), Err: fmt.Errorf("panic: %v", rec)}
			stats = DocumentStats{Name: src.Name(), Skipped: true, Error: err.Error(), err: err}
			log.Warn("skipping unreadable document", "document", src.Name(), "error", err)
		}
	}()

	doc, err := src.Open()
	if err != nil {
		var readErr *document.ReadError
		if !errors.As(err, &readErr) {
			err = &document.ReadError{Name: src.Name(), Err: err}
		}
		stats.Skipped = true
		stats.Error = err.Error()
		stats.err = err
		log.Warn("skipping unreadable document", "document", src.Name(), "error", err)
		return stats
	}

	stats.Pages = doc.NumPage()
	for i := 1; i <= stats.Pages; i++ {
		text, err := doc.PageText(i)
		if err != nil {
			log.Debug("skipping unreadable page", "document", src.Name(), "page", i, "error", err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		stats.PagesWithText++
		stats.Identifiers += ids.AddText(text)
	}

	log.Debug("document scanned",
		"document", src.Name(),
		"pages", stats.Pages,
		"pages_with_text", stats.PagesWithText,
		"identifiers", stats.Identifiers)

	return stats
}

// TableHeader and TableRows render the report one document per row.
func (r *Report) TableHeader() []string {
	return []string{"DOCUMENT", "PAGES", "WITH TEXT", "LPNS", "STATUS"}
}

func (r *Report) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Documents))
	for _, d := range r.Documents {
		status := "ok"
		if d.Skipped {
			status = "skipped: " + d.Error
		}
		rows = append(rows, []string{
			d.Name,
			strconv.Itoa(d.Pages),
			strconv.Itoa(d.PagesWithText),
			strconv.Itoa(d.Identifiers),
			status,
		})
	}
	return rows
}
