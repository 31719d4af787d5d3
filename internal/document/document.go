// Package document abstracts the receipt documents identifiers are read from.
//
// The extractor only needs "text of page i". Where the bytes come from
// (a local path, an uploaded buffer) is the job of a Source.
package document

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// Document is an opened, read-only document organized in pages.
type Document interface {
	// NumPage returns the number of pages.
	NumPage() int

	// PageText returns the best-effort text of page i (1-indexed).
	// A page without extractable text returns "" and a nil error.
	PageText(i int) (string, error)
}

// Source is a named handle that can be opened into a Document.
type Source interface {
	Name() string
	Open() (Document, error)
}

// ReadError reports a document that could not be opened or decoded.
// It is recoverable: the document is skipped and extraction continues.
type ReadError struct {
	Name string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("document %s: %v", e.Name, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// fileSource opens a PDF from the local filesystem.
type fileSource struct {
	path string
}

// File returns a Source reading the PDF at path.
func File(path string) Source {
	return &fileSource{path: path}
}

// Files returns one Source per path, in order.
func Files(paths ...string) []Source {
	sources := make([]Source, len(paths))
	for i, p := range paths {
		sources[i] = File(p)
	}
	return sources
}

func (s *fileSource) Name() string { return filepath.Base(s.path) }

func (s *fileSource) Open() (Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &ReadError{Name: s.Name(), Err: err}
	}
	return openPDF(s.Name(), data)
}

// bytesSource opens a PDF held in memory, e.g. an uploaded file.
type bytesSource struct {
	name string
	data []byte
}

// Bytes returns a Source over an in-memory PDF.
func Bytes(name string, data []byte) Source {
	return &bytesSource{name: name, data: data}
}

func (s *bytesSource) Name() string { return s.name }

func (s *bytesSource) Open() (Document, error) {
	return openPDF(s.name, s.data)
}

func openPDF(name string, data []byte) (Document, error) {
	doc, err := OpenPDF(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ReadError{Name: name, Err: err}
	}
	return doc, nil
}
