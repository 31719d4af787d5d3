package document

import (
	"errors"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// ErrEmpty is returned when a document has no bytes at all.
var ErrEmpty = errors.New("empty document")

// pdfDocument reads page text with ledongthuc/pdf.
type pdfDocument struct {
	r     *pdf.Reader
	pages int
}

// OpenPDF parses a PDF from r. The parser can panic on badly damaged
// files; that is reported as an error for this document only. The page
// tree is resolved here, so a damaged catalog fails at open time.
func OpenPDF(r io.ReaderAt, size int64) (doc Document, err error) {
	if size == 0 {
		return nil, ErrEmpty
	}

	defer func() {
		if rec := recover(); rec != nil {
			doc = nil
			err = fmt.Errorf("malformed pdf: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return &pdfDocument{r: reader, pages: reader.NumPage()}, nil
}

func (d *pdfDocument) NumPage() int {
	return d.pages
}

func (d *pdfDocument) PageText(i int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("page %d: %v", i, rec)
		}
	}()

	if i < 1 || i > d.pages {
		return "", fmt.Errorf("page %d out of range (1-%d)", i, d.pages)
	}

	page := d.r.Page(i)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}
