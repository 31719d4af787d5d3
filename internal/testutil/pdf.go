// Package testutil builds fixtures for tests: small PDFs, xlsx workbooks
// and throwaway servers.
package testutil

import (
	"bytes"
	"fmt"
	"strings"
)

// PDF builds a minimal single-font PDF. Each element of pages is one
// page; lines within a page are separated by "\n". An empty string
// produces a page with no text at all.
func PDF(pages ...string) []byte {
	var objects []string

	// 1: catalog, 2: page tree, 3: font. Pages and their content
	// streams follow in pairs.
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	)

	for i, text := range pages {
		contentNum := 5 + 2*i
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
				"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", contentNum),
			contentStream(text),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

func contentStream(text string) string {
	var ops strings.Builder
	if text != "" {
		y := 720
		for _, line := range strings.Split(text, "\n") {
			fmt.Fprintf(&ops, "BT /F1 12 Tf 72 %d Td (%s ) Tj ET\n", y, escapePDFString(line))
			y -= 16
		}
	}
	body := ops.String()
	return fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", len(body), body)
}

func escapePDFString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
