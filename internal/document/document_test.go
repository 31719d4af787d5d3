package document

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackzampolin/lpnmatch/internal/testutil"
)

func TestBytesSource_Open(t *testing.T) {
	data := testutil.PDF("RECEIPT 20000000", "", "LPN 30000000\nLPN 40000000")

	src := Bytes("receipt.pdf", data)
	if src.Name() != "receipt.pdf" {
		t.Errorf("Name() = %q, want receipt.pdf", src.Name())
	}

	doc, err := src.Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if doc.NumPage() != 3 {
		t.Fatalf("NumPage() = %d, want 3", doc.NumPage())
	}

	t.Run("page with text", func(t *testing.T) {
		text, err := doc.PageText(1)
		if err != nil {
			t.Fatalf("PageText(1) error = %v", err)
		}
		if !strings.Contains(text, "20000000") {
			t.Errorf("PageText(1) = %q, want it to contain 20000000", text)
		}
	})

	t.Run("page without text", func(t *testing.T) {
		text, err := doc.PageText(2)
		if err != nil {
			t.Fatalf("PageText(2) error = %v", err)
		}
		if strings.TrimSpace(text) != "" {
			t.Errorf("PageText(2) = %q, want empty", text)
		}
	})

	t.Run("multi line page", func(t *testing.T) {
		text, err := doc.PageText(3)
		if err != nil {
			t.Fatalf("PageText(3) error = %v", err)
		}
		for _, want := range []string{"30000000", "40000000"} {
			if !strings.Contains(text, want) {
				t.Errorf("PageText(3) = %q, want it to contain %s", text, want)
			}
		}
	})

	t.Run("out of range", func(t *testing.T) {
		if _, err := doc.PageText(0); err == nil {
			t.Error("expected error for page 0")
		}
		if _, err := doc.PageText(4); err == nil {
			t.Error("expected error for page 4")
		}
	})
}

func TestOpen_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"not a pdf", []byte(strings.Repeat("this is not a pdf document ", 10))},
		{"truncated", testutil.PDF("20000000")[:60]},
		{"damaged catalog", bytes.Replace(testutil.PDF("20000000"), []byte("1 0 obj"), []byte("9 9 xbj"), 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Bytes("bad.pdf", tt.data).Open()
			if err == nil {
				t.Fatal("expected error")
			}
			var readErr *ReadError
			if !errors.As(err, &readErr) {
				t.Fatalf("error %T is not *ReadError", err)
			}
			if readErr.Name != "bad.pdf" {
				t.Errorf("ReadError.Name = %q, want bad.pdf", readErr.Name)
			}
		})
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "receipt-1.pdf")
	if err := os.WriteFile(path, testutil.PDF("20000000"), 0o644); err != nil {
		t.Fatalf("failed to write pdf: %v", err)
	}

	t.Run("opens existing file", func(t *testing.T) {
		src := File(path)
		if src.Name() != "receipt-1.pdf" {
			t.Errorf("Name() = %q, want receipt-1.pdf", src.Name())
		}
		doc, err := src.Open()
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		if doc.NumPage() != 1 {
			t.Errorf("NumPage() = %d, want 1", doc.NumPage())
		}
	})

	t.Run("missing file is a read error", func(t *testing.T) {
		_, err := File(filepath.Join(dir, "missing.pdf")).Open()
		var readErr *ReadError
		if !errors.As(err, &readErr) {
			t.Fatalf("expected *ReadError, got %v", err)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected wrapped os.ErrNotExist, got %v", err)
		}
	})

	t.Run("Files keeps order", func(t *testing.T) {
		sources := Files("/a/one.pdf", "/b/two.pdf")
		if len(sources) != 2 || sources[0].Name() != "one.pdf" || sources[1].Name() != "two.pdf" {
			t.Errorf("unexpected sources: %v", sources)
		}
	})
}

func TestInspect(t *testing.T) {
	t.Run("counts pages", func(t *testing.T) {
		info := Inspect("receipt.pdf", testutil.PDF("20000000", "30000000"))
		if info.PageCount != 2 {
			t.Errorf("PageCount = %d, want 2 (problem: %s)", info.PageCount, info.Problem)
		}
		if info.Name != "receipt.pdf" {
			t.Errorf("Name = %q, want receipt.pdf", info.Name)
		}
	})

	t.Run("reports garbage", func(t *testing.T) {
		info := Inspect("bad.pdf", []byte("garbage"))
		if info.Valid {
			t.Error("garbage should not be valid")
		}
		if info.Problem == "" {
			t.Error("expected a problem description")
		}
	})
}
