package api

import (
	"bytes"
	"strings"
	"testing"
)

type rows struct{}

func (rows) TableHeader() []string { return []string{"NAME", "COUNT"} }
func (rows) TableRows() [][]string { return [][]string{{"a.pdf", "3"}, {"b.pdf"}} }

func TestOutputTo(t *testing.T) {
	data := map[string]int{"matched": 2}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatJSON, data); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), `"matched": 2`) {
			t.Errorf("json output = %q", buf.String())
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatYAML, data); err != nil {
			t.Fatal(err)
		}
		if strings.TrimSpace(buf.String()) != "matched: 2" {
			t.Errorf("yaml output = %q", buf.String())
		}
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatTable, rows{}); err != nil {
			t.Fatal(err)
		}
		out := buf.String()
		for _, want := range []string{"NAME", "COUNT", "a.pdf", "b.pdf"} {
			if !strings.Contains(out, want) {
				t.Errorf("table output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("table falls back to yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatTable, data); err != nil {
			t.Fatal(err)
		}
		if strings.TrimSpace(buf.String()) != "matched: 2" {
			t.Errorf("fallback output = %q", buf.String())
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if err := OutputTo(&bytes.Buffer{}, OutputFormat("xml"), data); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}

func TestSetOutputFormat(t *testing.T) {
	defer SetOutputFormat("yaml")

	tests := []struct {
		in   string
		want OutputFormat
	}{
		{"json", OutputFormatJSON},
		{"yaml", OutputFormatYAML},
		{"table", OutputFormatTable},
		{"bogus", DefaultOutput},
	}
	for _, tt := range tests {
		SetOutputFormat(tt.in)
		if got := GetOutputFormat(); got != tt.want {
			t.Errorf("SetOutputFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderTable(t *testing.T) {
	if got := RenderTable(nil, nil); got != "" {
		t.Errorf("RenderTable(nil) = %q, want empty", got)
	}

	out := RenderTable([]string{"DOCUMENT", "LPNS"}, [][]string{{"r.pdf", "12"}}, "LPNS")
	if !strings.Contains(out, "r.pdf") || !strings.Contains(out, "12") {
		t.Errorf("RenderTable() = %q", out)
	}
}

func TestIsTerminal_Buffer(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
}
