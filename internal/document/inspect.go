package document

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Info describes a PDF as seen by pdfcpu, independent of text extraction.
type Info struct {
	Name      string `json:"name" yaml:"name"`
	PageCount int    `json:"page_count" yaml:"page_count"`
	Valid     bool   `json:"valid" yaml:"valid"`
	Problem   string `json:"problem,omitempty" yaml:"problem,omitempty"`
}

// Inspect validates the PDF structure and counts its pages.
// A structural problem is reported in Info rather than as an error,
// since the text backend may still be able to read the file.
func Inspect(name string, data []byte) Info {
	info := Info{Name: name}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.Validate(bytes.NewReader(data), conf); err != nil {
		info.Problem = err.Error()
	} else {
		info.Valid = true
	}

	count, err := api.PageCount(bytes.NewReader(data), conf)
	if err != nil {
		if info.Problem == "" {
			info.Problem = err.Error()
		}
		return info
	}
	info.PageCount = count
	return info
}

// InspectFile reads path and inspects it.
func InspectFile(path string) (Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Info{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Inspect(filepath.Base(path), data), nil
}
