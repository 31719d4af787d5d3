package match

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackzampolin/lpnmatch/internal/table"
)

// Save writes the annotated table into dir under OutputName and returns
// the full path. An empty dir means the directory of tablePath.
func (r *Result) Save(tablePath, dir string) (string, error) {
	if dir == "" {
		dir = filepath.Dir(tablePath)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, r.OutputName)
	if err := table.WriteFile(path, r.Table); err != nil {
		return "", err
	}
	return path, nil
}
