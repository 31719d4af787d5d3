// Package results keeps annotated reports produced by the server until
// they are downloaded or expire.
//
// Each result lives in its own directory under the store root:
//
//	{root}/{id}/meta.json
//	{root}/{id}/{output_name}
//
// Results survive a server restart; Open reloads whatever is on disk.
package results

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jackzampolin/lpnmatch/internal/extract"
	"github.com/jackzampolin/lpnmatch/internal/match"
	"github.com/jackzampolin/lpnmatch/internal/table"
)

const metaFileName = "meta.json"

// ErrNotFound is returned for unknown or expired result IDs.
var ErrNotFound = errors.New("result not found")

// Entry describes one stored result.
type Entry struct {
	ID         string                  `json:"id" yaml:"id"`
	TableName  string                  `json:"table_name" yaml:"table_name"`
	OutputName string                  `json:"output_name" yaml:"output_name"`
	CreatedAt  time.Time               `json:"created_at" yaml:"created_at"`
	ExpiresAt  time.Time               `json:"expires_at" yaml:"expires_at"`
	Summary    match.Summary           `json:"summary" yaml:"summary"`
	Documents  []extract.DocumentStats `json:"documents" yaml:"documents"`
}

// Store is a directory-backed result store. Safe for concurrent use.
type Store struct {
	root   string
	logger *slog.Logger
	now    func() time.Time

	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]*Entry
}

// Open creates root if needed and loads existing results from it.
// Directories without a readable meta.json are left alone.
func Open(root string, ttl time.Duration, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}

	s := &Store{
		root:    root,
		logger:  logger,
		now:     time.Now,
		ttl:     ttl,
		entries: make(map[string]*Entry),
	}

	dirs, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read results directory: %w", err)
	}
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		entry, err := readMeta(filepath.Join(root, d.Name(), metaFileName))
		if err != nil {
			logger.Debug("ignoring result directory", "dir", d.Name(), "error", err)
			continue
		}
		s.entries[entry.ID] = entry
	}
	if n := len(s.entries); n > 0 {
		logger.Info("loaded stored results", "count", n)
	}
	return s, nil
}

// SetTTL changes the lifetime applied to results saved from now on.
func (s *Store) SetTTL(ttl time.Duration) {
	s.mu.Lock()
	s.ttl = ttl
	s.mu.Unlock()
}

// TTL returns the lifetime applied to new results.
func (s *Store) TTL() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ttl
}

// Save writes res under a new ID and returns its entry.
func (s *Store) Save(tableName string, res *match.Result) (*Entry, error) {
	now := s.now().UTC()
	entry := &Entry{
		ID:         uuid.NewString(),
		TableName:  tableName,
		OutputName: res.OutputName,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.TTL()),
		Summary:    res.Summary,
		Documents:  res.Report.Documents,
	}

	dir := filepath.Join(s.root, entry.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create result directory: %w", err)
	}
	if err := table.WriteFile(filepath.Join(dir, entry.OutputName), res.Table); err != nil {
		os.RemoveAll(dir)
		return nil, err
	}
	if err := writeMeta(filepath.Join(dir, metaFileName), entry); err != nil {
		os.RemoveAll(dir)
		return nil, err
	}

	s.mu.Lock()
	s.entries[entry.ID] = entry
	s.mu.Unlock()

	s.logger.Info("stored match result", "id", entry.ID, "output", entry.OutputName, "expires_at", entry.ExpiresAt)
	return entry, nil
}

// Get returns the entry for id. Expired entries are reported as missing
// even before the sweeper removes them.
func (s *Store) Get(id string) (*Entry, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok || !s.now().Before(entry.ExpiresAt) {
		return nil, ErrNotFound
	}
	return entry, nil
}

// Path returns the location of the annotated workbook for entry.
func (s *Store) Path(entry *Entry) string {
	return filepath.Join(s.root, entry.ID, entry.OutputName)
}

// List returns live entries, newest first.
func (s *Store) List() []*Entry {
	now := s.now()
	s.mu.RLock()
	out := make([]*Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if now.Before(e.ExpiresAt) {
			out = append(out, e)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Delete removes a result and its files.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	_, ok := s.entries[id]
	delete(s.entries, id)
	s.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	if err := os.RemoveAll(filepath.Join(s.root, id)); err != nil {
		return fmt.Errorf("failed to remove result %s: %w", id, err)
	}
	return nil
}

// Sweep deletes every expired result and returns how many were removed.
func (s *Store) Sweep() int {
	now := s.now()
	var expired []string

	s.mu.Lock()
	for id, e := range s.entries {
		if !now.Before(e.ExpiresAt) {
			expired = append(expired, id)
			delete(s.entries, id)
		}
	}
	s.mu.Unlock()

	for _, id := range expired {
		if err := os.RemoveAll(filepath.Join(s.root, id)); err != nil {
			s.logger.Warn("failed to remove expired result", "id", id, "error", err)
		}
	}
	if len(expired) > 0 {
		s.logger.Info("swept expired results", "count", len(expired))
	}
	return len(expired)
}

// Run sweeps expired results every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.Sweep()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func readMeta(path string) (*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", metaFileName, err)
	}
	if entry.ID == "" || entry.OutputName == "" {
		return nil, fmt.Errorf("incomplete %s", metaFileName)
	}
	return &entry, nil
}

func writeMeta(path string, entry *Entry) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write result metadata: %w", err)
	}
	return nil
}
