// Package artifact persists enriched datasets as named, dated snapshots and
// enforces the one-artifact-per-input-per-day rule.
package artifact

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"ReviewMiner/internal/dataset"
)

// Store writes output artifacts into a single directory. Artifacts are
// created once per (base input name, processing date) and never mutated or
// deleted afterwards.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore ensures the output directory exists.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Name derives the deterministic artifact file name for an input file and a
// processing date, keeping the input's extension.
func Name(inputName string, processedAt time.Time) string {
	base := filepath.Base(inputName)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("%s_updated_reviews_%s%s", stem, processedAt.Format("2006-01-02"), ext)
}

// Exists reports whether the artifact for this identity key is already on disk.
func (s *Store) Exists(inputName string, processedAt time.Time) bool {
	_, err := os.Stat(filepath.Join(s.dir, Name(inputName, processedAt)))
	return err == nil
}

// WriteResult describes where an artifact lives and whether a pre-existing
// one was kept instead of writing fresh output.
type WriteResult struct {
	Name string
	Path string
	Kept bool
}

// WriteOnce persists the enriched dataset unless an artifact with the same
// derived name already exists. An existing artifact is kept untouched and
// offered back to the caller; the new output is discarded. This is
// informational, not an error.
func (s *Store) WriteOnce(d *dataset.Dataset, inputName string, processedAt time.Time) (WriteResult, error) {
	name := Name(inputName, processedAt)
	path := filepath.Join(s.dir, name)

	if _, err := os.Stat(path); err == nil {
		if s.logger != nil {
			s.logger.Info("artifact already exists, keeping it", "artifact", name)
		}
		return WriteResult{Name: name, Path: path, Kept: true}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return WriteResult{}, fmt.Errorf("create artifact %s: %w", name, err)
	}
	if err := dataset.WriteCSV(f, d); err != nil {
		_ = f.Close()
		return WriteResult{}, fmt.Errorf("write artifact %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return WriteResult{}, fmt.Errorf("close artifact %s: %w", name, err)
	}

	if s.logger != nil {
		s.logger.Info("artifact written", "artifact", name, "rows", d.Len())
	}
	return WriteResult{Name: name, Path: path}, nil
}

// List returns the artifact file names currently in the store, sorted,
// for file-picker surfaces.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read output dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
