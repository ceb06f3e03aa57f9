// Package storage persists the local quote list and the sync conflict queue
// as JSON files in the data directory.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/five82/quoter/internal/quotes"
)

// FileName is the quote file inside the data directory.
const FileName = "quotes.json"

// FileStore reads and writes the quote list at Path.
type FileStore struct {
	Path string
}

// New returns a FileStore rooted at dataDir.
func New(dataDir string) *FileStore {
	return &FileStore{Path: filepath.Join(dataDir, FileName)}
}

// Load returns the stored quotes. A missing file yields the seed quotes.
// Entries without an ID are given one so they can take part in sync.
func (s *FileStore) Load() ([]quotes.Quote, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return quotes.Defaults(), nil
		}
		return nil, fmt.Errorf("read quotes: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return quotes.Defaults(), nil
	}

	var list []quotes.Quote
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse quotes %s: %w", s.Path, err)
	}
	quotes.EnsureIDs(list)
	return list, nil
}

// Save writes list atomically, creating the data directory as needed.
func (s *FileStore) Save(list []quotes.Quote) error {
	if list == nil {
		list = []quotes.Quote{}
	}
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal quotes: %w", err)
	}
	if err := writeFileAtomic(s.Path, append(data, '\n')); err != nil {
		return fmt.Errorf("save quotes: %w", err)
	}
	return nil
}

// writeFileAtomic replaces path with data through a temp file in the same dir.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace: %w", err)
	}
	return nil
}
