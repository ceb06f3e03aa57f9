package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/five82/quoter/internal/syncer"
)

// QueueFileName is the conflict queue file inside the data directory.
const QueueFileName = "conflicts.json"

var _ syncer.QueueStore = (*QueueFile)(nil)

// QueueFile stores the sync conflict queue at Path.
type QueueFile struct {
	Path string
}

// NewQueueFile returns a QueueFile rooted at dataDir.
func NewQueueFile(dataDir string) *QueueFile {
	return &QueueFile{Path: filepath.Join(dataDir, QueueFileName)}
}

// LoadQueue returns the stored queue. A missing or empty file is an empty queue.
func (f *QueueFile) LoadQueue() (syncer.QueueState, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return syncer.QueueState{}, nil
		}
		return syncer.QueueState{}, fmt.Errorf("read conflicts: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return syncer.QueueState{}, nil
	}

	var st syncer.QueueState
	if err := json.Unmarshal(data, &st); err != nil {
		return syncer.QueueState{}, fmt.Errorf("parse conflicts %s: %w", f.Path, err)
	}
	return st, nil
}

// SaveQueue writes st atomically, creating the data directory as needed.
func (f *QueueFile) SaveQueue(st syncer.QueueState) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal conflicts: %w", err)
	}
	if err := writeFileAtomic(f.Path, append(data, '\n')); err != nil {
		return fmt.Errorf("save conflicts: %w", err)
	}
	return nil
}
