package capsule

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store is the persistence boundary for the capsule's exported payload.
// The capsule itself never touches storage; a daemon or sync layer moves
// snapshots through a Store at times of its choosing.
type Store interface {
	// Save persists an encoded snapshot.
	Save(data []byte) error

	// Load retrieves the stored snapshot, or nil if none exists yet.
	Load() ([]byte, error)

	// Close releases any resources held by the store.
	Close() error
}

// JSONStore implements Store against a single JSON file.
type JSONStore struct {
	Path string
}

// NewJSONStore creates a file-backed store.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{Path: path}
}

// Save writes the snapshot file, creating parent directories as needed.
func (s *JSONStore) Save(data []byte) error {
	if s.Path == "" {
		return nil
	}
	if dir := filepath.Dir(s.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("capsule: create directory: %w", err)
		}
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("capsule: write snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot file. A missing file is not an error.
func (s *JSONStore) Load() ([]byte, error) {
	if s.Path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("capsule: read snapshot: %w", err)
	}
	return data, nil
}

// Close is a no-op for file stores.
func (s *JSONStore) Close() error { return nil }

var _ Store = (*JSONStore)(nil)

// SaveTo exports the capsule and writes it through the store.
func (c *Capsule) SaveTo(store Store) error {
	data, err := json.MarshalIndent(c.Export(), "", "  ")
	if err != nil {
		return fmt.Errorf("capsule: encode snapshot: %w", err)
	}
	return store.Save(data)
}

// LoadFrom reads a snapshot through the store and imports it, replacing the
// capsule's contents. An empty store leaves the capsule untouched.
func (c *Capsule) LoadFrom(store Store) error {
	data, err := store.Load()
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("capsule: decode snapshot: %w", err)
	}
	c.Import(snap)
	return nil
}
