// Package fileslot stores the slot as a JSON file in the config directory.
package fileslot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"netlist/internal/storage"
)

// Slot is a file-backed storage slot.
type Slot struct {
	path string
}

// New returns a slot stored at <dir>/<name>.json.
func New(dir, name string) *Slot {
	return &Slot{path: filepath.Join(dir, name+".json")}
}

// Path returns the file path.
func (s *Slot) Path() string { return s.path }

// Read implements storage.Slot.
func (s *Slot) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrEmptySlot
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Write implements storage.Slot.
// The file is replaced atomically via a temp file in the same directory.
func (s *Slot) Write(ctx context.Context, data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create slot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		return err
	}
	return os.Rename(tmpName, s.path)
}

// Close implements storage.Slot.
func (s *Slot) Close() error { return nil }
