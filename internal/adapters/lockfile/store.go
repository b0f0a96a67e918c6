// Package lockfile persists resolution results as a flat JSON lock file.
package lockfile

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Baltazore/hex/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultFilename is the lock file name next to the project manifest.
const DefaultFilename = "hex.lock"

// Store implements ports.LockStore using a JSON file. Marshaling goes through
// json.MarshalIndent, which sorts map keys, so the same resolution always
// produces byte-identical lock contents.
type Store struct {
	path string
}

// NewStore creates a lock store backed by the file at the given path.
func NewStore(path string) *Store {
	return &Store{path: filepath.Clean(path)}
}

// Read loads the lock file. A missing file is not an error; it returns
// (nil, nil) so resolution runs unlocked.
func (s *Store) Read() (*domain.Lockfile, error) {
	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, "failed to read lock file")
	}
	if len(data) == 0 {
		return nil, nil
	}

	var lock domain.Lockfile
	if err := json.Unmarshal(data, &lock); err != nil {
		err = zerr.Wrap(err, "failed to parse lock file")
		return nil, zerr.With(err, "path", s.path)
	}
	return &lock, nil
}

// Write replaces the lock file atomically: the new contents land in a
// temporary file first and are renamed over the old lock, so a crash never
// leaves a half-written lock behind.
func (s *Store) Write(lock *domain.Lockfile) error {
	data, err := json.MarshalIndent(lock, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal lock file")
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp*")
	if err != nil {
		return zerr.Wrap(err, "failed to create temporary lock file")
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, "failed to write lock file")
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, "failed to close temporary lock file")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return zerr.Wrap(err, "failed to replace lock file")
	}
	return nil
}
