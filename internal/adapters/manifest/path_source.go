package manifest

import (
	"os"
	"path/filepath"

	"github.com/Baltazore/hex/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DirSource implements ports.PathSource by reading the manifest inside a
// path dependency's directory.
type DirSource struct {
	Filename string
}

// NewDirSource creates a path source using the default manifest file name.
func NewDirSource() *DirSource {
	return &DirSource{Filename: DefaultFilename}
}

// ReadManifest returns the raw dependency declarations of the package rooted
// at dir. A missing directory is ErrPathNotFound; a missing or unreadable
// manifest inside an existing directory is ErrInvalidManifest, since a path
// dependency without a manifest cannot declare what it needs.
func (s *DirSource) ReadManifest(dir string) ([]domain.RawRequirement, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, zerr.With(domain.ErrPathNotFound, "path", dir)
	}

	path := filepath.Join(dir, s.Filename)
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		err = zerr.With(domain.ErrInvalidManifest, "path", path)
		return nil, zerr.With(err, "reason", "manifest not readable")
	}

	var hexfile Hexfile
	if err := yaml.Unmarshal(data, &hexfile); err != nil {
		wrapped := zerr.With(domain.ErrInvalidManifest, "path", path)
		return nil, zerr.With(wrapped, "reason", err.Error())
	}

	raws, err := decodeDeps(hexfile.Deps, dir)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return raws, nil
}
