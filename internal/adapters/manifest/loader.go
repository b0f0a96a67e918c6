// Package manifest reads hex.yaml project manifests, for the root project and
// for path-sourced dependencies alike.
package manifest

import (
	"os"
	"path/filepath"

	"github.com/Baltazore/hex/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// FileLoader implements ports.ManifestLoader using a YAML file.
type FileLoader struct {
	Filename string
}

// NewFileLoader creates a loader for the default manifest file name.
func NewFileLoader() *FileLoader {
	return &FileLoader{Filename: DefaultFilename}
}

// Load reads the project manifest from the given working directory and
// normalizes its dependency declarations as root requirements.
func (l *FileLoader) Load(cwd string) (*domain.ProjectManifest, error) {
	path := filepath.Join(cwd, l.Filename)

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read manifest")
	}

	var hexfile Hexfile
	if err := yaml.Unmarshal(data, &hexfile); err != nil {
		err = zerr.Wrap(err, "failed to parse manifest")
		return nil, zerr.With(err, "path", path)
	}

	raws, err := decodeDeps(hexfile.Deps, cwd)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	reqs := make([]domain.Requirement, 0, len(raws))
	for _, raw := range raws {
		req, err := domain.NormalizeRequirement(raw, domain.Root)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}

	return &domain.ProjectManifest{
		Name:         hexfile.Name,
		Requirements: reqs,
	}, nil
}
