package manifest

import (
	"path/filepath"

	"github.com/Baltazore/hex/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the manifest file name looked up in a project directory.
const DefaultFilename = "hex.yaml"

// Hexfile represents the structure of the hex.yaml manifest file. Deps stays
// a raw yaml.Node so declaration order survives decoding; a Go map would
// shuffle it and make resolution order nondeterministic.
type Hexfile struct {
	Name string    `yaml:"name"`
	Deps yaml.Node `yaml:"deps"`
}

// DepDTO represents one dependency declaration in the manifest.
type DepDTO struct {
	Requirement string `yaml:"requirement"`
	// Package is the registry name when it differs from the dependency alias.
	Package  string `yaml:"package"`
	Path     string `yaml:"path"`
	Optional bool   `yaml:"optional"`
	Override bool   `yaml:"override"`
}

// UnmarshalYAML accepts the scalar shorthand `name: "~> 1.0"` next to the
// full mapping form.
func (d *DepDTO) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&d.Requirement)
	}
	type plain DepDTO
	return value.Decode((*plain)(d))
}

// decodeDeps flattens the deps mapping into raw requirements in declaration
// order. Relative path dependencies are resolved against baseDir, so nested
// path manifests point where their author meant regardless of the resolver's
// working directory.
func decodeDeps(deps yaml.Node, baseDir string) ([]domain.RawRequirement, error) {
	if deps.Kind == 0 || deps.IsZero() {
		return nil, nil
	}
	if deps.Kind != yaml.MappingNode {
		return nil, zerr.With(domain.ErrInvalidManifest, "reason", "deps must be a mapping")
	}

	raws := make([]domain.RawRequirement, 0, len(deps.Content)/2)
	for i := 0; i+1 < len(deps.Content); i += 2 {
		keyNode, valueNode := deps.Content[i], deps.Content[i+1]

		var name string
		if err := keyNode.Decode(&name); err != nil {
			return nil, zerr.Wrap(err, "failed to decode dependency name")
		}

		var dto DepDTO
		if err := valueNode.Decode(&dto); err != nil {
			err = zerr.Wrap(err, "failed to decode dependency")
			return nil, zerr.With(err, "dependency", name)
		}

		path := dto.Path
		if path != "" && !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}

		raws = append(raws, domain.RawRequirement{
			Name:        name,
			PublishedAs: dto.Package,
			Constraint:  dto.Requirement,
			Path:        path,
			Optional:    dto.Optional,
			Override:    dto.Override,
		})
	}
	return raws, nil
}
