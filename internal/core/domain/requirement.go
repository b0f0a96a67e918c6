package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// SourceKind names where a package's contents come from.
type SourceKind string

const (
	// SourceRegistry marks packages fetched from the package registry.
	SourceRegistry SourceKind = "registry"
	// SourcePath marks packages taken from a local directory.
	SourcePath SourceKind = "path"
)

// Source identifies where a requirement expects its package to come from.
type Source struct {
	Kind SourceKind
	// Path is the directory of a path source, empty for registry sources.
	Path string
}

// RegistrySource returns the registry source.
func RegistrySource() Source {
	return Source{Kind: SourceRegistry}
}

// NewPathSource returns a path source rooted at dir.
func NewPathSource(dir string) Source {
	return Source{Kind: SourcePath, Path: dir}
}

// RawRequirement is a dependency declaration as it appears in a manifest or
// in registry metadata, before normalization.
type RawRequirement struct {
	// Name is the local dependency alias.
	Name string
	// PublishedAs is the registry package name when it differs from the alias.
	PublishedAs string
	// Constraint is the version constraint expression, empty for pure path deps.
	Constraint string
	// Path is the directory of a path dependency, empty for registry deps.
	Path string
	// Optional marks the dependency as fetched only when some mandatory path needs it.
	Optional bool
	// Override marks the declaration as unconditionally determining the package's source.
	Override bool
}

// Requirement is one normalized, immutable constraint on a package, tagged
// with its origin. Requirements are created fresh each resolution run and
// never mutated; merging produces new records.
type Requirement struct {
	// Requestor is the package that declared the requirement, or Root.
	Requestor PackageIdentity
	// Package is the identity the requirement constrains.
	Package PackageIdentity
	// RegistryName is the name used to query the registry. It equals the
	// alias unless the declaration carried an explicit published-as name.
	RegistryName string
	// Constraint is the version constraint; zero for path sources.
	Constraint Constraint
	// Source is where the package is expected to come from.
	Source Source
	// Optional requirements only constrain resolution once the package is
	// reached through some mandatory edge.
	Optional bool
	// Override requirements win their package outright, discarding all other
	// requirements for the same identity.
	Override bool
}

// NormalizeRequirement turns a raw declaration into a canonical Requirement.
// It is a pure transform; the only failure mode is ErrInvalidDeclaration.
func NormalizeRequirement(raw RawRequirement, requestor PackageIdentity) (Requirement, error) {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return Requirement{}, declErr("dependency name is empty", raw, requestor)
	}

	constraint := strings.TrimSpace(raw.Constraint)
	path := strings.TrimSpace(raw.Path)

	if path == "" && constraint == "" {
		return Requirement{}, declErr("declaration needs a requirement or a path", raw, requestor)
	}
	// An override pointing at a path cannot also pin a registry constraint:
	// the path has exactly one candidate, so the constraint could never be
	// negotiated and the declaration is unsatisfiable by construction.
	if raw.Override && path != "" && constraint != "" {
		return Requirement{}, declErr("override with a path cannot carry a version requirement", raw, requestor)
	}

	req := Requirement{
		Requestor:    requestor,
		Package:      NewPackageIdentity(name),
		RegistryName: name,
		Source:       RegistrySource(),
		Optional:     raw.Optional,
		Override:     raw.Override,
	}
	if raw.PublishedAs != "" {
		req.RegistryName = raw.PublishedAs
	}
	if path != "" {
		req.Source = NewPathSource(path)
	}
	if constraint != "" {
		c, err := ParseConstraint(constraint)
		if err != nil {
			return Requirement{}, zerr.With(zerr.With(ErrInvalidDeclaration, "dependency", name), "cause", err.Error())
		}
		req.Constraint = c
	}
	return req, nil
}

func declErr(reason string, raw RawRequirement, requestor PackageIdentity) error {
	err := zerr.With(ErrInvalidDeclaration, "reason", reason)
	err = zerr.With(err, "dependency", raw.Name)
	return zerr.With(err, "requestor", requestor.String())
}

// ProjectManifest is the root project's normalized dependency declarations.
type ProjectManifest struct {
	// Name is the project name, used for display only.
	Name string
	// Requirements are the root requirements in declaration order.
	Requirements []Requirement
}
