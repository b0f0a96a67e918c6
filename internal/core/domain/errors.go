package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidDeclaration is returned when a dependency declaration is malformed.
	ErrInvalidDeclaration = zerr.New("invalid dependency declaration")

	// ErrConflictingOverride is returned when two overrides for the same package disagree.
	ErrConflictingOverride = zerr.New("conflicting overrides")

	// ErrUnsatisfiable is returned when no version satisfies all requirements for a package.
	ErrUnsatisfiable = zerr.New("no version satisfies all requirements")

	// ErrNameConflict is returned when requirements for one package resolve to
	// different registry packages.
	ErrNameConflict = zerr.New("registry name conflict")

	// ErrPathNotFound is returned when a path dependency's directory does not exist.
	ErrPathNotFound = zerr.New("path dependency not found")

	// ErrInvalidManifest is returned when a manifest cannot be parsed.
	ErrInvalidManifest = zerr.New("invalid manifest")

	// ErrPackageNotFound is returned when the registry has no package with the requested name.
	ErrPackageNotFound = zerr.New("package not found in registry")

	// ErrMalformedMetadata is returned when registry metadata cannot be decoded.
	ErrMalformedMetadata = zerr.New("malformed registry metadata")
)
