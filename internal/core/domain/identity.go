// Package domain contains the data model for dependency resolution:
// requirements, candidates, resolutions, and the lock file.
package domain

import "unique"

// PackageIdentity is the stable key that unifies all requirements for the same
// dependency across the graph. It is derived from the local dependency alias
// and may differ from the name used to query the registry.
//
// Identities are interned, so equality is a cheap handle comparison and the
// type is usable as a map key.
type PackageIdentity struct {
	h unique.Handle[string]
}

// NewPackageIdentity creates an identity from a local dependency alias.
func NewPackageIdentity(alias string) PackageIdentity {
	return PackageIdentity{h: unique.Make(alias)}
}

// String returns the alias the identity was created from.
func (id PackageIdentity) String() string {
	var zero unique.Handle[string]
	if id.h == zero {
		return ""
	}
	return id.h.Value()
}

// IsZero reports whether the identity is the zero value.
func (id PackageIdentity) IsZero() bool {
	var zero unique.Handle[string]
	return id.h == zero
}

// MarshalText implements encoding.TextMarshaler.
func (id PackageIdentity) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *PackageIdentity) UnmarshalText(text []byte) error {
	id.h = unique.Make(string(text))
	return nil
}

// Root is the requestor identity for requirements declared by the project itself.
var Root = NewPackageIdentity("root")

// IsRoot reports whether the identity is the root requestor.
func (id PackageIdentity) IsRoot() bool {
	return id == Root
}
