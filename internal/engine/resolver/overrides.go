package resolver

import (
	"github.com/Baltazore/hex/internal/core/domain"
	"go.trai.ch/zerr"
)

// overrideSet tracks the winning requirement per overridden package identity.
// Overrides are a flat, order-independent reduction: once an identity is
// overridden, every other requirement for it is discarded without its
// constraint ever being checked, no matter at which depth it was declared.
//
// Path requirements count as overrides even without the explicit flag: a path
// source has exactly one candidate and never negotiates versions.
type overrideSet map[domain.PackageIdentity]domain.Requirement

// isOverride reports whether a requirement wins its identity outright.
func isOverride(req domain.Requirement) bool {
	return req.Override || req.Source.Kind == domain.SourcePath
}

// add records an override. Two overrides for the same identity must agree on
// source and constraint; anything else is a configuration error.
func (o overrideSet) add(req domain.Requirement) error {
	existing, ok := o[req.Package]
	if !ok {
		o[req.Package] = req
		return nil
	}
	if sameTarget(existing, req) {
		return nil
	}
	err := zerr.With(domain.ErrConflictingOverride, "package", req.Package.String())
	err = zerr.With(err, "first_requestor", existing.Requestor.String())
	err = zerr.With(err, "second_requestor", req.Requestor.String())
	err = zerr.With(err, "first_source", describeTarget(existing))
	return zerr.With(err, "second_source", describeTarget(req))
}

// overridden returns the winning requirement for an identity, if any.
func (o overrideSet) overridden(id domain.PackageIdentity) (domain.Requirement, bool) {
	req, ok := o[id]
	return req, ok
}

func sameTarget(a, b domain.Requirement) bool {
	if a.Source != b.Source {
		return false
	}
	return a.Constraint.String() == b.Constraint.String()
}

func describeTarget(req domain.Requirement) string {
	if req.Source.Kind == domain.SourcePath {
		return "path " + req.Source.Path
	}
	return "registry " + req.RegistryName + " " + req.Constraint.String()
}
