package domain

import (
	"sort"

	goversion "github.com/hashicorp/go-version"
	"go.trai.ch/zerr"
)

// Constraint is a parsed version constraint expression, e.g. "0.2.0",
// ">= 0.1.0" or "~> 0.1.0". The zero Constraint matches every version, which
// is what path requirements carry.
type Constraint struct {
	raw string
	set goversion.Constraints
}

// ParseConstraint parses a constraint expression. Comma-separated parts are
// conjunctive; a bare version means exact equality.
func ParseConstraint(expr string) (Constraint, error) {
	set, err := goversion.NewConstraint(expr)
	if err != nil {
		return Constraint{}, zerr.With(zerr.Wrap(err, "invalid version constraint"), "constraint", expr)
	}
	return Constraint{raw: expr, set: set}, nil
}

// MustConstraint parses expr and panics on failure. Intended for tests and
// compile-time-known expressions.
func MustConstraint(expr string) Constraint {
	c, err := ParseConstraint(expr)
	if err != nil {
		panic(err)
	}
	return c
}

// Check reports whether v satisfies the constraint. The zero Constraint
// accepts every version.
func (c Constraint) Check(v *goversion.Version) bool {
	if c.set == nil {
		return true
	}
	return c.set.Check(v)
}

// IsZero reports whether the constraint is unset.
func (c Constraint) IsZero() bool {
	return c.raw == ""
}

// String returns the original constraint expression.
func (c Constraint) String() string {
	return c.raw
}

// ParseVersion parses a version string.
func ParseVersion(s string) (*goversion.Version, error) {
	v, err := goversion.NewVersion(s)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid version"), "version", s)
	}
	return v, nil
}

// SortVersionsDesc sorts versions newest-first, the candidate preference
// order for registry packages.
func SortVersionsDesc(vs []*goversion.Version) {
	sort.Sort(sort.Reverse(goversion.Collection(vs)))
}
