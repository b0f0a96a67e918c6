package domain

import (
	"iter"

	goversion "github.com/hashicorp/go-version"
)

// Release is one published version of a registry package together with its
// own requirement list and integrity checksum.
type Release struct {
	Version      *goversion.Version
	Checksum     string
	Requirements []RawRequirement
}

// Candidate is one concrete choice for a package: a registry release or the
// manifest found at a path source. Path candidates carry no version.
type Candidate struct {
	Package      PackageIdentity
	Version      *goversion.Version
	Source       Source
	Checksum     string
	Requirements []RawRequirement
}

// Selection is the resolver's final choice for one package.
type Selection struct {
	Package PackageIdentity
	// Name is the display alias, taken from the requestor closest to the root.
	Name string
	// Version is the selected version; nil for path sources.
	Version *goversion.Version
	// Ref is the path of a path source, empty for registry sources.
	Ref      string
	Source   Source
	Checksum string
}

// VersionString returns the selected version, or the path ref for path sources.
func (s Selection) VersionString() string {
	if s.Version != nil {
		return s.Version.Original()
	}
	return s.Ref
}

// Resolution maps each resolved package identity to its selection, preserving
// the order in which packages were selected.
type Resolution struct {
	selected map[PackageIdentity]Selection
	order    []PackageIdentity
}

// NewResolution creates an empty Resolution.
func NewResolution() *Resolution {
	return &Resolution{selected: make(map[PackageIdentity]Selection)}
}

// Add records a selection. A later selection for the same identity replaces
// the earlier one in place.
func (r *Resolution) Add(sel Selection) {
	if _, exists := r.selected[sel.Package]; !exists {
		r.order = append(r.order, sel.Package)
	}
	r.selected[sel.Package] = sel
}

// Get returns the selection for an identity.
func (r *Resolution) Get(id PackageIdentity) (Selection, bool) {
	sel, ok := r.selected[id]
	return sel, ok
}

// Len returns the number of resolved packages.
func (r *Resolution) Len() int {
	return len(r.selected)
}

// All returns an iterator over selections in selection order.
func (r *Resolution) All() iter.Seq[Selection] {
	return func(yield func(Selection) bool) {
		for _, id := range r.order {
			if !yield(r.selected[id]) {
				return
			}
		}
	}
}
