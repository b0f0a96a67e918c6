package resolver

import (
	"sort"

	"github.com/Baltazore/hex/internal/core/domain"
)

// ReportEntry summarizes one resolved package for presentation layers.
type ReportEntry struct {
	// Name is the display alias of the package.
	Name string
	// Version is the selected version, or the path ref for path sources.
	Version string
	// Source is where the package comes from.
	Source domain.SourceKind
	// Locked reports whether the selection matches the prior lock entry, i.e.
	// the package was "locked at" this version rather than freshly selected.
	Locked bool
}

// BuildReport flattens a resolution into entries sorted by package name,
// marking each as locked or freshly selected relative to the given lock.
// The lock may be nil, in which case every entry is fresh.
func BuildReport(res *domain.Resolution, lock *domain.Lockfile) []ReportEntry {
	entries := make([]ReportEntry, 0, res.Len())
	for sel := range res.All() {
		entries = append(entries, ReportEntry{
			Name:    sel.Name,
			Version: sel.VersionString(),
			Source:  sel.Source.Kind,
			Locked:  lock.Matches(sel),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}
