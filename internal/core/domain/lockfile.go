package domain

// LockfileVersion is the current lock file format version.
const LockfileVersion = 1

// Lockfile is the persisted result of a successful resolution. It is read
// before resolution to bias candidate ordering toward already-locked versions
// and rewritten only when a resolution changes the selected set.
type Lockfile struct {
	// Version is the lock file format version, for future schema migrations.
	Version int `json:"version"`

	// Packages maps package identities (as strings, for serialization) to
	// their locked entries.
	Packages map[string]LockEntry `json:"packages"`
}

// LockEntry records the selected source and version for one package.
// Path entries are diagnostic only: path contents are read fresh each run and
// never bias candidate ordering.
type LockEntry struct {
	Source SourceKind `json:"source"`
	// Version is the locked version for registry sources.
	Version string `json:"version,omitempty"`
	// Ref is the directory of a path source.
	Ref string `json:"ref,omitempty"`
	// Checksum is the registry metadata checksum, empty for path sources.
	Checksum string `json:"checksum,omitempty"`
}

// NewLockfile creates an empty lock file at the current format version.
func NewLockfile() *Lockfile {
	return &Lockfile{
		Version:  LockfileVersion,
		Packages: make(map[string]LockEntry),
	}
}

// LockfileFromResolution converts a resolution into its lock representation.
func LockfileFromResolution(res *Resolution) *Lockfile {
	lock := NewLockfile()
	for sel := range res.All() {
		entry := LockEntry{Source: sel.Source.Kind}
		switch sel.Source.Kind {
		case SourcePath:
			entry.Ref = sel.Ref
		default:
			if sel.Version != nil {
				entry.Version = sel.Version.Original()
			}
			entry.Checksum = sel.Checksum
		}
		lock.Packages[sel.Package.String()] = entry
	}
	return lock
}

// Entry returns the lock entry for a package identity.
func (l *Lockfile) Entry(id PackageIdentity) (LockEntry, bool) {
	if l == nil {
		return LockEntry{}, false
	}
	entry, ok := l.Packages[id.String()]
	return entry, ok
}

// Equal reports whether two lock files describe the same selected set.
// A nil lock file equals only an empty one.
func (l *Lockfile) Equal(other *Lockfile) bool {
	if l == nil {
		return other == nil || len(other.Packages) == 0
	}
	if other == nil {
		return len(l.Packages) == 0
	}
	if len(l.Packages) != len(other.Packages) {
		return false
	}
	for name, entry := range l.Packages {
		if other.Packages[name] != entry {
			return false
		}
	}
	return true
}

// Matches reports whether a selection is already recorded by this lock file
// with the same source and version.
func (l *Lockfile) Matches(sel Selection) bool {
	entry, ok := l.Entry(sel.Package)
	if !ok || entry.Source != sel.Source.Kind {
		return false
	}
	if sel.Source.Kind == SourcePath {
		return entry.Ref == sel.Ref
	}
	return sel.Version != nil && entry.Version == sel.Version.Original()
}
