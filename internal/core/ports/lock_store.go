package ports

import "github.com/Baltazore/hex/internal/core/domain"

// LockStore persists the resolved version set across runs.
//
//go:generate mockgen -source=lock_store.go -destination=mocks/mock_lock_store.go -package=mocks
type LockStore interface {
	// Read returns the current lock file, or nil, nil when none exists yet.
	Read() (*domain.Lockfile, error)

	// Write replaces the lock file atomically: on failure the prior lock
	// remains untouched.
	Write(lock *domain.Lockfile) error
}
