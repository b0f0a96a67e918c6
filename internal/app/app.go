// Package app implements the application layer: each public method is one
// CLI operation, composed from the manifest loader, the lock store, and the
// resolution engine.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/Baltazore/hex/internal/core/domain"
	"github.com/Baltazore/hex/internal/core/ports"
	"github.com/Baltazore/hex/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	manifests ports.ManifestLoader
	lock      ports.LockStore
	resolver  *resolver.Resolver
	log       ports.Logger
	out       io.Writer
}

// New creates a new App instance. Reports are written to out.
func New(manifests ports.ManifestLoader, lock ports.LockStore, res *resolver.Resolver, log ports.Logger, out io.Writer) *App {
	return &App{
		manifests: manifests,
		lock:      lock,
		resolver:  res,
		log:       log,
		out:       out,
	}
}

// Get resolves the project's dependencies, biased toward the existing lock,
// and rewrites the lock file only when the selected set changed.
func (a *App) Get(ctx context.Context) error {
	m, prior, err := a.loadInputs()
	if err != nil {
		return err
	}

	res, err := a.resolver.Resolve(ctx, m.Requirements, prior)
	if err != nil {
		return err
	}

	if err := a.writeLockIfChanged(res, prior); err != nil {
		return err
	}
	a.printReport(res, prior)
	return nil
}

// Update re-resolves the named packages without lock bias, keeping every
// other package at its locked version where possible. With no names, the
// whole lock is discarded and everything floats to the newest satisfying
// versions.
func (a *App) Update(ctx context.Context, packages []string) error {
	m, prior, err := a.loadInputs()
	if err != nil {
		return err
	}

	res, err := a.resolver.Resolve(ctx, m.Requirements, pruneLock(prior, packages))
	if err != nil {
		return err
	}

	if err := a.writeLockIfChanged(res, prior); err != nil {
		return err
	}
	a.printReport(res, prior)
	return nil
}

// Deps resolves and prints the dependency set without touching the lock
// file, so it is safe to run in a read-only checkout.
func (a *App) Deps(ctx context.Context) error {
	m, prior, err := a.loadInputs()
	if err != nil {
		return err
	}

	res, err := a.resolver.Resolve(ctx, m.Requirements, prior)
	if err != nil {
		return err
	}

	a.printReport(res, prior)
	return nil
}

func (a *App) loadInputs() (*domain.ProjectManifest, *domain.Lockfile, error) {
	m, err := a.manifests.Load(".")
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load project manifest")
	}
	prior, err := a.lock.Read()
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to read lock file")
	}
	return m, prior, nil
}

func (a *App) writeLockIfChanged(res *domain.Resolution, prior *domain.Lockfile) error {
	next := domain.LockfileFromResolution(res)
	if next.Equal(prior) {
		return nil
	}
	if err := a.lock.Write(next); err != nil {
		return zerr.Wrap(err, "failed to write lock file")
	}
	a.log.Info("lock file updated")
	return nil
}

func (a *App) printReport(res *domain.Resolution, prior *domain.Lockfile) {
	for _, entry := range resolver.BuildReport(res, prior) {
		marker := ""
		if entry.Locked {
			marker = " (locked)"
		}
		_, _ = fmt.Fprintf(a.out, "%s %s [%s]%s\n", entry.Name, entry.Version, entry.Source, marker)
	}
}

// pruneLock drops the named packages from the lock so they lose their bias.
// A nil result means resolution runs fully unlocked.
func pruneLock(prior *domain.Lockfile, packages []string) *domain.Lockfile {
	if prior == nil || len(packages) == 0 {
		return nil
	}
	drop := make(map[string]bool, len(packages))
	for _, name := range packages {
		drop[name] = true
	}

	pruned := domain.NewLockfile()
	for name, entry := range prior.Packages {
		if !drop[name] {
			pruned.Packages[name] = entry
		}
	}
	return pruned
}
