// Package resolver implements the version resolution engine: a sequential
// backtracking search over package candidates, with override and optional
// handling applied to every requirement batch before it reaches the search.
package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/Baltazore/hex/internal/core/domain"
	"github.com/Baltazore/hex/internal/core/ports"
	goversion "github.com/hashicorp/go-version"
	"go.trai.ch/zerr"
)

// prefetcher is implemented by registry adapters that can warm their metadata
// cache concurrently. Prefetching is an optimization only; resolution is
// correct without it.
type prefetcher interface {
	Prefetch(ctx context.Context, registryNames []string)
}

// Resolver converges a set of requirements into one selected version per
// package identity. A Resolver is stateless across runs; each Resolve call
// owns its own frontier and partial assignment.
type Resolver struct {
	registry ports.Registry
	paths    ports.PathSource
	tracer   ports.Tracer
	logger   ports.Logger
}

// New creates a Resolver.
func New(registry ports.Registry, paths ports.PathSource, tracer ports.Tracer, logger ports.Logger) *Resolver {
	return &Resolver{
		registry: registry,
		paths:    paths,
		tracer:   tracer,
		logger:   logger,
	}
}

// Resolve selects one version per reachable package identity, preferring
// locked versions that still satisfy the merged constraints. The lock may be
// nil. On failure the error carries the offending package and the full
// requestor chain in its metadata.
func (r *Resolver) Resolve(ctx context.Context, rootReqs []domain.Requirement, lock *domain.Lockfile) (*domain.Resolution, error) {
	st := newSolveState()
	if err := st.merge(rootReqs); err != nil {
		return nil, err
	}

	plan := make([]string, 0, len(st.order))
	for _, id := range st.order {
		plan = append(plan, id.String())
	}
	r.tracer.EmitPlan(ctx, plan)

	if pf, ok := r.registry.(prefetcher); ok {
		names := make([]string, 0, len(st.order))
		for _, id := range st.order {
			if _, isPath := st.pathRequirement(id); !isPath {
				names = append(names, st.registryName(id))
			}
		}
		pf.Prefetch(ctx, names)
	}

	final, err := r.solve(ctx, st, lock)
	if err != nil {
		return nil, err
	}
	return final.resolution(), nil
}

// solve assigns the next pending identity and recurses. Branches that turn
// out over-constrained surface ErrUnsatisfiable, which the caller's candidate
// loop treats as "try the next candidate"; only the top-level caller sees it
// as a final failure.
func (r *Resolver) solve(ctx context.Context, st *solveState, lock *domain.Lockfile) (*solveState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id, ok := st.nextPending()
	if !ok {
		return st, nil
	}

	if pathReq, isPath := st.pathRequirement(id); isPath {
		return r.selectPath(ctx, st, id, pathReq, lock)
	}
	return r.selectRegistry(ctx, st, id, lock)
}

// selectPath assigns a path-sourced identity. Path sources have exactly one
// candidate and are non-negotiable: any failure here is fatal to the branch.
func (r *Resolver) selectPath(ctx context.Context, st *solveState, id domain.PackageIdentity, req domain.Requirement, lock *domain.Lockfile) (*solveState, error) {
	raw, err := r.paths.ReadManifest(req.Source.Path)
	if err != nil {
		return nil, zerr.With(err, "package", id.String())
	}

	_, span := r.tracer.Start(ctx, "select "+id.String())
	next := st.clone()
	next.choose(domain.Selection{
		Package: id,
		Name:    id.String(),
		Ref:     req.Source.Path,
		Source:  req.Source,
	})

	childReqs, err := normalizeAll(raw, id)
	if err != nil {
		span.RecordError(err)
		span.End()
		return nil, err
	}
	if err := next.merge(childReqs); err != nil {
		span.RecordError(err)
		span.End()
		return nil, err
	}

	span.SetAttribute("source", "path")
	span.End()
	return r.solve(ctx, next, lock)
}

// selectRegistry tries registry candidates for an identity in preference
// order until one leads to a complete assignment.
func (r *Resolver) selectRegistry(ctx context.Context, st *solveState, id domain.PackageIdentity, lock *domain.Lockfile) (*solveState, error) {
	name := st.registryName(id)

	versions, err := r.registry.Versions(ctx, name)
	if err != nil {
		err = zerr.With(err, "package", name)
		return nil, zerr.With(err, "requestors", st.requestors(id))
	}

	candidates, lockedVersion := orderCandidates(versions, st.reqs[id], lock, id)
	var lastErr error

	for _, v := range candidates {
		release, err := r.registry.Release(ctx, name, v)
		if err != nil {
			err = zerr.With(err, "package", name)
			return nil, zerr.With(err, "version", v.Original())
		}

		opts := []ports.SpanOption{}
		if lockedVersion != nil && v.Equal(lockedVersion) {
			opts = append(opts, ports.WithCached())
		}
		_, span := r.tracer.Start(ctx, fmt.Sprintf("select %s %s", id, v.Original()), opts...)

		next := st.clone()
		next.choose(domain.Selection{
			Package:  id,
			Name:     id.String(),
			Version:  v,
			Source:   domain.RegistrySource(),
			Checksum: release.Checksum,
		})

		childReqs, err := normalizeAll(release.Requirements, id)
		if err != nil {
			span.RecordError(err)
			span.End()
			return nil, err
		}

		if err := next.merge(childReqs); err != nil {
			span.RecordError(err)
			span.End()
			if errors.Is(err, domain.ErrUnsatisfiable) {
				r.logger.Warn(fmt.Sprintf("%s %s conflicts, backtracking", id, v.Original()))
				lastErr = err
				continue
			}
			return nil, err
		}

		result, err := r.solve(ctx, next, lock)
		if err != nil {
			span.RecordError(err)
			span.End()
			if errors.Is(err, domain.ErrUnsatisfiable) {
				r.logger.Warn(fmt.Sprintf("%s %s leads to a conflict, backtracking", id, v.Original()))
				lastErr = err
				continue
			}
			return nil, err
		}

		span.End()
		return result, nil
	}

	if len(candidates) == 0 || lastErr == nil {
		return nil, st.unsatisfiable(id)
	}
	// Every candidate satisfied this identity's constraints but broke a
	// deeper one; the deepest failure is the useful diagnostic.
	return nil, lastErr
}

// orderCandidates filters versions down to those satisfying every merged
// constraint, sorts them newest-first, and moves a still-satisfying locked
// version to the front. The locked version is returned for span annotation.
func orderCandidates(versions []*goversion.Version, reqs []domain.Requirement, lock *domain.Lockfile, id domain.PackageIdentity) ([]*goversion.Version, *goversion.Version) {
	satisfying := make([]*goversion.Version, 0, len(versions))
	for _, v := range versions {
		ok := true
		for _, req := range reqs {
			if !req.Constraint.Check(v) {
				ok = false
				break
			}
		}
		if ok {
			satisfying = append(satisfying, v)
		}
	}
	domain.SortVersionsDesc(satisfying)

	entry, ok := lock.Entry(id)
	if !ok || entry.Source != domain.SourceRegistry {
		return satisfying, nil
	}
	locked, err := domain.ParseVersion(entry.Version)
	if err != nil {
		return satisfying, nil
	}
	for i, v := range satisfying {
		if v.Equal(locked) {
			// Stable choice first: re-resolution with an unchanged input set
			// reproduces the lock.
			satisfying = append([]*goversion.Version{v}, append(satisfying[:i:i], satisfying[i+1:]...)...)
			return satisfying, locked
		}
	}
	return satisfying, nil
}

func normalizeAll(raw []domain.RawRequirement, requestor domain.PackageIdentity) ([]domain.Requirement, error) {
	reqs := make([]domain.Requirement, 0, len(raw))
	for _, rr := range raw {
		req, err := domain.NormalizeRequirement(rr, requestor)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}
