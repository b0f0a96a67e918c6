package resolver

import (
	"fmt"
	"maps"
	"slices"

	"github.com/Baltazore/hex/internal/core/domain"
	"go.trai.ch/zerr"
)

// solveState is one snapshot of the backtracking search: the frontier of
// known requirements, the overrides collected so far, and the partial
// assignment. Tentative candidate selections operate on a clone, so undoing a
// decision is a pure "restore prior snapshot".
type solveState struct {
	// order lists identities in first-declared order; the solver picks the
	// next pending identity by scanning it, which keeps resolution
	// deterministic.
	order     []domain.PackageIdentity
	reqs      map[domain.PackageIdentity][]domain.Requirement
	overrides overrideSet
	selected  map[domain.PackageIdentity]domain.Selection
	picked    []domain.PackageIdentity
	// registryNames records the underlying registry package per identity.
	// The first declaration wins; later disagreement is a NameConflict.
	registryNames map[domain.PackageIdentity]string
}

func newSolveState() *solveState {
	return &solveState{
		reqs:          make(map[domain.PackageIdentity][]domain.Requirement),
		overrides:     make(overrideSet),
		selected:      make(map[domain.PackageIdentity]domain.Selection),
		registryNames: make(map[domain.PackageIdentity]string),
	}
}

func (s *solveState) clone() *solveState {
	cl := &solveState{
		order:         slices.Clone(s.order),
		reqs:          make(map[domain.PackageIdentity][]domain.Requirement, len(s.reqs)),
		overrides:     maps.Clone(s.overrides),
		selected:      maps.Clone(s.selected),
		picked:        slices.Clone(s.picked),
		registryNames: maps.Clone(s.registryNames),
	}
	for id, rs := range s.reqs {
		cl.reqs[id] = slices.Clone(rs)
	}
	return cl
}

// merge folds a batch of requirements into the frontier, applying the
// override reduction and rejecting batches that contradict the current
// partial assignment.
//
// Contradictions return ErrUnsatisfiable, which the solver treats as a signal
// to backtrack. ErrConflictingOverride and ErrNameConflict are configuration
// errors and abort the whole resolution.
func (s *solveState) merge(reqs []domain.Requirement) error {
	for _, req := range reqs {
		id := req.Package

		if isOverride(req) {
			if err := s.overrides.add(req); err != nil {
				return err
			}
			winner := s.overrides[id]
			// The override replaces everything merged so far for this identity.
			s.reqs[id] = []domain.Requirement{winner}
			s.ensureOrder(id)
			s.registryNames[id] = winner.RegistryName
			if sel, ok := s.selected[id]; ok && !selectionSatisfies(sel, winner) {
				return s.conflict(id, winner)
			}
			continue
		}

		if _, ok := s.overrides.overridden(id); ok {
			// Overridden identity: the constraint is discarded unchecked.
			s.ensureOrder(id)
			continue
		}

		if err := s.recordRegistryName(id, req); err != nil {
			return err
		}
		s.ensureOrder(id)
		s.reqs[id] = append(s.reqs[id], req)
		if sel, ok := s.selected[id]; ok && !selectionSatisfies(sel, req) {
			return s.conflict(id, req)
		}
	}
	return nil
}

func (s *solveState) ensureOrder(id domain.PackageIdentity) {
	if !slices.Contains(s.order, id) {
		s.order = append(s.order, id)
	}
}

func (s *solveState) recordRegistryName(id domain.PackageIdentity, req domain.Requirement) error {
	if req.Source.Kind != domain.SourceRegistry {
		return nil
	}
	existing, ok := s.registryNames[id]
	if !ok {
		s.registryNames[id] = req.RegistryName
		return nil
	}
	if existing == req.RegistryName {
		return nil
	}
	err := zerr.With(domain.ErrNameConflict, "package", id.String())
	err = zerr.With(err, "registry_names", []string{existing, req.RegistryName})
	return zerr.With(err, "requestors", s.requestors(id))
}

// registryName returns the registry package name to query for an identity.
func (s *solveState) registryName(id domain.PackageIdentity) string {
	if name, ok := s.registryNames[id]; ok {
		return name
	}
	return id.String()
}

// active reports whether at least one mandatory edge reaches the identity.
// Identities reached only through optional requirements stay pending forever
// and are silently excluded from the result.
func (s *solveState) active(id domain.PackageIdentity) bool {
	for _, req := range s.reqs[id] {
		if !req.Optional {
			return true
		}
	}
	return false
}

// nextPending returns the first declared identity that is mandatory and not
// yet assigned.
func (s *solveState) nextPending() (domain.PackageIdentity, bool) {
	for _, id := range s.order {
		if _, done := s.selected[id]; done {
			continue
		}
		if s.active(id) {
			return id, true
		}
	}
	return domain.PackageIdentity{}, false
}

// pathRequirement returns the winning path requirement for an identity, if
// its source is a path.
func (s *solveState) pathRequirement(id domain.PackageIdentity) (domain.Requirement, bool) {
	if req, ok := s.overrides.overridden(id); ok && req.Source.Kind == domain.SourcePath {
		return req, true
	}
	return domain.Requirement{}, false
}

func (s *solveState) choose(sel domain.Selection) {
	s.selected[sel.Package] = sel
	s.picked = append(s.picked, sel.Package)
}

// resolution materializes the final assignment in selection order.
func (s *solveState) resolution() *domain.Resolution {
	res := domain.NewResolution()
	for _, id := range s.picked {
		res.Add(s.selected[id])
	}
	return res
}

// requestors describes every requirement reaching an identity, for error
// reports: "requestor (constraint)".
func (s *solveState) requestors(id domain.PackageIdentity) []string {
	reqs := s.reqs[id]
	out := make([]string, 0, len(reqs))
	for _, req := range reqs {
		switch {
		case req.Source.Kind == domain.SourcePath:
			out = append(out, fmt.Sprintf("%s (path %s)", req.Requestor, req.Source.Path))
		case req.Constraint.IsZero():
			out = append(out, req.Requestor.String())
		default:
			out = append(out, fmt.Sprintf("%s (%s)", req.Requestor, req.Constraint))
		}
	}
	return out
}

// conflict builds the unsatisfiable error for an identity whose current
// selection is rejected by a newly merged requirement.
func (s *solveState) conflict(id domain.PackageIdentity, latest domain.Requirement) error {
	err := zerr.With(domain.ErrUnsatisfiable, "package", id.String())
	err = zerr.With(err, "requestors", s.requestors(id))
	if sel, ok := s.selected[id]; ok {
		err = zerr.With(err, "selected", sel.VersionString())
	}
	return zerr.With(err, "rejected_by", latest.Requestor.String())
}

// unsatisfiable builds the error for an identity that exhausted every
// candidate.
func (s *solveState) unsatisfiable(id domain.PackageIdentity) error {
	err := zerr.With(domain.ErrUnsatisfiable, "package", id.String())
	return zerr.With(err, "requestors", s.requestors(id))
}

func selectionSatisfies(sel domain.Selection, req domain.Requirement) bool {
	if req.Source.Kind == domain.SourcePath {
		return sel.Source.Kind == domain.SourcePath && sel.Ref == req.Source.Path
	}
	if sel.Source.Kind == domain.SourcePath {
		// A path selection only stands against registry requirements when the
		// path won by override, and those requirements never reach here.
		return false
	}
	return sel.Version != nil && req.Constraint.Check(sel.Version)
}
