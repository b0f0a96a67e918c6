package resolver_test

import (
	"context"
	"testing"

	"github.com/Baltazore/hex/internal/core/domain"
	"github.com/Baltazore/hex/internal/core/ports"
	"github.com/Baltazore/hex/internal/core/ports/mocks"
	"github.com/Baltazore/hex/internal/engine/resolver"
	goversion "github.com/hashicorp/go-version"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type resolverTestMocks struct {
	registry *mocks.MockRegistry
	paths    *mocks.MockPathSource
}

// setupResolverTest creates a resolver with optimistic tracer and logger
// mocks so individual tests only declare registry and path expectations.
func setupResolverTest(t *testing.T) (*resolver.Resolver, resolverTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := resolverTestMocks{
		registry: mocks.NewMockRegistry(ctrl),
		paths:    mocks.NewMockPathSource(ctrl),
	}

	mockSpan := mocks.NewMockSpan(ctrl)
	mockSpan.EXPECT().End().AnyTimes()
	mockSpan.EXPECT().RecordError(gomock.Any()).AnyTimes()
	mockSpan.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()

	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, mockSpan
		},
	).AnyTimes()
	tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any()).AnyTimes()

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	return resolver.New(m.registry, m.paths, tracer, logger), m
}

func v(t *testing.T, s string) *goversion.Version {
	t.Helper()
	ver, err := domain.ParseVersion(s)
	require.NoError(t, err)
	return ver
}

func versionList(t *testing.T, versions ...string) []*goversion.Version {
	t.Helper()
	out := make([]*goversion.Version, len(versions))
	for i, s := range versions {
		out[i] = v(t, s)
	}
	return out
}

func rootReqs(t *testing.T, raws ...domain.RawRequirement) []domain.Requirement {
	t.Helper()
	reqs := make([]domain.Requirement, len(raws))
	for i, raw := range raws {
		req, err := domain.NormalizeRequirement(raw, domain.Root)
		require.NoError(t, err)
		reqs[i] = req
	}
	return reqs
}

func release(checksum string, raws ...domain.RawRequirement) *domain.Release {
	return &domain.Release{Checksum: checksum, Requirements: raws}
}

// versionMatcher matches a *goversion.Version by its canonical string.
type versionMatcher struct {
	want string
}

func (m versionMatcher) Matches(x any) bool {
	ver, ok := x.(*goversion.Version)
	return ok && ver.String() == m.want
}

func (m versionMatcher) String() string {
	return "version is " + m.want
}

func matchVersion(t *testing.T, s string) gomock.Matcher {
	t.Helper()
	return versionMatcher{want: v(t, s).String()}
}

func TestResolve_TransitiveNewestSatisfyingWins(t *testing.T) {
	r, m := setupResolverTest(t)

	m.registry.EXPECT().Versions(gomock.Any(), "ecto").Return(versionList(t, "0.2.0"), nil)
	m.registry.EXPECT().Release(gomock.Any(), "ecto", matchVersion(t, "0.2.0")).
		Return(release("ectosum", domain.RawRequirement{Name: "postgrex", Constraint: ">= 0.0.0"}), nil)
	m.registry.EXPECT().Versions(gomock.Any(), "postgrex").Return(versionList(t, "0.2.0", "0.2.1"), nil)
	m.registry.EXPECT().Release(gomock.Any(), "postgrex", matchVersion(t, "0.2.1")).
		Return(release("pgsum"), nil)

	res, err := r.Resolve(context.Background(), rootReqs(t,
		domain.RawRequirement{Name: "ecto", Constraint: "0.2.0"},
	), nil)
	require.NoError(t, err)
	require.Equal(t, 2, res.Len())

	ecto, ok := res.Get(domain.NewPackageIdentity("ecto"))
	require.True(t, ok)
	require.Equal(t, "0.2.0", ecto.Version.Original())
	require.Equal(t, "ectosum", ecto.Checksum)

	postgrex, ok := res.Get(domain.NewPackageIdentity("postgrex"))
	require.True(t, ok)
	require.Equal(t, "0.2.1", postgrex.Version.Original())
}

func TestResolve_OverrideWinsRegardlessOfDepth(t *testing.T) {
	r, m := setupResolverTest(t)

	m.registry.EXPECT().Versions(gomock.Any(), "ecto").Return(versionList(t, "0.2.0"), nil)
	m.registry.EXPECT().Release(gomock.Any(), "ecto", matchVersion(t, "0.2.0")).
		Return(release("ectosum", domain.RawRequirement{Name: "ex_doc", Constraint: "0.0.1"}), nil)
	m.registry.EXPECT().Versions(gomock.Any(), "ex_doc").Return(versionList(t, "0.0.1", "0.1.0"), nil)
	m.registry.EXPECT().Release(gomock.Any(), "ex_doc", matchVersion(t, "0.1.0")).
		Return(release("docsum"), nil)

	res, err := r.Resolve(context.Background(), rootReqs(t,
		domain.RawRequirement{Name: "ecto", Constraint: "0.2.0"},
		domain.RawRequirement{Name: "ex_doc", Constraint: "~> 0.1.0", Override: true},
	), nil)
	require.NoError(t, err)

	exDoc, ok := res.Get(domain.NewPackageIdentity("ex_doc"))
	require.True(t, ok)
	require.Equal(t, "0.1.0", exDoc.Version.Original())
}

func TestResolve_PathOverrideSkipsRegistry(t *testing.T) {
	r, m := setupResolverTest(t)

	m.registry.EXPECT().Versions(gomock.Any(), "postgrex").Return(versionList(t, "0.2.1"), nil)
	m.registry.EXPECT().Release(gomock.Any(), "postgrex", matchVersion(t, "0.2.1")).
		Return(release("pgsum", domain.RawRequirement{Name: "ex_doc", Constraint: ">= 0.0.0"}), nil)
	m.paths.EXPECT().ReadManifest("../ex_doc").Return(nil, nil)
	// No Versions or Release expectation for ex_doc: a registry fetch for an
	// overridden path package would fail the controller.

	res, err := r.Resolve(context.Background(), rootReqs(t,
		domain.RawRequirement{Name: "postgrex", Constraint: ">= 0.0.0"},
		domain.RawRequirement{Name: "ex_doc", Path: "../ex_doc", Override: true},
	), nil)
	require.NoError(t, err)

	exDoc, ok := res.Get(domain.NewPackageIdentity("ex_doc"))
	require.True(t, ok)
	require.Equal(t, domain.SourcePath, exDoc.Source.Kind)
	require.Equal(t, "../ex_doc", exDoc.Ref)
	require.Nil(t, exDoc.Version)
}

func TestResolve_OptionalDependencyNotFetched(t *testing.T) {
	r, m := setupResolverTest(t)

	m.registry.EXPECT().Versions(gomock.Any(), "only_doc").Return(versionList(t, "0.1.0"), nil)
	m.registry.EXPECT().Release(gomock.Any(), "only_doc", matchVersion(t, "0.1.0")).
		Return(release("odsum", domain.RawRequirement{Name: "ex_doc", Constraint: ">= 0.0.0", Optional: true}), nil)

	res, err := r.Resolve(context.Background(), rootReqs(t,
		domain.RawRequirement{Name: "only_doc", Constraint: ">= 0.0.0"},
	), nil)
	require.NoError(t, err)
	require.Equal(t, 1, res.Len())

	_, ok := res.Get(domain.NewPackageIdentity("ex_doc"))
	require.False(t, ok, "optional dependency with no mandatory path must not resolve")
}

func TestResolve_OptionalActivatedByDirectRequirement(t *testing.T) {
	r, m := setupResolverTest(t)

	m.registry.EXPECT().Versions(gomock.Any(), "only_doc").Return(versionList(t, "0.1.0"), nil)
	m.registry.EXPECT().Release(gomock.Any(), "only_doc", matchVersion(t, "0.1.0")).
		Return(release("odsum", domain.RawRequirement{Name: "ex_doc", Constraint: ">= 0.0.0", Optional: true}), nil)
	m.registry.EXPECT().Versions(gomock.Any(), "ex_doc").Return(versionList(t, "0.0.1"), nil)
	m.registry.EXPECT().Release(gomock.Any(), "ex_doc", matchVersion(t, "0.0.1")).
		Return(release("docsum"), nil)

	res, err := r.Resolve(context.Background(), rootReqs(t,
		domain.RawRequirement{Name: "only_doc", Constraint: ">= 0.0.0"},
		domain.RawRequirement{Name: "ex_doc", Constraint: ">= 0.0.0"},
	), nil)
	require.NoError(t, err)
	require.Equal(t, 2, res.Len())

	exDoc, ok := res.Get(domain.NewPackageIdentity("ex_doc"))
	require.True(t, ok)
	require.Equal(t, "0.0.1", exDoc.Version.Original())
}

func TestResolve_LockedVersionPreferred(t *testing.T) {
	r, m := setupResolverTest(t)

	m.registry.EXPECT().Versions(gomock.Any(), "postgrex").Return(versionList(t, "0.2.0", "0.2.1"), nil)
	m.registry.EXPECT().Release(gomock.Any(), "postgrex", matchVersion(t, "0.2.0")).
		Return(release("pgsum"), nil)

	lock := domain.NewLockfile()
	lock.Packages["postgrex"] = domain.LockEntry{Source: domain.SourceRegistry, Version: "0.2.0", Checksum: "pgsum"}

	res, err := r.Resolve(context.Background(), rootReqs(t,
		domain.RawRequirement{Name: "postgrex", Constraint: ">= 0.0.0"},
	), lock)
	require.NoError(t, err)

	postgrex, ok := res.Get(domain.NewPackageIdentity("postgrex"))
	require.True(t, ok)
	require.Equal(t, "0.2.0", postgrex.Version.Original(), "locked version must win over newer satisfying versions")

	// Re-resolution with unchanged input reproduces the lock.
	require.True(t, domain.LockfileFromResolution(res).Equal(lock))
}

func TestResolve_LockedVersionIgnoredWhenUnsatisfying(t *testing.T) {
	r, m := setupResolverTest(t)

	m.registry.EXPECT().Versions(gomock.Any(), "postgrex").Return(versionList(t, "0.2.0", "0.3.0"), nil)
	m.registry.EXPECT().Release(gomock.Any(), "postgrex", matchVersion(t, "0.3.0")).
		Return(release("pgsum"), nil)

	lock := domain.NewLockfile()
	lock.Packages["postgrex"] = domain.LockEntry{Source: domain.SourceRegistry, Version: "0.2.0"}

	res, err := r.Resolve(context.Background(), rootReqs(t,
		domain.RawRequirement{Name: "postgrex", Constraint: ">= 0.3.0"},
	), lock)
	require.NoError(t, err)

	postgrex, _ := res.Get(domain.NewPackageIdentity("postgrex"))
	require.Equal(t, "0.3.0", postgrex.Version.Original())
}

func TestResolve_BacktracksToOlderCandidate(t *testing.T) {
	r, m := setupResolverTest(t)

	m.registry.EXPECT().Versions(gomock.Any(), "alpha").Return(versionList(t, "1.0.0", "1.1.0"), nil).AnyTimes()
	m.registry.EXPECT().Release(gomock.Any(), "alpha", matchVersion(t, "1.1.0")).
		Return(release("a11", domain.RawRequirement{Name: "shared", Constraint: "2.0.0"}), nil).AnyTimes()
	m.registry.EXPECT().Release(gomock.Any(), "alpha", matchVersion(t, "1.0.0")).
		Return(release("a10", domain.RawRequirement{Name: "shared", Constraint: "1.0.0"}), nil).AnyTimes()
	m.registry.EXPECT().Versions(gomock.Any(), "beta").Return(versionList(t, "1.0.0"), nil).AnyTimes()
	m.registry.EXPECT().Release(gomock.Any(), "beta", matchVersion(t, "1.0.0")).
		Return(release("b10", domain.RawRequirement{Name: "shared", Constraint: "1.0.0"}), nil).AnyTimes()
	m.registry.EXPECT().Versions(gomock.Any(), "shared").Return(versionList(t, "1.0.0", "2.0.0"), nil).AnyTimes()
	m.registry.EXPECT().Release(gomock.Any(), "shared", matchVersion(t, "1.0.0")).
		Return(release("s10"), nil).AnyTimes()

	res, err := r.Resolve(context.Background(), rootReqs(t,
		domain.RawRequirement{Name: "alpha", Constraint: ">= 1.0.0"},
		domain.RawRequirement{Name: "beta", Constraint: ">= 1.0.0"},
	), nil)
	require.NoError(t, err)

	alpha, _ := res.Get(domain.NewPackageIdentity("alpha"))
	require.Equal(t, "1.0.0", alpha.Version.Original(), "resolver must backtrack from alpha 1.1.0")
	shared, _ := res.Get(domain.NewPackageIdentity("shared"))
	require.Equal(t, "1.0.0", shared.Version.Original())
}

func TestResolve_UnsatisfiableReportsRequestors(t *testing.T) {
	r, m := setupResolverTest(t)

	m.registry.EXPECT().Versions(gomock.Any(), "ecto").Return(versionList(t, "0.2.0", "0.2.1"), nil)

	_, err := r.Resolve(context.Background(), rootReqs(t,
		domain.RawRequirement{Name: "ecto", Constraint: "0.3.0"},
	), nil)
	require.ErrorIs(t, err, domain.ErrUnsatisfiable)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	meta := zErr.Metadata()
	require.Equal(t, "ecto", meta["package"])
	require.Contains(t, meta["requestors"], "root (0.3.0)")
}

func TestResolve_ConflictingOverrides(t *testing.T) {
	r, _ := setupResolverTest(t)

	_, err := r.Resolve(context.Background(), rootReqs(t,
		domain.RawRequirement{Name: "ex_doc", Constraint: "~> 0.1.0", Override: true},
		domain.RawRequirement{Name: "ex_doc", Constraint: "0.2.0", Override: true},
	), nil)
	require.ErrorIs(t, err, domain.ErrConflictingOverride)
}

func TestResolve_NameConflict(t *testing.T) {
	r, m := setupResolverTest(t)

	m.registry.EXPECT().Versions(gomock.Any(), "phoenix").Return(versionList(t, "1.0.0"), nil)
	m.registry.EXPECT().Release(gomock.Any(), "phoenix", matchVersion(t, "1.0.0")).
		Return(release("phsum", domain.RawRequirement{Name: "docs", PublishedAs: "docs_two", Constraint: ">= 0.0.0"}), nil)

	_, err := r.Resolve(context.Background(), rootReqs(t,
		domain.RawRequirement{Name: "phoenix", Constraint: "1.0.0"},
		domain.RawRequirement{Name: "docs", PublishedAs: "docs_one", Constraint: ">= 0.0.0"},
	), nil)
	require.ErrorIs(t, err, domain.ErrNameConflict)
}

func TestResolve_PackageNotFound(t *testing.T) {
	r, m := setupResolverTest(t)

	m.registry.EXPECT().Versions(gomock.Any(), "ghost").Return(nil, domain.ErrPackageNotFound)

	_, err := r.Resolve(context.Background(), rootReqs(t,
		domain.RawRequirement{Name: "ghost", Constraint: ">= 0.0.0"},
	), nil)
	require.ErrorIs(t, err, domain.ErrPackageNotFound)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	require.Equal(t, "ghost", zErr.Metadata()["package"])
}

func TestResolve_PathManifestRequirementsMerge(t *testing.T) {
	r, m := setupResolverTest(t)

	m.paths.EXPECT().ReadManifest("../frontend").
		Return([]domain.RawRequirement{{Name: "postgrex", Constraint: ">= 0.0.0"}}, nil)
	m.registry.EXPECT().Versions(gomock.Any(), "postgrex").Return(versionList(t, "0.2.1"), nil)
	m.registry.EXPECT().Release(gomock.Any(), "postgrex", matchVersion(t, "0.2.1")).
		Return(release("pgsum"), nil)

	res, err := r.Resolve(context.Background(), rootReqs(t,
		domain.RawRequirement{Name: "frontend", Path: "../frontend"},
	), nil)
	require.NoError(t, err)
	require.Equal(t, 2, res.Len())

	postgrex, ok := res.Get(domain.NewPackageIdentity("postgrex"))
	require.True(t, ok)
	require.Equal(t, "0.2.1", postgrex.Version.Original())
}

func TestResolve_PathNotFoundIsFatal(t *testing.T) {
	r, m := setupResolverTest(t)

	m.paths.EXPECT().ReadManifest("../missing").Return(nil, domain.ErrPathNotFound)

	_, err := r.Resolve(context.Background(), rootReqs(t,
		domain.RawRequirement{Name: "frontend", Path: "../missing"},
	), nil)
	require.ErrorIs(t, err, domain.ErrPathNotFound)
}

func TestResolve_CancelledContext(t *testing.T) {
	r, _ := setupResolverTest(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Resolve(ctx, rootReqs(t,
		domain.RawRequirement{Name: "ecto", Constraint: "0.2.0"},
	), nil)
	require.ErrorIs(t, err, context.Canceled)
}
