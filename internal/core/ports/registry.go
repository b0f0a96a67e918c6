package ports

import (
	"context"

	"github.com/Baltazore/hex/internal/core/domain"
	goversion "github.com/hashicorp/go-version"
)

// Registry is the read side of the package registry, the resolver's only
// suspension point. Repeated calls for the same package and version must be
// idempotent and side-effect-free; the resolver never retries, the adapter
// layer owns transport retries and caching.
//
//go:generate mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
type Registry interface {
	// Versions lists the known versions of a package, in no particular order.
	// Fails with domain.ErrPackageNotFound when the package does not exist and
	// domain.ErrMalformedMetadata when the metadata cannot be decoded.
	Versions(ctx context.Context, registryName string) ([]*goversion.Version, error)

	// Release returns one version's requirement list and checksum.
	Release(ctx context.Context, registryName string, version *goversion.Version) (*domain.Release, error)
}
