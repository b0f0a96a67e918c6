package ports

import "github.com/Baltazore/hex/internal/core/domain"

// ManifestLoader loads the root project manifest.
//
//go:generate mockgen -source=manifest_loader.go -destination=mocks/mock_manifest_loader.go -package=mocks
type ManifestLoader interface {
	// Load reads the project manifest from the given working directory and
	// returns its normalized requirements in declaration order.
	Load(cwd string) (*domain.ProjectManifest, error)
}
