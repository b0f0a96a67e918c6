package ports

import "github.com/Baltazore/hex/internal/core/domain"

// PathSource reads the manifest of a path dependency. Path sources bypass the
// registry entirely: their manifest supplies the requirement list directly.
//
//go:generate mockgen -source=path_source.go -destination=mocks/mock_path_source.go -package=mocks
type PathSource interface {
	// ReadManifest returns the raw requirements declared at dir, in
	// declaration order. Fails with domain.ErrPathNotFound when the directory
	// is missing and domain.ErrInvalidManifest when the manifest is unreadable.
	ReadManifest(dir string) ([]domain.RawRequirement, error)
}
