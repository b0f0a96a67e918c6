package manifest

import (
	"context"

	"github.com/Baltazore/hex/internal/core/ports"
	"github.com/grindlemire/graft"
)

// LoaderNodeID is the unique identifier for the manifest loader Graft node.
const LoaderNodeID graft.ID = "adapter.manifest_loader"

// PathSourceNodeID is the unique identifier for the path source Graft node.
const PathSourceNodeID graft.ID = "adapter.path_source"

func init() {
	graft.Register(graft.Node[ports.ManifestLoader]{
		ID:        LoaderNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ManifestLoader, error) {
			return NewFileLoader(), nil
		},
	})

	graft.Register(graft.Node[ports.PathSource]{
		ID:        PathSourceNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.PathSource, error) {
			return NewDirSource(), nil
		},
	})
}
