package registry

import (
	"context"
	"os"
	"path/filepath"

	"github.com/Baltazore/hex/internal/core/ports"
	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "adapter.registry"

// EnvBaseURL overrides the registry endpoint, mainly for tests and private
// mirrors.
const EnvBaseURL = "HEX_REGISTRY_URL"

func init() {
	graft.Register(graft.Node[ports.Registry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Registry, error) {
			baseURL := DefaultBaseURL
			if url := os.Getenv(EnvBaseURL); url != "" {
				baseURL = url
			}

			cacheDir := ""
			if base, err := os.UserCacheDir(); err == nil {
				cacheDir = filepath.Join(base, "hex", "registry")
			}
			return NewClient(baseURL, cacheDir), nil
		},
	})
}
