package lockfile

import (
	"context"

	"github.com/Baltazore/hex/internal/core/ports"
	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "adapter.lock_store"

func init() {
	graft.Register(graft.Node[ports.LockStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.LockStore, error) {
			return NewStore(DefaultFilename), nil
		},
	})
}
