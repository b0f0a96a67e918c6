package telemetry

import (
	"context"
	"os"

	"github.com/Baltazore/hex/internal/adapters/telemetry/progrock"
	"github.com/Baltazore/hex/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the telemetry adapter Graft node.
const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Tracer, error) {
			if os.Getenv("HEX_PROGRESS") != "" {
				return progrock.New(), nil
			}
			return NewNoOpTracer(), nil
		},
	})
}
