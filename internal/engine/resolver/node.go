package resolver

import (
	"context"

	"github.com/Baltazore/hex/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"github.com/Baltazore/hex/internal/adapters/manifest"  //nolint:depguard // Wired in engine wiring
	"github.com/Baltazore/hex/internal/adapters/registry"  //nolint:depguard // Wired in engine wiring
	"github.com/Baltazore/hex/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"github.com/Baltazore/hex/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			registry.NodeID,
			manifest.PathSourceNodeID,
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Resolver, error) {
			reg, err := graft.Dep[ports.Registry](ctx)
			if err != nil {
				return nil, err
			}

			paths, err := graft.Dep[ports.PathSource](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(reg, paths, tracer, log), nil
		},
	})
}
