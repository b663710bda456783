package memo

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/derp/internal/adapters/config"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/derp/internal/adapters/fingerprint" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/derp/internal/adapters/index"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/derp/internal/adapters/invoke"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/derp/internal/adapters/logger"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/derp/internal/adapters/object"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/derp/internal/adapters/telemetry"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/derp/internal/core/domain"
	"go.trai.ch/derp/internal/core/ports"
)

// NodeID is the unique identifier for the cache engine Graft node.
const NodeID graft.ID = "engine.memo"

func init() {
	graft.Register(graft.Node[*Engine]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fingerprint.NodeID,
			index.NodeID,
			object.NodeID,
			invoke.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Engine, error) {
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Fingerprinter](ctx)
			if err != nil {
				return nil, err
			}

			indexStore, err := graft.Dep[ports.IndexStore](ctx)
			if err != nil {
				return nil, err
			}

			objectStore, err := graft.Dep[ports.ObjectStore](ctx)
			if err != nil {
				return nil, err
			}

			invoker, err := graft.Dep[ports.Invoker](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[*logger.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return NewEngine(
				cfg,
				hasher,
				indexStore,
				objectStore,
				invoker,
				log,
				tracer,
			), nil
		},
	})
}
