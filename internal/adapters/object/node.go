package object

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/derp/internal/adapters/config"
	"go.trai.ch/derp/internal/core/domain"
	"go.trai.ch/derp/internal/core/ports"
)

// NodeID is the unique identifier for the object store Graft node.
const NodeID graft.ID = "adapter.object_store"

func init() {
	graft.Register(graft.Node[ports.ObjectStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.ObjectStore, error) {
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(cfg), nil
		},
	})
}
