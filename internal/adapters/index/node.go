package index

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/derp/internal/adapters/config"
	"go.trai.ch/derp/internal/core/domain"
	"go.trai.ch/derp/internal/core/ports"
)

// NodeID is the unique identifier for the index store Graft node.
const NodeID graft.ID = "adapter.index_store"

func init() {
	graft.Register(graft.Node[ports.IndexStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.IndexStore, error) {
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(cfg), nil
		},
	})
}
