package config

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/derp/internal/core/domain"
)

// NodeID is the unique identifier for the configuration Graft node.
const NodeID graft.ID = "adapter.config"

func init() {
	graft.Register(graft.Node[domain.Config]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (domain.Config, error) {
			return Resolve(), nil
		},
	})
}
