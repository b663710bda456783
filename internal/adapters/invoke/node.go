package invoke

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/derp/internal/core/ports"
)

// NodeID is the unique identifier for the invoker Graft node.
const NodeID graft.ID = "adapter.invoker"

func init() {
	graft.Register(graft.Node[ports.Invoker]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Invoker, error) {
			return NewInvoker(), nil
		},
	})
}
