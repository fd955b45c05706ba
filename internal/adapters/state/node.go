package state

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/envsync/internal/core/ports"
)

// NodeID is the unique identifier for the run info store Graft node.
const NodeID graft.ID = "adapter.run_info_store"

func init() {
	graft.Register(graft.Node[ports.RunInfoStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RunInfoStore, error) {
			return NewStore(), nil
		},
	})
}
