package html

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/spritz/internal/core/ports"
)

// NodeID is the unique identifier for the HTML injector Graft node.
const NodeID graft.ID = "adapter.html"

func init() {
	graft.Register(graft.Node[ports.Injector]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Injector, error) {
			return NewInjector(), nil
		},
	})
}
