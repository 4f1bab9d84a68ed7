package minify

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/elmpack/internal/adapters/logger"
	"go.trai.ch/elmpack/internal/core/ports"
)

// NodeID is the unique identifier for the minifier Graft node.
const NodeID graft.ID = "adapter.minifier"

func init() {
	graft.Register(graft.Node[ports.Minifier]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Minifier, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewMinifier(log), nil
		},
	})
}
