package esbuild

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/elmpack/internal/adapters/logger"
	"go.trai.ch/elmpack/internal/core/ports"
	"go.trai.ch/elmpack/internal/engine/transform"
)

// NodeID is the unique identifier for the bundler Graft node.
const NodeID graft.ID = "adapter.esbuild"

func init() {
	graft.Register(graft.Node[ports.Bundler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{transform.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Bundler, error) {
			transformer, err := graft.Dep[ports.Transformer](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewBundler(transformer, log), nil
		},
	})
}
