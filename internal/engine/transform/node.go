package transform

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/elmpack/internal/adapters/elm"                //nolint:depguard // Wired in engine wiring
	"go.trai.ch/elmpack/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/elmpack/internal/adapters/minify"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/elmpack/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/elmpack/internal/core/ports"
)

// NodeID is the unique identifier for the transformer Graft node.
const NodeID graft.ID = "engine.transformer"

func init() {
	graft.Register(graft.Node[ports.Transformer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			elm.NodeID,
			minify.NodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (ports.Transformer, error) {
			compiler, err := graft.Dep[ports.Compiler](ctx)
			if err != nil {
				return nil, err
			}
			minifier, err := graft.Dep[ports.Minifier](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			return New(compiler, minifier, log, telemetry), nil
		},
	})
}
