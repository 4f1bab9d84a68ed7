package ports

import (
	"context"

	"go.trai.ch/elmpack/internal/core/domain"
)

// Transformer converts one Elm source file into script for the host bundler.
//
//go:generate go run go.uber.org/mock/mockgen -source=transformer.go -destination=mocks/mock_transformer.go -package=mocks
type Transformer interface {
	// Transform compiles req.Path. Every discovered dependency is passed to register.
	// It never fails: errors surface as an empty result carrying a diagnostic.
	Transform(ctx context.Context, req domain.TransformRequest, register func(path string)) domain.TransformResult
}
