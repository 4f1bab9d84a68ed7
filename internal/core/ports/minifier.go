package ports

import (
	"context"

	"go.trai.ch/elmpack/internal/core/domain"
)

// Minifier defines the interface to the minifier service.
//
//go:generate go run go.uber.org/mock/mockgen -source=minifier.go -destination=mocks/mock_minifier.go -package=mocks
type Minifier interface {
	// Minify compresses and mangles code under opts.Rules.
	Minify(ctx context.Context, code string, opts domain.MinifyOptions) (string, error)
}
