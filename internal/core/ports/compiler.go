// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/elmpack/internal/core/domain"
)

// Compiler defines the interface to the Elm compiler service.
//
//go:generate go run go.uber.org/mock/mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Compiler interface {
	// FindAllDependencies returns the transitive local source files imported by path.
	// The entry file itself is not included.
	FindAllDependencies(ctx context.Context, path string) ([]string, error)

	// CompileToString compiles the given entry files and returns the emitted script.
	CompileToString(ctx context.Context, paths []string, opts domain.CompileOptions) (string, error)
}
