package ports

import (
	"context"

	"go.trai.ch/elmpack/internal/core/domain"
)

// Bundler drives the host bundler for a project.
//
//go:generate go run go.uber.org/mock/mockgen -source=bundler.go -destination=mocks/mock_bundler.go -package=mocks
type Bundler interface {
	// Build runs a single bundling pass and returns the produced files.
	Build(ctx context.Context, project *domain.Project) (domain.BuildOutput, error)

	// Watch rebuilds whenever a registered file changes, calling onBuild after every pass.
	// It blocks until ctx is done.
	Watch(ctx context.Context, project *domain.Project, onBuild func(domain.BuildOutput)) error
}
