// Package transform turns Elm source files into script for the host bundler.
package transform

import (
	"context"

	"go.trai.ch/elmpack/internal/core/domain"
	"go.trai.ch/elmpack/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Transformer = (*Transformer)(nil)

// Transformer compiles one Elm file per call, minifying in optimize mode.
// It holds no per-call state and is safe for concurrent use.
type Transformer struct {
	compiler  ports.Compiler
	minifier  ports.Minifier
	logger    ports.Logger
	telemetry ports.Telemetry
}

// New creates a new Transformer.
func New(
	compiler ports.Compiler,
	minifier ports.Minifier,
	logger ports.Logger,
	telemetry ports.Telemetry,
) *Transformer {
	return &Transformer{
		compiler:  compiler,
		minifier:  minifier,
		logger:    logger,
		telemetry: telemetry,
	}
}

// Transform compiles req.Path and reports its transitive dependencies through register.
//
// Dependency discovery and compilation run concurrently and are joined before
// returning. A discovery failure is logged and leaves the output untouched. A
// compile or minify failure is logged and yields an empty result.
func (t *Transformer) Transform(
	ctx context.Context,
	req domain.TransformRequest,
	register func(path string),
) domain.TransformResult {
	ctx, vertex := t.telemetry.Record(ctx, domain.TransformVertexName(req))

	var (
		g    errgroup.Group
		code string
	)

	g.Go(func() error {
		t.discover(ctx, req.Path, register)
		return nil
	})

	g.Go(func() error {
		out, err := t.compiler.CompileToString(ctx, []string{req.Path}, req.Compiler)
		if err != nil {
			return err
		}
		code = out
		return nil
	})

	if err := g.Wait(); err != nil {
		return t.fail(vertex, req, err)
	}

	if req.Mode() == domain.ModeOptimize {
		minified, err := t.minifier.Minify(ctx, code, domain.MinifyOptions{
			PathToMinifier: req.PathToMinifier,
			Rules:          domain.ElmMinifyRules(),
		})
		if err != nil {
			return t.fail(vertex, req, err)
		}
		code = minified
	}

	vertex.Complete(nil)
	return domain.Compiled(code)
}

// discover registers every dependency of path, in discovery order.
func (t *Transformer) discover(ctx context.Context, path string, register func(path string)) {
	deps, err := t.compiler.FindAllDependencies(ctx, path)
	if err != nil {
		discoveryErr := zerr.Wrap(domain.ErrDependencyDiscoveryFailed, err.Error())
		t.logger.Error(zerr.With(discoveryErr, "path", path))
		return
	}

	for _, dep := range deps {
		register(dep)
	}
}

func (t *Transformer) fail(vertex ports.Vertex, req domain.TransformRequest, err error) domain.TransformResult {
	err = zerr.With(zerr.Wrap(err, "failed to transform"), "path", req.Path)
	t.logger.Error(err)
	vertex.Log(domain.LogLevelError, err.Error())
	vertex.Complete(err)
	return domain.EmptyWithDiagnostic(err)
}
