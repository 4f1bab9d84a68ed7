// Package esbuild drives esbuild as the host bundler for Elm projects.
package esbuild

import (
	"context"
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/elmpack/internal/core/domain"
	"go.trai.ch/elmpack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Bundler = (*Bundler)(nil)

// Bundler implements ports.Bundler with the esbuild Go API.
type Bundler struct {
	transformer ports.Transformer
	logger      ports.Logger
}

// NewBundler creates a new Bundler.
func NewBundler(transformer ports.Transformer, logger ports.Logger) *Bundler {
	return &Bundler{
		transformer: transformer,
		logger:      logger,
	}
}

// Build runs a single bundling pass. Output files are returned, not written.
// Transform failures never fail the build; errors reported by esbuild itself do.
func (b *Bundler) Build(ctx context.Context, project *domain.Project) (domain.BuildOutput, error) {
	result := api.Build(b.options(ctx, project))
	out := toOutput(&result)
	if len(out.Errors) > 0 {
		return out, buildError(out.Errors)
	}
	return out, nil
}

// Watch rebuilds whenever an input or registered dependency changes. onBuild runs
// after every pass, including failed ones. It serves the output directory when a
// port is configured and blocks until ctx is done.
func (b *Bundler) Watch(ctx context.Context, project *domain.Project, onBuild func(domain.BuildOutput)) error {
	opts := b.options(ctx, project)
	opts.Plugins = append(opts.Plugins, api.Plugin{
		Name: "elmpack-notify",
		Setup: func(build api.PluginBuild) {
			build.OnEnd(func(result *api.BuildResult) (api.OnEndResult, error) {
				onBuild(toOutput(result))
				return api.OnEndResult{}, nil
			})
		},
	})

	buildCtx, ctxErr := api.Context(opts)
	if ctxErr != nil {
		return buildError(formatMessages(ctxErr.Errors))
	}
	defer buildCtx.Dispose()

	if err := buildCtx.Watch(api.WatchOptions{}); err != nil {
		return zerr.Wrap(err, "failed to start watcher")
	}
	b.logger.Info("watching for changes")

	if project.Serve.Port > 0 {
		served, err := buildCtx.Serve(api.ServeOptions{
			Port:     uint16(project.Serve.Port), //nolint:gosec // Validated by the config loader
			Servedir: project.Serve.Dir,
		})
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to start server"), "port", project.Serve.Port)
		}
		b.logger.Info(fmt.Sprintf("serving on http://%s:%d", served.Host, served.Port))
	}

	<-ctx.Done()
	return nil
}

func (b *Bundler) options(ctx context.Context, project *domain.Project) api.BuildOptions {
	optimize := project.Mode() == domain.ModeOptimize
	return api.BuildOptions{
		EntryPointsAdvanced: []api.EntryPoint{{
			InputPath:  BootstrapEntry,
			OutputPath: project.OutputName,
		}},
		AbsWorkingDir:     project.Root,
		Outdir:            project.OutDir,
		Bundle:            true,
		Write:             false,
		Format:            api.FormatIIFE,
		LogLevel:          api.LogLevelSilent,
		MinifyWhitespace:  optimize,
		MinifyIdentifiers: optimize,
		MinifySyntax:      optimize,
		Plugins:           []api.Plugin{Plugin(ctx, b.transformer, project)},
	}
}

func toOutput(result *api.BuildResult) domain.BuildOutput {
	out := domain.BuildOutput{
		Files:    make([]domain.OutputFile, 0, len(result.OutputFiles)),
		Errors:   formatMessages(result.Errors),
		Warnings: formatMessages(result.Warnings),
	}
	for _, file := range result.OutputFiles {
		out.Files = append(out.Files, domain.OutputFile{Path: file.Path, Contents: file.Contents})
	}
	return out
}

func formatMessages(msgs []api.Message) []string {
	if len(msgs) == 0 {
		return nil
	}
	lines := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		text := msg.Text
		if msg.PluginName != "" {
			text = fmt.Sprintf("[plugin %s] %s", msg.PluginName, text)
		}
		if loc := msg.Location; loc != nil {
			text = fmt.Sprintf("%s:%d:%d: %s", loc.File, loc.Line, loc.Column, text)
		}
		lines = append(lines, text)
	}
	return lines
}

func buildError(msgs []string) error {
	err := zerr.Wrap(domain.ErrBuildFailed, strings.Join(msgs, "\n"))
	return zerr.With(err, "errors", len(msgs))
}
