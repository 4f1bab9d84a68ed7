// Package app implements the application layer for elmpack.
package app

import (
	"context"
	"fmt"
	"path/filepath"

	"go.trai.ch/elmpack/internal/adapters/bootstrap" //nolint:depguard // Rendering is pure and has no port
	"go.trai.ch/elmpack/internal/core/domain"
	"go.trai.ch/elmpack/internal/core/ports"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	resolver     ports.InputResolver
	bundler      ports.Bundler
	writer       ports.OutputWriter
	telemetry    ports.Telemetry
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	resolver ports.InputResolver,
	bundler ports.Bundler,
	writer ports.OutputWriter,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		resolver:     resolver,
		bundler:      bundler,
		writer:       writer,
		telemetry:    telemetry,
		logger:       logger,
	}
}

// Options holds the settings shared by every command.
type Options struct {
	// ConfigPath is the elmpack.yaml to load. Empty means the default file name.
	ConfigPath string
	// Optimize forces optimize mode regardless of the configuration.
	Optimize bool
}

// WatchOptions configures watch mode.
type WatchOptions struct {
	Options
	// Serve starts the development server, on port 8000 unless the configuration names one.
	Serve bool
}

// DefaultServePort is used by watch --serve when the configuration sets no port.
const DefaultServePort = 8000

// Build bundles the project once and writes the changed output files.
func (a *App) Build(ctx context.Context, opts Options) error {
	project, err := a.load(opts)
	if err != nil {
		return err
	}
	defer a.closeTelemetry()

	a.logger.Info(fmt.Sprintf("building %s (%s)", a.relative(project, project.Entry), project.Mode()))

	out, err := a.bundler.Build(ctx, project)
	a.logWarnings(out)
	if err != nil {
		return zerr.Wrap(err, "build execution failed")
	}

	return a.write(project, out)
}

// Watch rebuilds the project on every change until ctx is done. Failed passes are
// logged and the watcher keeps running.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	project, err := a.load(opts.Options)
	if err != nil {
		return err
	}
	defer a.closeTelemetry()

	if !opts.Serve {
		project.Serve.Port = 0
	} else if project.Serve.Port == 0 {
		project.Serve.Port = DefaultServePort
	}

	a.logger.Info(fmt.Sprintf("watching %s (%s)", a.relative(project, project.Entry), project.Mode()))

	return a.bundler.Watch(ctx, project, func(out domain.BuildOutput) {
		a.logWarnings(out)
		if len(out.Errors) > 0 {
			for _, msg := range out.Errors {
				a.logger.Error(zerr.Wrap(domain.ErrBuildFailed, msg))
			}
			return
		}
		if err := a.write(project, out); err != nil {
			a.logger.Error(err)
		}
	})
}

// Bootstrap renders the bootstrap script for the configured project.
func (a *App) Bootstrap(opts Options) (string, error) {
	project, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return "", zerr.Wrap(err, "failed to load configuration")
	}
	return bootstrap.Render(bootstrap.FromProject(project))
}

func (a *App) load(opts Options) (*domain.Project, error) {
	project, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if opts.Optimize {
		project.Optimize = true
	}

	watch, err := a.resolver.ResolveInputs(project.WatchFiles, project.Root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve watch files")
	}
	project.WatchFiles = watch

	return project, nil
}

func (a *App) write(project *domain.Project, out domain.BuildOutput) error {
	written, err := a.writer.Write(out.Files, project.Mode())
	if err != nil {
		return zerr.Wrap(err, "failed to write output")
	}

	for _, path := range written {
		a.logger.Info("wrote " + a.relative(project, path))
	}
	if len(written) == 0 {
		a.logger.Info("output unchanged")
	}
	return nil
}

func (a *App) logWarnings(out domain.BuildOutput) {
	for _, msg := range out.Warnings {
		a.logger.Warn(msg)
	}
}

func (a *App) closeTelemetry() {
	if err := a.telemetry.Close(); err != nil {
		a.logger.Warn("failed to close telemetry: " + err.Error())
	}
}

func (a *App) relative(project *domain.Project, path string) string {
	if rel, err := filepath.Rel(project.Root, path); err == nil {
		return rel
	}
	return path
}
