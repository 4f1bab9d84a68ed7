// Package elm adapts the Elm compiler executable to ports.Compiler.
package elm

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/elmpack/internal/core/domain"
	"go.trai.ch/elmpack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Compiler = (*Compiler)(nil)

const defaultExecutable = "elm"

// Compiler implements ports.Compiler by running elm make.
type Compiler struct {
	logger ports.Logger
}

// NewCompiler creates a new Compiler.
func NewCompiler(logger ports.Logger) *Compiler {
	return &Compiler{logger: logger}
}

// CompileToString runs elm make on paths into a temporary file and returns its contents.
// Compiler diagnostics are streamed to the vertex carried by ctx and attached to the
// returned error.
func (c *Compiler) CompileToString(ctx context.Context, paths []string, opts domain.CompileOptions) (string, error) {
	if len(paths) == 0 {
		return "", zerr.Wrap(domain.ErrCompileFailed, "no source files given")
	}

	executable, err := lookPath(opts.PathToElm)
	if err != nil {
		return "", err
	}

	tmpDir, err := os.MkdirTemp("", "elmpack-*")
	if err != nil {
		return "", zerr.Wrap(err, "failed to create temporary output directory")
	}
	defer os.RemoveAll(tmpDir) //nolint:errcheck // Best effort cleanup

	output := filepath.Join(tmpDir, "elm.js")

	//nolint:gosec // The executable is user configured
	cmd := exec.CommandContext(ctx, executable, makeArgs(paths, output, opts.Mode)...)
	cmd.Dir = opts.Cwd

	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr
	if vertex, ok := ports.VertexFromContext(ctx); ok {
		cmd.Stdout = vertex.Stdout()
		cmd.Stderr = io.MultiWriter(&stderr, vertex.Stderr())
	}

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		compileErr := zerr.Wrap(domain.ErrCompileFailed, strings.TrimSpace(stderr.String()))
		compileErr = zerr.With(compileErr, "paths", strings.Join(paths, ","))
		compileErr = zerr.With(compileErr, "mode", opts.Mode.String())
		return "", zerr.With(compileErr, "exit_code", exitCode)
	}

	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		c.logger.Warn(msg)
	}

	data, err := os.ReadFile(output) //nolint:gosec // Path is inside our temporary directory
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to read compiler output"), "paths", strings.Join(paths, ","))
	}

	return string(data), nil
}

// makeArgs builds the elm make argument list. Exactly one of --debug and --optimize is passed.
func makeArgs(paths []string, output string, mode domain.CompileMode) []string {
	args := make([]string, 0, len(paths)+3)
	args = append(args, "make")
	args = append(args, paths...)
	args = append(args, "--output="+output, mode.Flag())
	return args
}

// lookPath resolves the compiler executable. Bare names are searched on PATH.
func lookPath(name string) (string, error) {
	if name == "" {
		name = defaultExecutable
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrCompilerNotFound, err.Error()), "executable", name)
	}
	return path, nil
}
