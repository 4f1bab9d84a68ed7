// Package minify implements ports.Minifier by running UglifyJS.
package minify

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"go.trai.ch/elmpack/internal/core/domain"
	"go.trai.ch/elmpack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Minifier = (*Minifier)(nil)

const defaultExecutable = "uglifyjs"

// Minifier pipes compiled JavaScript through uglifyjs.
type Minifier struct {
	logger ports.Logger
}

// NewMinifier creates a new Minifier.
func NewMinifier(logger ports.Logger) *Minifier {
	return &Minifier{logger: logger}
}

// Minify compresses code with opts.Rules and mangles the result. Code is read
// from stdin and the minified program from stdout. Diagnostics are streamed to
// the vertex carried by ctx.
func (m *Minifier) Minify(ctx context.Context, code string, opts domain.MinifyOptions) (string, error) {
	executable, err := lookPath(opts.PathToMinifier)
	if err != nil {
		return "", err
	}

	//nolint:gosec // The executable is user configured
	cmd := exec.CommandContext(ctx, executable, minifyArgs(opts.Rules)...)
	cmd.Stdin = strings.NewReader(code)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if vertex, ok := ports.VertexFromContext(ctx); ok {
		cmd.Stderr = io.MultiWriter(&stderr, vertex.Stderr())
	}

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		minifyErr := zerr.Wrap(domain.ErrMinifyFailed, strings.TrimSpace(stderr.String()))
		minifyErr = zerr.With(minifyErr, "executable", executable)
		return "", zerr.With(minifyErr, "exit_code", exitCode)
	}

	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		m.logger.Warn(msg)
	}

	return stdout.String(), nil
}

// minifyArgs builds the uglifyjs argument list. Compression and mangling run in one pass.
func minifyArgs(rules domain.MinifyRules) []string {
	return []string{"--compress", compressOptions(rules), "--mangle"}
}

// compressOptions renders rules in uglifyjs' option syntax, e.g.
// pure_funcs=[F2,A2],keep_fargs=false,pure_getters=true,unsafe_comps=true,unsafe=true.
func compressOptions(rules domain.MinifyRules) string {
	return strings.Join([]string{
		"pure_funcs=[" + strings.Join(rules.PureFuncs, ",") + "]",
		"keep_fargs=" + strconv.FormatBool(rules.KeepFuncArgs),
		"pure_getters=" + strconv.FormatBool(rules.PureGetters),
		"unsafe_comps=" + strconv.FormatBool(rules.UnsafeComparisons),
		"unsafe=" + strconv.FormatBool(rules.Unsafe),
	}, ",")
}

func lookPath(name string) (string, error) {
	if name == "" {
		name = defaultExecutable
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrMinifierNotFound, err.Error()), "executable", name)
	}
	return path, nil
}
