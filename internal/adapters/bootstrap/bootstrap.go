// Package bootstrap renders the script that mounts a compiled Elm module into a page.
package bootstrap

import (
	_ "embed"
	"regexp"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
	"go.trai.ch/elmpack/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// DefaultModule is the Elm module initialized when none is configured.
	DefaultModule = "Main"
	// DefaultMountID is the DOM id the application is attached to when none is configured.
	DefaultMountID = "elm"
)

//go:embed bootstrap.js.tmpl
var source string

var (
	script     = template.Must(template.New("bootstrap").Funcs(sprig.HermeticTxtFuncMap()).Parse(source))
	moduleName = regexp.MustCompile(`^[A-Z][A-Za-z0-9_]*(\.[A-Z][A-Za-z0-9_]*)*$`)
)

// Options describes what the bootstrap script imports and mounts.
type Options struct {
	// ModulePath is the import specifier of the compiled Elm source file.
	ModulePath string
	// StylesheetPath is imported for its side effects when set.
	StylesheetPath string
	Module         string
	MountID        string
}

// Render returns the bootstrap script for opts. Empty Module and MountID fall back
// to their defaults.
func Render(opts Options) (string, error) {
	if opts.Module == "" {
		opts.Module = DefaultModule
	}
	if opts.MountID == "" {
		opts.MountID = DefaultMountID
	}

	if opts.ModulePath == "" {
		return "", zerr.Wrap(domain.ErrInvalidConfig, "bootstrap module path is required")
	}
	if !moduleName.MatchString(opts.Module) {
		return "", zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "invalid Elm module name"), "module", opts.Module)
	}

	var b strings.Builder
	if err := script.Execute(&b, opts); err != nil {
		return "", zerr.Wrap(err, "failed to render bootstrap script")
	}
	return b.String(), nil
}

// FromProject derives bootstrap options for project, importing files relative to its root.
func FromProject(project *domain.Project) Options {
	return Options{
		ModulePath:     importPath(project.Root, project.Entry),
		StylesheetPath: importPath(project.Root, project.Stylesheet),
		Module:         project.Module,
		MountID:        project.MountID,
	}
}
