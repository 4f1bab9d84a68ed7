// Package config provides the project configuration loader for elmpack.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/elmpack/internal/core/domain"
	"go.trai.ch/elmpack/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the configuration file looked up when no path is given.
const DefaultFilename = "elmpack.yaml"

const (
	defaultModule    = "Main"
	defaultMount     = "elm"
	defaultOutDir    = "dist"
	defaultOutput    = "main"
	defaultPathToElm = "elm"
	defaultMinifier  = "uglifyjs"
	maxPort          = 65535
)

var (
	_ ports.ConfigLoader = (*Loader)(nil)

	moduleNamePattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9_]*(\.[A-Z][A-Za-z0-9_]*)*$`)
)

// Loader implements ports.ConfigLoader for elmpack.yaml files.
type Loader struct{}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the configuration file at path and resolves it into a project
// rooted at the file's directory.
func (l *Loader) Load(path string) (*domain.Project, error) {
	if path == "" {
		path = DefaultFilename
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve config path"), "path", path)
	}

	data, err := os.ReadFile(absPath) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", absPath)
	}

	file, err := parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", absPath)
	}

	return resolve(file, filepath.Dir(absPath))
}

func parse(data []byte) (*Elmpackfile, error) {
	var file Elmpackfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return &file, nil
		}
		return nil, zerr.Wrap(err, "failed to parse config file")
	}
	return &file, nil
}

func resolve(file *Elmpackfile, root string) (*domain.Project, error) {
	if file.Entry == "" {
		return nil, invalid("entry is required", "entry", file.Entry)
	}
	if !strings.HasSuffix(file.Entry, ".elm") {
		return nil, invalid("entry must be an .elm file", "entry", file.Entry)
	}

	project := &domain.Project{
		Root:       root,
		Module:     withDefault(file.Module, defaultModule),
		MountID:    withDefault(file.Mount, defaultMount),
		OutputName: withDefault(file.Output, defaultOutput),
		Optimize:   file.Optimize,
		Compiler: domain.CompileOptions{
			PathToElm: withDefault(file.Compiler.Path, defaultPathToElm),
		},
		PathToMinifier: withDefault(file.Minifier.Path, defaultMinifier),
		WatchFiles:     file.Watch,
	}

	if !moduleNamePattern.MatchString(project.Module) {
		return nil, invalid("module is not a valid Elm module name", "module", project.Module)
	}
	if strings.ContainsAny(project.MountID, " \t\n") {
		return nil, invalid("mount id must not contain whitespace", "mount", project.MountID)
	}
	if file.Serve.Port < 0 || file.Serve.Port > maxPort {
		return nil, invalid("serve port out of range", "port", file.Serve.Port)
	}

	project.Entry = project.Abs(file.Entry)
	project.Stylesheet = project.Abs(file.Stylesheet)
	project.OutDir = project.Abs(withDefault(file.OutDir, defaultOutDir))
	project.Compiler.Cwd = project.Abs(withDefault(file.Compiler.Cwd, "."))
	project.Serve = domain.ServeOptions{
		Dir:  project.Abs(withDefault(file.Serve.Dir, withDefault(file.OutDir, defaultOutDir))),
		Port: file.Serve.Port,
	}

	project.Compiler.PathToElm = executable(project, project.Compiler.PathToElm)
	project.PathToMinifier = executable(project, project.PathToMinifier)

	return project, nil
}

// executable resolves a configured tool path. A bare name is looked up on
// PATH; anything with a separator is project-relative.
func executable(project *domain.Project, name string) string {
	if strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/') {
		return project.Abs(filepath.FromSlash(name))
	}
	return name
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func invalid(reason, key string, value any) error {
	return zerr.With(zerr.Wrap(domain.ErrInvalidConfig, reason), key, value)
}
