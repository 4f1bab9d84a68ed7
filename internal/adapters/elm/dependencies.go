package elm

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

var importPattern = regexp.MustCompile(`(?m)^import\s+([A-Z][A-Za-z0-9_]*(?:\.[A-Z][A-Za-z0-9_]*)*)`)

// FindAllDependencies returns every local module file reachable from path through
// import declarations, in breadth-first discovery order. Imports that do not resolve
// to a file in a source directory belong to packages and are skipped.
func (c *Compiler) FindAllDependencies(ctx context.Context, path string) ([]string, error) {
	entry, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve source path"), "path", path)
	}

	manifestPath, err := findManifest(filepath.Dir(entry))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to locate project"), "path", entry)
	}

	dirs, err := sourceDirectories(manifestPath)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{entry: true}
	queue := []string{entry}
	var deps []string

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		file := queue[0]
		queue = queue[1:]

		modules, err := readImports(file)
		if err != nil {
			return nil, err
		}

		for _, module := range modules {
			dep, ok := resolveModule(dirs, module)
			if !ok || seen[dep] {
				continue
			}
			seen[dep] = true
			deps = append(deps, dep)
			queue = append(queue, dep)
		}
	}

	return deps, nil
}

// readImports returns the modules imported by the Elm file at path, in source order.
func readImports(path string) ([]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is an Elm source under a source directory
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read elm source"), "path", path)
	}

	source := stripComments(string(data))
	matches := importPattern.FindAllStringSubmatch(source, -1)
	modules := make([]string, 0, len(matches))
	for _, m := range matches {
		modules = append(modules, m[1])
	}
	return modules, nil
}

// resolveModule maps a module name such as Page.Home onto Page/Home.elm in the first
// source directory that contains it.
func resolveModule(dirs []string, module string) (string, bool) {
	rel := filepath.Join(strings.Split(module, ".")...) + ".elm"
	for _, dir := range dirs {
		candidate := filepath.Join(dir, rel)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// stripComments removes line comments and nested block comments, keeping newlines so
// that import declarations stay anchored at the start of a line.
func stripComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))

	depth := 0
	inString := false
	for i := 0; i < len(src); i++ {
		ch := src[i]
		next := byte(0)
		if i+1 < len(src) {
			next = src[i+1]
		}

		switch {
		case depth > 0:
			switch {
			case ch == '{' && next == '-':
				depth++
				i++
			case ch == '-' && next == '}':
				depth--
				i++
			case ch == '\n':
				b.WriteByte('\n')
			}
		case inString:
			b.WriteByte(ch)
			if ch == '\\' && next != 0 {
				b.WriteByte(next)
				i++
			} else if ch == '"' || ch == '\n' {
				inString = false
			}
		case ch == '{' && next == '-':
			depth = 1
			i++
		case ch == '-' && next == '-':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			if i < len(src) {
				b.WriteByte('\n')
			}
		default:
			if ch == '"' {
				inString = true
			}
			b.WriteByte(ch)
		}
	}
	return b.String()
}
