package fs

import (
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/elmpack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.InputResolver = (*Resolver)(nil)

// Resolver implements the InputResolver interface using doublestar globs.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveInputs resolves the given patterns to a list of concrete file paths.
// Patterns support "**". A pattern without matches contributes nothing, since a
// watched file may legitimately not exist yet. Directories are skipped.
func (r *Resolver) ResolveInputs(patterns []string, root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve root"), "root", root)
	}
	fsys := os.DirFS(absRoot)

	uniquePaths := make(map[string]bool)
	for _, pattern := range patterns {
		if filepath.IsAbs(pattern) {
			rel, err := filepath.Rel(absRoot, pattern)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "pattern outside of root"), "pattern", pattern)
			}
			pattern = rel
		}

		matches, err := doublestar.Glob(fsys, filepath.ToSlash(pattern))
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to glob path"), "pattern", pattern)
		}

		for _, match := range matches {
			info, err := iofs.Stat(fsys, match)
			if err != nil || info.IsDir() {
				continue
			}
			uniquePaths[filepath.Join(absRoot, filepath.FromSlash(match))] = true
		}
	}

	result := make([]string, 0, len(uniquePaths))
	for path := range uniquePaths {
		result = append(result, path)
	}
	sort.Strings(result)

	return result, nil
}
