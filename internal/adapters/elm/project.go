package elm

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/elmpack/internal/core/domain"
	"go.trai.ch/zerr"
)

const elmJSON = "elm.json"

// manifest is the subset of elm.json needed to locate sources.
type manifest struct {
	Type              string   `json:"type"`
	SourceDirectories []string `json:"source-directories"`
}

// findManifest walks up from dir to the nearest elm.json.
func findManifest(dir string) (string, error) {
	for {
		candidate := filepath.Join(dir, elmJSON)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", zerr.With(zerr.Wrap(err, "failed to stat elm.json"), "path", candidate)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", domain.ErrElmJSONNotFound
		}
		dir = parent
	}
}

// sourceDirectories returns the absolute source directories declared by the elm.json at path.
// Package projects always compile from src.
func sourceDirectories(path string) ([]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is discovered next to user sources
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read elm.json"), "path", path)
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse elm.json"), "path", path)
	}

	dirs := m.SourceDirectories
	if m.Type == "package" {
		dirs = []string{"src"}
	}

	root := filepath.Dir(path)
	abs := make([]string, len(dirs))
	for i, dir := range dirs {
		if filepath.IsAbs(dir) {
			abs[i] = filepath.Clean(dir)
			continue
		}
		abs[i] = filepath.Join(root, filepath.FromSlash(dir))
	}
	return abs, nil
}
