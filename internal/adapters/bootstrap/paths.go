package bootstrap

import (
	"path/filepath"
	"strings"
)

// importPath turns path into a relative import specifier rooted at root.
func importPath(root, path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return filepath.ToSlash(path)
		}
		path = rel
	}

	path = filepath.ToSlash(path)
	if strings.HasPrefix(path, "../") || strings.HasPrefix(path, "./") {
		return path
	}
	return "./" + path
}
