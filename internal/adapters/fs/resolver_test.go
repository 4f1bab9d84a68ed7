package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/elmpack/internal/adapters/fs"
)

func writeFiles(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte("content"), 0o600))
	}
}

func TestResolver_ResolveInputs_DoubleStar(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "elm.json", "src/Main.elm", "src/Page/Home.elm", "src/app.js")

	resolved, err := fs.NewResolver().ResolveInputs([]string{"src/**/*.elm", "elm.json"}, tmpDir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(tmpDir, "elm.json"),
		filepath.Join(tmpDir, "src", "Main.elm"),
		filepath.Join(tmpDir, "src", "Page", "Home.elm"),
	}, resolved)
}

func TestResolver_ResolveInputs_NoMatches(t *testing.T) {
	tmpDir := t.TempDir()

	resolved, err := fs.NewResolver().ResolveInputs([]string{"missing.json", "src/**/*.elm"}, tmpDir)
	require.NoError(t, err)
	assert.Empty(t, resolved)
}

func TestResolver_ResolveInputs_Deduplicates(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "elm.json")

	resolved, err := fs.NewResolver().ResolveInputs([]string{"elm.json", "*.json", filepath.Join(tmpDir, "elm.json")}, tmpDir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(tmpDir, "elm.json")}, resolved)
}

func TestResolver_ResolveInputs_SkipsDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "src/Main.elm")

	resolved, err := fs.NewResolver().ResolveInputs([]string{"*"}, tmpDir)
	require.NoError(t, err)
	assert.Empty(t, resolved)
}
