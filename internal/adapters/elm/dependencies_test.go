package elm_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/elmpack/internal/adapters/elm"
	"go.trai.ch/elmpack/internal/core/domain"
	"go.trai.ch/elmpack/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const applicationManifest = `{
    "type": "application",
    "source-directories": ["src", "vendor"],
    "elm-version": "0.19.1"
}`

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func newCompiler(t *testing.T) *elm.Compiler {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return elm.NewCompiler(log)
}

func TestFindAllDependencies_Transitive(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"elm.json": applicationManifest,
		"src/Main.elm": `module Main exposing (main)

import Browser
import Html exposing (Html)
import Page.Home as Home
import Util
`,
		"src/Page/Home.elm": `module Page.Home exposing (view)

import Util
import Widgets.Button
`,
		"src/Util.elm":              "module Util exposing (..)\n\nimport Main\n",
		"vendor/Widgets/Button.elm": "module Widgets.Button exposing (..)\n",
	})

	deps, err := newCompiler(t).FindAllDependencies(context.Background(), filepath.Join(root, "src", "Main.elm"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "src", "Page", "Home.elm"),
		filepath.Join(root, "src", "Util.elm"),
		filepath.Join(root, "vendor", "Widgets", "Button.elm"),
	}, deps)
}

func TestFindAllDependencies_IgnoresComments(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"elm.json": applicationManifest,
		"src/Main.elm": `module Main exposing (main)

{- import Hidden
   {- nested -}
import AlsoHidden
-}
-- import LineHidden
import Shown
`,
		"src/Hidden.elm":     "module Hidden exposing (..)\n",
		"src/AlsoHidden.elm": "module AlsoHidden exposing (..)\n",
		"src/LineHidden.elm": "module LineHidden exposing (..)\n",
		"src/Shown.elm":      "module Shown exposing (..)\n",
	})

	deps, err := newCompiler(t).FindAllDependencies(context.Background(), filepath.Join(root, "src", "Main.elm"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "src", "Shown.elm")}, deps)
}

func TestFindAllDependencies_NestedSourceFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"elm.json":             applicationManifest,
		"src/Pages/Admin.elm":  "module Pages.Admin exposing (..)\n\nimport Shared\n",
		"src/Shared.elm":       "module Shared exposing (..)\n",
		"src/Pages/Shared.elm": "module Pages.Shared exposing (..)\n",
	})

	deps, err := newCompiler(t).FindAllDependencies(context.Background(), filepath.Join(root, "src", "Pages", "Admin.elm"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "src", "Shared.elm")}, deps)
}

func TestFindAllDependencies_PackageProject(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"elm.json":             `{"type": "package", "name": "author/pkg"}`,
		"src/Lib.elm":          "module Lib exposing (..)\n\nimport Lib.Internal\n",
		"src/Lib/Internal.elm": "module Lib.Internal exposing (..)\n",
	})

	deps, err := newCompiler(t).FindAllDependencies(context.Background(), filepath.Join(root, "src", "Lib.elm"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "src", "Lib", "Internal.elm")}, deps)
}

func TestFindAllDependencies_NoManifest(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"Main.elm": "module Main exposing (..)\n"})

	// A manifest higher up the real filesystem would be picked up instead.
	for dir := root; ; dir = filepath.Dir(dir) {
		if _, err := os.Stat(filepath.Join(dir, "elm.json")); err == nil {
			t.Skip("temporary directory has an elm.json ancestor")
		}
		if filepath.Dir(dir) == dir {
			break
		}
	}

	_, err := newCompiler(t).FindAllDependencies(context.Background(), filepath.Join(root, "Main.elm"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrElmJSONNotFound)
}

func TestFindAllDependencies_MissingEntry(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"elm.json": applicationManifest})

	_, err := newCompiler(t).FindAllDependencies(context.Background(), filepath.Join(root, "src", "Main.elm"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read elm source")
}

func TestFindAllDependencies_InvalidManifest(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"elm.json":     "{",
		"src/Main.elm": "module Main exposing (..)\n",
	})

	_, err := newCompiler(t).FindAllDependencies(context.Background(), filepath.Join(root, "src", "Main.elm"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse elm.json")
}

func TestFindAllDependencies_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"elm.json":     applicationManifest,
		"src/Main.elm": "module Main exposing (..)\n",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newCompiler(t).FindAllDependencies(ctx, filepath.Join(root, "src", "Main.elm"))
	assert.ErrorIs(t, err, context.Canceled)
}
