package esbuild

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/elmpack/internal/adapters/bootstrap"
	"go.trai.ch/elmpack/internal/core/domain"
	"go.trai.ch/elmpack/internal/core/ports"
)

const (
	// PluginName is the name the Elm plugin registers with esbuild.
	PluginName = "elm"
	// BootstrapEntry is the virtual entry point resolved to the bootstrap script.
	BootstrapEntry = "elmpack:bootstrap"

	namespace = "elmpack"
)

// Plugin returns an esbuild plugin that loads .elm files through transformer and
// serves the bootstrap script for project as a virtual entry point.
//
// esbuild callbacks carry no context, so ctx is captured for every transform.
func Plugin(ctx context.Context, transformer ports.Transformer, project *domain.Project) api.Plugin {
	return api.Plugin{
		Name: PluginName,
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: "^" + BootstrapEntry + "$"},
				func(api.OnResolveArgs) (api.OnResolveResult, error) {
					return api.OnResolveResult{Path: "bootstrap.js", Namespace: namespace}, nil
				})

			build.OnLoad(api.OnLoadOptions{Filter: `.*`, Namespace: namespace},
				func(api.OnLoadArgs) (api.OnLoadResult, error) {
					script, err := bootstrap.Render(bootstrap.FromProject(project))
					if err != nil {
						return api.OnLoadResult{}, err
					}
					return api.OnLoadResult{
						Contents:   &script,
						ResolveDir: project.Root,
						Loader:     api.LoaderJS,
					}, nil
				})

			build.OnLoad(api.OnLoadOptions{Filter: `\.elm$`, Namespace: "file"},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					return loadElm(ctx, transformer, project, args.Path), nil
				})
		},
	}
}

// loadElm transforms one Elm file. It never fails: a failed transform emits an
// empty module so the rest of the bundle keeps building.
func loadElm(ctx context.Context, transformer ports.Transformer, project *domain.Project, path string) api.OnLoadResult {
	var (
		mu      sync.Mutex
		watched []string
	)
	register := func(dep string) {
		mu.Lock()
		defer mu.Unlock()
		watched = append(watched, dep)
	}

	result := transformer.Transform(ctx, domain.TransformRequest{
		Path:           path,
		Compiler:       project.CompileOptions(),
		PathToMinifier: project.PathToMinifier,
	}, register)

	code := result.Code()
	mu.Lock()
	defer mu.Unlock()
	return api.OnLoadResult{
		Contents:   &code,
		ResolveDir: filepath.Dir(path),
		Loader:     api.LoaderJS,
		WatchFiles: append(watched, project.WatchFiles...),
	}
}
