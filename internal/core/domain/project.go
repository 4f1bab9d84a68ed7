package domain

import "path/filepath"

// Project is the resolved elmpack configuration.
type Project struct {
	// Root is the directory the configuration was loaded from.
	Root string
	// Entry is the Elm source file holding the application's main module.
	Entry string
	// Module is the Elm module initialized by the bootstrap script.
	Module string
	// MountID is the DOM id of the element the application is attached to.
	MountID string
	// Stylesheet is imported by the bootstrap script when set.
	Stylesheet string
	OutDir     string
	OutputName string
	Optimize   bool
	Compiler   CompileOptions
	// PathToMinifier is the UglifyJS executable used in optimize mode.
	PathToMinifier string
	// WatchFiles are extra files registered with every Elm transform.
	WatchFiles []string
	Serve      ServeOptions
}

// ServeOptions configures the development server used in watch mode.
type ServeOptions struct {
	Dir  string
	Port int
}

// Mode returns the compile mode derived from the Optimize flag.
func (p *Project) Mode() CompileMode {
	return ModeFromOptimize(p.Optimize)
}

// CompileOptions returns the compiler options for this project.
func (p *Project) CompileOptions() CompileOptions {
	opts := p.Compiler
	opts.Mode = p.Mode()
	return opts
}

// Abs resolves path against the project root.
func (p *Project) Abs(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.Root, path)
}
