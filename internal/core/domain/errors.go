package domain

import "go.trai.ch/zerr"

var (
	// ErrCompileFailed is returned when the Elm compiler exits with an error.
	ErrCompileFailed = zerr.New("elm compilation failed")

	// ErrCompilerNotFound is returned when the Elm executable cannot be located.
	ErrCompilerNotFound = zerr.New("elm compiler not found")

	// ErrMinifyFailed is returned when the minifier rejects the compiled output.
	ErrMinifyFailed = zerr.New("minification failed")

	// ErrMinifierNotFound is returned when the minifier executable cannot be located.
	ErrMinifierNotFound = zerr.New("minifier not found")

	// ErrDependencyDiscoveryFailed is returned when the transitive imports of a source file
	// cannot be enumerated.
	ErrDependencyDiscoveryFailed = zerr.New("dependency discovery failed")

	// ErrElmJSONNotFound is returned when no elm.json exists above a source file.
	ErrElmJSONNotFound = zerr.New("elm.json not found")

	// ErrBuildFailed is returned when the bundler reports errors of its own.
	ErrBuildFailed = zerr.New("build failed")

	// ErrInvalidConfig is returned when the project configuration is incomplete or malformed.
	ErrInvalidConfig = zerr.New("invalid configuration")
)
