// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/elmpack/internal/adapters/cas"
	_ "go.trai.ch/elmpack/internal/adapters/config"
	_ "go.trai.ch/elmpack/internal/adapters/elm"
	_ "go.trai.ch/elmpack/internal/adapters/esbuild"
	_ "go.trai.ch/elmpack/internal/adapters/fs"
	_ "go.trai.ch/elmpack/internal/adapters/logger"
	_ "go.trai.ch/elmpack/internal/adapters/minify"
	_ "go.trai.ch/elmpack/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/elmpack/internal/app"
	_ "go.trai.ch/elmpack/internal/engine/transform"
)
