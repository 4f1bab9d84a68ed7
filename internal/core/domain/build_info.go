package domain

import "time"

// OutputFile is a file produced by the bundler.
type OutputFile struct {
	Path     string
	Contents []byte
}

// BuildOutput is the result of one bundler pass.
type BuildOutput struct {
	Files    []OutputFile
	Errors   []string
	Warnings []string
}

// BuildInfo records the last emitted version of an output file.
type BuildInfo struct {
	Path      string    `json:"path,omitzero"`
	Hash      string    `json:"hash,omitzero"`
	Mode      string    `json:"mode,omitzero"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}

// DefaultStorePath is where the build info store lives, relative to the working directory.
const DefaultStorePath = ".elmpack/state.json"
