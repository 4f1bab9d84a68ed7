package config

// Elmpackfile represents the structure of the elmpack.yaml configuration file.
type Elmpackfile struct {
	Entry      string      `yaml:"entry"`
	Module     string      `yaml:"module"`
	Mount      string      `yaml:"mount"`
	Stylesheet string      `yaml:"stylesheet"`
	OutDir     string      `yaml:"outdir"`
	Output     string      `yaml:"output"`
	Optimize   bool        `yaml:"optimize"`
	Compiler   CompilerDTO `yaml:"compiler"`
	Minifier   MinifierDTO `yaml:"minifier"`
	Watch      []string    `yaml:"watch"`
	Serve      ServeDTO    `yaml:"serve"`
}

// CompilerDTO configures the Elm compiler invocation.
type CompilerDTO struct {
	Path string `yaml:"path"`
	Cwd  string `yaml:"cwd"`
}

// MinifierDTO configures the UglifyJS invocation used in optimize mode.
type MinifierDTO struct {
	Path string `yaml:"path"`
}

// ServeDTO configures the development server.
type ServeDTO struct {
	Dir  string `yaml:"servedir"`
	Port int    `yaml:"port"`
}
