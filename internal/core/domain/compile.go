package domain

// CompileMode selects how the Elm compiler emits code.
type CompileMode int

const (
	// ModeDebug keeps diagnostic information and enables the time-travelling debugger.
	ModeDebug CompileMode = iota
	// ModeOptimize strips debug information and is followed by minification.
	ModeOptimize
)

// ModeFromOptimize maps the optimize flag onto a CompileMode.
func ModeFromOptimize(optimize bool) CompileMode {
	if optimize {
		return ModeOptimize
	}
	return ModeDebug
}

// String returns the string representation of the CompileMode.
func (m CompileMode) String() string {
	if m == ModeOptimize {
		return "optimize"
	}
	return "debug"
}

// Flag returns the elm make flag selecting this mode.
func (m CompileMode) Flag() string {
	return "--" + m.String()
}

// CompileOptions configures a single compiler invocation.
type CompileOptions struct {
	Mode CompileMode
	// PathToElm is the compiler executable. Empty means "elm" from PATH.
	PathToElm string
	// Cwd is the directory elm make runs in. Empty means the current directory.
	Cwd string
}

// TransformRequest describes one source file handed to the transform plugin.
type TransformRequest struct {
	Path     string
	Compiler CompileOptions
	// PathToMinifier is the minifier used in optimize mode. Empty means "uglifyjs" from PATH.
	PathToMinifier string
}

// Mode returns the compile mode of the request.
func (r TransformRequest) Mode() CompileMode {
	return r.Compiler.Mode
}
