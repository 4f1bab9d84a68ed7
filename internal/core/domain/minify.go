package domain

// MinifyRules is the compressor rule set applied to optimized output.
type MinifyRules struct {
	// PureFuncs are helper functions whose calls may be dropped when the result is unused.
	PureFuncs []string
	// KeepFuncArgs retains unused function parameters.
	KeepFuncArgs bool
	// PureGetters treats property access as side-effect free.
	PureGetters bool
	// UnsafeComparisons allows comparison rewrites that assume no coercion.
	UnsafeComparisons bool
	// Unsafe enables numeric and boolean simplifications unsound for general code.
	Unsafe bool
}

// ElmMinifyRules returns the rule set for compiled Elm output. It is only sound
// because Elm output never mutates through getters or throws from its helpers.
func ElmMinifyRules() MinifyRules {
	return MinifyRules{
		PureFuncs: []string{
			"F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9",
			"A2", "A3", "A4", "A5", "A6", "A7", "A8", "A9",
		},
		KeepFuncArgs:      false,
		PureGetters:       true,
		UnsafeComparisons: true,
		Unsafe:            true,
	}
}

// MinifyOptions configures a single minifier invocation.
type MinifyOptions struct {
	// PathToMinifier is the UglifyJS executable. Empty means "uglifyjs" from PATH.
	PathToMinifier string
	Rules          MinifyRules
}
