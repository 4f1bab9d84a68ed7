package domain

// TransformResult is the outcome of a transform: either compiled code, or empty
// output paired with the diagnostic that caused it.
type TransformResult struct {
	code       string
	diagnostic error
}

// Compiled returns a successful result carrying code.
func Compiled(code string) TransformResult {
	return TransformResult{code: code}
}

// EmptyWithDiagnostic returns a failed result. Its code is always empty.
func EmptyWithDiagnostic(err error) TransformResult {
	return TransformResult{diagnostic: err}
}

// Code returns the text to emit. It is empty when the transform failed.
func (r TransformResult) Code() string {
	return r.code
}

// Diagnostic returns the error that forced empty output, or nil.
func (r TransformResult) Diagnostic() error {
	return r.diagnostic
}

// Failed reports whether the result carries a diagnostic.
func (r TransformResult) Failed() bool {
	return r.diagnostic != nil
}
