package ports

// InputResolver expands file patterns into concrete paths.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type InputResolver interface {
	// ResolveInputs resolves patterns relative to root into sorted absolute file paths.
	ResolveInputs(patterns []string, root string) ([]string, error)
}
