package ports

import "go.trai.ch/elmpack/internal/core/domain"

// OutputWriter persists bundler output.
//
//go:generate go run go.uber.org/mock/mockgen -source=writer.go -destination=mocks/mock_writer.go -package=mocks
type OutputWriter interface {
	// Write stores files whose content changed since the last write and returns their paths.
	Write(files []domain.OutputFile, mode domain.CompileMode) ([]string, error)
}
