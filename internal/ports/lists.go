package ports

import "fatpack/internal/types"

// ListFilePort reads the plain-text interchange files: one relative
// path or declaration token per line.
type ListFilePort interface {
	ReadPaths(path string) ([]string, error)
	ReadDeclarations(path string) ([]types.DependencyDeclaration, error)
}
