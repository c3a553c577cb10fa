package adapters

import (
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"fatpack/internal/core"
	"fatpack/internal/ports"
	"fatpack/internal/types"
)

// ListFileAdapter reads the plain-text interchange lists: one token per
// line, blank lines and #-comments ignored.
type ListFileAdapter struct{}

func NewListFileAdapter() ListFileAdapter {
	return ListFileAdapter{}
}

func (a ListFileAdapter) ReadPaths(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("list file not found").
			WithCause(err)
	}
	var paths []string
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		paths = append(paths, trimmed)
	}
	return paths, nil
}

func (a ListFileAdapter) ReadDeclarations(path string) ([]types.DependencyDeclaration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("dependency list not found").
			WithCause(err)
	}
	return core.ParseDeclarations(string(data)), nil
}

var _ ports.ListFilePort = ListFileAdapter{}
