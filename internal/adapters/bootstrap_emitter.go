package adapters

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"fatpack/internal/core"
	"fatpack/internal/ports"
	"fatpack/internal/types"
)

// BootstrapEmitterAdapter writes the generated companion unit.  The
// trampoline text it embeds comes from the same renderer the mutator
// uses, so the duplicated definitions cannot drift.
type BootstrapEmitterAdapter struct{}

func NewBootstrapEmitterAdapter() BootstrapEmitterAdapter {
	return BootstrapEmitterAdapter{}
}

func (a BootstrapEmitterAdapter) Emit(destDir string, packageName string, trampolines []types.Trampoline) (string, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create bootstrap output directory").
			WithCause(err)
	}
	path := filepath.Join(destDir, core.BootstrapUnitName(packageName))
	content := core.BootstrapUnit(packageName, trampolines)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write bootstrap unit").
			WithCause(err)
	}
	return path, nil
}

var _ ports.BootstrapEmitterPort = BootstrapEmitterAdapter{}
