package ports

import "fatpack/internal/types"

type BootstrapEmitterPort interface {
	Emit(destDir string, packageName string, trampolines []types.Trampoline) (string, error)
}
