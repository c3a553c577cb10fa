package adapters

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"fatpack/internal/ports"
	"fatpack/internal/shared"
	"fatpack/internal/types"
)

// LipoCombinerAdapter fuses per-architecture static libraries with the
// platform lipo tool.  Inputs are sorted by architecture before the
// call so the invocation is stable; lipo's result does not depend on
// order either way.
type LipoCombinerAdapter struct{}

func NewLipoCombinerAdapter() LipoCombinerAdapter {
	return LipoCombinerAdapter{}
}

func (a LipoCombinerAdapter) Combine(ctx context.Context, inputs map[types.Architecture]string, outputPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(inputs) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no architectures to combine")
	}
	archs := make([]types.Architecture, 0, len(inputs))
	for arch := range inputs {
		archs = append(archs, arch)
	}
	sort.Slice(archs, func(i, j int) bool { return archs[i] < archs[j] })

	paths := make([]string, 0, len(archs))
	for _, arch := range archs {
		path := inputs[arch]
		if _, err := os.Stat(path); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("missing binary for architecture %s (expected at %s; the project's output name must match the package name)", arch, path)).
				WithCause(err)
		}
		paths = append(paths, path)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create universal binary directory").
			WithCause(err)
	}

	args := append([]string{"-create"}, paths...)
	args = append(args, "-output", outputPath)
	cmd := exec.CommandContext(ctx, "lipo", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("lipo failed").
			WithCause(shared.CommandError(output, err))
	}
	log.Ctx(ctx).Debug().
		Int("architectures", len(paths)).
		Str("output", outputPath).
		Msg("universal binary created")
	return nil
}

var _ ports.CombinerPort = LipoCombinerAdapter{}
