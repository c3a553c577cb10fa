package ports

import (
	"context"

	"fatpack/internal/types"
)

// BuildRunnerPort invokes the external per-architecture build.  The
// underlying compiler and its manifest are outside this tool; the
// runner only shells out and reports exit status.
type BuildRunnerPort interface {
	RunBuild(ctx context.Context, projectRoot string, configuration string, arch types.Architecture, minPlatform string) error
}
