package ports

import (
	"context"

	"fatpack/internal/types"
)

// AssembleInputs carries everything the package writer stages: the
// fused binary, the declared public headers, the resource walk, the
// optional bootstrap unit, and optional embedded sources.
type AssembleInputs struct {
	Descriptor         types.Descriptor
	Configuration      string
	BinaryPath         string
	HeaderPaths        []string
	ResourceRoot       string
	SourceRoot         string
	BootstrapPath      string
	EmbedSource        bool
	ResourceNamingMode types.NamingPolicyMode
}

// AssemblerPort writes the package layout into a staging directory and
// publishes it atomically under the final name inside the repository
// root.  A failed assembly leaves no partial package visible.
type AssemblerPort interface {
	Assemble(ctx context.Context, repoRoot string, inputs AssembleInputs) (types.PackageInfo, []types.ResourceViolation, error)
}
