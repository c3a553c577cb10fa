package ports

import (
	"context"

	"fatpack/internal/types"
)

// MutatorPort is the transactional source-mutation surface.  Begin
// snapshots and mutates every unit or none; Restore puts every unit
// back bit-for-bit and discards the snapshot; Recover handles a
// manifest left behind by an interrupted prior run.
type MutatorPort interface {
	Begin(ctx context.Context, projectRoot string, trampolines []types.Trampoline) (types.SnapshotManifest, error)
	Restore(ctx context.Context, projectRoot string, manifest types.SnapshotManifest) error
	Recover(ctx context.Context, projectRoot string) (bool, error)
}
