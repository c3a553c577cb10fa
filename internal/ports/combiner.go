package ports

import (
	"context"

	"fatpack/internal/types"
)

// CombinerPort fuses one static library per architecture into a single
// universal binary at outputPath.  Implementations fail, naming the
// architecture, when any input is missing.
type CombinerPort interface {
	Combine(ctx context.Context, inputs map[types.Architecture]string, outputPath string) error
}
