package app

import (
	"context"
	"strings"
)

// Restore runs the leftover-snapshot recovery on its own, for use
// after an interrupted pack run without starting a new one.
func (s Service) Restore(ctx context.Context, req RestoreRequest) (RestoreResult, error) {
	projectRoot := strings.TrimSpace(req.ProjectRoot)
	if projectRoot == "" {
		projectRoot = "."
	}
	recovered, err := s.Mutator.Recover(ctx, projectRoot)
	if err != nil {
		return RestoreResult{}, err
	}
	return RestoreResult{Recovered: recovered}, nil
}
