package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"fatpack/internal/adapters"
	"fatpack/internal/core"
	"fatpack/internal/shared"
	"fatpack/internal/types"
)

// ReferenceDirName is the fixed relative location of the reference
// directory inside a consumer workspace.
const ReferenceDirName = "libraries"

// Sync resolves the consumer's declared dependencies against the
// repository and makes the reference directory match: missing links are
// created, correct ones kept, stale ones pruned.  Declarations that do
// not resolve are advisory unless strict mode is on; processing always
// covers every declared pair.
func (s Service) Sync(ctx context.Context, req SyncRequest) (SyncResult, error) {
	workspace := strings.TrimSpace(req.WorkspaceRoot)
	if workspace == "" {
		workspace = "."
	}
	repoRoot := shared.FirstNonEmpty(req.RepoRoot, DefaultRepoRoot())
	configuration := strings.ToLower(shared.FirstNonEmpty(req.Configuration, "release"))
	declarationsPath := shared.FirstNonEmpty(req.Declarations, filepath.Join(workspace, adapters.DependencyListFileName))

	declared, err := s.Lists.ReadDeclarations(declarationsPath)
	if err != nil {
		return SyncResult{}, err
	}
	packages, err := s.Repo.ListPackages(repoRoot)
	if err != nil {
		return SyncResult{}, err
	}
	available := make(map[string]types.PackageInfo, len(packages))
	for _, info := range packages {
		available[info.DirName] = info
	}

	refDir := filepath.Join(workspace, ReferenceDirName)
	existing, err := s.References.ExistingLinks(refDir)
	if err != nil {
		return SyncResult{}, err
	}
	plan := core.BuildReferencePlan(declared, available, existing, configuration)

	result := SyncResult{}
	for _, info := range plan.Create {
		if err := s.References.CreateLink(refDir, info); err != nil {
			return result, err
		}
		result.Created = append(result.Created, info.DirName)
	}
	for _, info := range plan.Keep {
		// Re-assert kept links so a link whose target moved with the
		// repository is repointed.
		if err := s.References.CreateLink(refDir, info); err != nil {
			return result, err
		}
		result.Kept = append(result.Kept, info.DirName)
	}
	for _, name := range plan.Remove {
		if err := s.References.RemoveLink(refDir, name); err != nil {
			return result, err
		}
		result.Removed = append(result.Removed, name)
	}
	for _, miss := range plan.Missed {
		dirName := core.ExpectedDirName(miss, configuration)
		log.Ctx(ctx).Warn().
			Str("dependency", miss.Name).
			Str("version", miss.Version).
			Str("expected", dirName).
			Msg("declared dependency not found in repository")
		result.Missed = append(result.Missed, dirName)
	}
	if req.Strict && len(result.Missed) > 0 {
		return result, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("unresolved dependencies: %s", strings.Join(result.Missed, ", ")))
	}
	return result, nil
}
