package app

import (
	"context"
	"sort"
	"strings"

	"fatpack/internal/core"
	"fatpack/internal/shared"
	"fatpack/internal/types"
)

// Inspect lists the repository's packages grouped by name, versions
// ordered newest first.
func (s Service) Inspect(ctx context.Context, req InspectRequest) (InspectResult, error) {
	repoRoot := shared.FirstNonEmpty(req.RepoRoot, DefaultRepoRoot())
	packages, err := s.Repo.ListPackages(repoRoot)
	if err != nil {
		return InspectResult{}, err
	}
	filter := strings.TrimSpace(req.PackageName)
	byName := map[string][]types.PackageInfo{}
	for _, info := range packages {
		if filter != "" && info.Name != filter {
			continue
		}
		byName[info.Name] = append(byName[info.Name], info)
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	result := InspectResult{}
	for _, name := range names {
		group := InspectGroup{Name: name}
		var versions []string
		seen := map[string]struct{}{}
		for _, info := range byName[name] {
			group.DirNames = append(group.DirNames, info.DirName)
			if info.Version == "" {
				continue
			}
			if _, dup := seen[info.Version]; dup {
				continue
			}
			seen[info.Version] = struct{}{}
			versions = append(versions, info.Version)
		}
		group.Versions = core.SortVersionTags(versions)
		sort.Strings(group.DirNames)
		result.Groups = append(result.Groups, group)
	}
	return result, nil
}
