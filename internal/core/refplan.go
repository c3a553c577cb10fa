package core

import (
	"strings"

	"fatpack/internal/types"
)

// ParseDeclarations reads the consumer-side dependency list: one
// name-plus-optional-version token per line, blank lines and #-comments
// skipped.
func ParseDeclarations(content string) []types.DependencyDeclaration {
	var declarations []types.DependencyDeclaration
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		fields := strings.Fields(trimmed)
		declaration := types.DependencyDeclaration{Name: fields[0]}
		if len(fields) > 1 {
			declaration.Version = fields[1]
		}
		declarations = append(declarations, declaration)
	}
	return declarations
}

// ExpectedDirName is the repository directory name a declaration
// resolves against.  Resolution is exact-match on this name; there is
// no fuzzy or range matching.
func ExpectedDirName(declaration types.DependencyDeclaration, configuration string) string {
	return PackageDirName(declaration.Name, declaration.Version, configuration)
}

// BuildReferencePlan compares the declared set against the repository
// contents and the links already present in the reference directory.
// Links that resolve and already exist are kept, declared packages
// without a link are created, links no longer declared are removed, and
// declarations with no matching package directory are reported as
// misses.  Repeated runs converge to exactly the declared set.
func BuildReferencePlan(
	declared []types.DependencyDeclaration,
	available map[string]types.PackageInfo,
	existing []string,
	configuration string,
) types.ReferencePlan {
	plan := types.ReferencePlan{}
	wanted := map[string]struct{}{}
	existingSet := map[string]struct{}{}
	for _, name := range existing {
		existingSet[name] = struct{}{}
	}
	for _, declaration := range declared {
		dirName := ExpectedDirName(declaration, configuration)
		info, ok := available[dirName]
		if !ok {
			plan.Missed = append(plan.Missed, declaration)
			continue
		}
		wanted[dirName] = struct{}{}
		if _, present := existingSet[dirName]; present {
			plan.Keep = append(plan.Keep, info)
			continue
		}
		plan.Create = append(plan.Create, info)
	}
	for _, name := range existing {
		if _, ok := wanted[name]; !ok {
			plan.Remove = append(plan.Remove, name)
		}
	}
	return plan
}
