package ports

import "fatpack/internal/types"

// RepoPort scans the flat repository directory of packages.
type RepoPort interface {
	ListPackages(repoRoot string) ([]types.PackageInfo, error)
}

// ReferencePort owns the consumer workspace's reference directory:
// creating symbolic links into the repository and pruning the stale
// ones.  Non-symlink entries are never touched.
type ReferencePort interface {
	ExistingLinks(refDir string) ([]string, error)
	CreateLink(refDir string, info types.PackageInfo) error
	RemoveLink(refDir string, name string) error
}
