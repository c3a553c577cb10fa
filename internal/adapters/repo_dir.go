package adapters

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"fatpack/internal/core"
	"fatpack/internal/ports"
	"fatpack/internal/types"
)

// RepoDirAdapter scans the flat repository directory.  Entries that do
// not follow the package naming convention (including staging leftovers
// and hidden files) are skipped.
type RepoDirAdapter struct{}

func NewRepoDirAdapter() RepoDirAdapter {
	return RepoDirAdapter{}
}

func (a RepoDirAdapter) ListPackages(repoRoot string) ([]types.PackageInfo, error) {
	entries, err := os.ReadDir(repoRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read repository root").
			WithCause(err)
	}
	var packages []types.PackageInfo
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, ok := core.ParsePackageDirName(entry.Name())
		if !ok {
			continue
		}
		info.Path = filepath.Join(repoRoot, entry.Name())
		packages = append(packages, info)
	}
	return packages, nil
}

var _ ports.RepoPort = RepoDirAdapter{}
