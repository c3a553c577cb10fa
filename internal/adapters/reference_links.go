package adapters

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"fatpack/internal/ports"
	"fatpack/internal/types"
)

// ReferenceLinksAdapter manages the consumer workspace's reference
// directory.  Only symbolic links are ever created or removed; regular
// files and directories placed there by other means are left alone.
type ReferenceLinksAdapter struct{}

func NewReferenceLinksAdapter() ReferenceLinksAdapter {
	return ReferenceLinksAdapter{}
}

func (a ReferenceLinksAdapter) ExistingLinks(refDir string) ([]string, error) {
	entries, err := os.ReadDir(refDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read reference directory").
			WithCause(err)
	}
	var links []string
	for _, entry := range entries {
		if entry.Type()&os.ModeSymlink == 0 {
			continue
		}
		links = append(links, entry.Name())
	}
	return links, nil
}

func (a ReferenceLinksAdapter) CreateLink(refDir string, info types.PackageInfo) error {
	if err := os.MkdirAll(refDir, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodePermissionDenied).
			WithMsg("reference directory not creatable").
			WithCause(err)
	}
	linkPath := filepath.Join(refDir, info.DirName)
	if target, err := os.Readlink(linkPath); err == nil {
		if target == info.Path {
			return nil
		}
		// Same name, wrong target: repoint it.
		if err := os.Remove(linkPath); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to replace reference link").
				WithCause(err)
		}
	}
	if err := os.Symlink(info.Path, linkPath); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create reference link").
			WithCause(err)
	}
	return nil
}

func (a ReferenceLinksAdapter) RemoveLink(refDir string, name string) error {
	linkPath := filepath.Join(refDir, name)
	fileInfo, err := os.Lstat(linkPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to inspect reference entry").
			WithCause(err)
	}
	if fileInfo.Mode()&os.ModeSymlink == 0 {
		// Not ours to remove.
		return nil
	}
	if err := os.Remove(linkPath); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to remove stale reference link").
			WithCause(err)
	}
	return nil
}

var _ ports.ReferencePort = ReferenceLinksAdapter{}
