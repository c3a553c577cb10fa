package adapters

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"fatpack/internal/core"
	"fatpack/internal/policies"
	"fatpack/internal/ports"
	"fatpack/internal/types"
)

// PackageWriterAdapter stages the package layout in a temp directory
// under the repository root and publishes it with a remove-then-rename,
// so the final name is never partially visible.
type PackageWriterAdapter struct{}

func NewPackageWriterAdapter() PackageWriterAdapter {
	return PackageWriterAdapter{}
}

func (a PackageWriterAdapter) Assemble(ctx context.Context, repoRoot string, inputs ports.AssembleInputs) (types.PackageInfo, []types.ResourceViolation, error) {
	name := inputs.Descriptor.Metadata.Name
	dirName := core.PackageDirName(name, inputs.Descriptor.Metadata.VersionTag, inputs.Configuration)
	if err := os.MkdirAll(repoRoot, 0755); err != nil {
		return types.PackageInfo{}, nil, errbuilder.New().
			WithCode(errbuilder.CodePermissionDenied).
			WithMsg("repository root not creatable").
			WithCause(err)
	}
	// Staging happens inside the repository root so the final rename
	// stays on one filesystem.
	stageDir, err := os.MkdirTemp(repoRoot, ".staging-"+dirName+"-")
	if err != nil {
		return types.PackageInfo{}, nil, errbuilder.New().
			WithCode(errbuilder.CodePermissionDenied).
			WithMsg("repository root not writable").
			WithCause(err)
	}
	info, violations, err := a.stage(ctx, stageDir, name, inputs)
	if err != nil {
		_ = os.RemoveAll(stageDir)
		return types.PackageInfo{}, nil, err
	}
	// Policy runs before publication: a rejected package never becomes
	// visible under its final name.
	policy := policies.NewResourceNamingPolicy(inputs.ResourceNamingMode)
	if err := policy.Apply(ctx, violations); err != nil {
		_ = os.RemoveAll(stageDir)
		return types.PackageInfo{}, nil, err
	}
	finalPath := filepath.Join(repoRoot, dirName)
	if err := os.RemoveAll(finalPath); err != nil {
		_ = os.RemoveAll(stageDir)
		return types.PackageInfo{}, nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to remove previous package").
			WithCause(err)
	}
	if err := os.Rename(stageDir, finalPath); err != nil {
		_ = os.RemoveAll(stageDir)
		return types.PackageInfo{}, nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to publish package directory").
			WithCause(err)
	}
	info.DirName = dirName
	info.Path = finalPath
	log.Ctx(ctx).Debug().Str("package", dirName).Msg("package assembled")
	return info, violations, nil
}

func (a PackageWriterAdapter) stage(ctx context.Context, stageDir string, name string, inputs ports.AssembleInputs) (types.PackageInfo, []types.ResourceViolation, error) {
	info := types.PackageInfo{
		Name:          name,
		Version:       inputs.Descriptor.Metadata.VersionTag,
		Configuration: inputs.Configuration,
	}
	if inputs.BinaryPath != "" {
		dest := filepath.Join(stageDir, core.FrameworkBinaryRelPath(name))
		if err := copyFileInto(inputs.BinaryPath, dest); err != nil {
			return info, nil, err
		}
	}
	if err := a.stageHeaders(stageDir, inputs.HeaderPaths); err != nil {
		return info, nil, err
	}
	violations, err := a.stageResources(stageDir, name, inputs.ResourceRoot)
	if err != nil {
		return info, nil, err
	}
	if inputs.EmbedSource {
		// An embedded-source package compiles in the consumer, so the
		// bootstrap unit is unnecessary and omitted.
		if err := a.stageSources(stageDir, inputs.SourceRoot); err != nil {
			return info, nil, err
		}
	} else if inputs.BootstrapPath != "" {
		dest := filepath.Join(stageDir, filepath.Base(inputs.BootstrapPath))
		if err := copyFileInto(inputs.BootstrapPath, dest); err != nil {
			return info, nil, err
		}
	}
	return info, violations, nil
}

func (a PackageWriterAdapter) stageHeaders(stageDir string, headerPaths []string) error {
	// Headers flatten into one directory, so two listed headers sharing
	// a base name would silently overwrite each other.
	staged := map[string]string{}
	for _, header := range headerPaths {
		base := filepath.Base(header)
		if previous, dup := staged[base]; dup {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("header name collision: %s and %s both stage as %s", previous, header, base))
		}
		staged[base] = header
		if _, err := os.Stat(header); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("declared public header not found: %s", header)).
				WithCause(err)
		}
		dest := filepath.Join(stageDir, core.HeadersDirName, base)
		if err := copyFileInto(header, dest); err != nil {
			return err
		}
	}
	return nil
}

func (a PackageWriterAdapter) stageResources(stageDir string, name string, resourceRoot string) ([]types.ResourceViolation, error) {
	if resourceRoot == "" {
		return nil, nil
	}
	if _, err := os.Stat(resourceRoot); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read resource root").
			WithCause(err)
	}
	var violations []types.ResourceViolation
	err := filepath.WalkDir(resourceRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != resourceRoot && core.ShouldSkipResourceDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if core.ClassifyFile(path) != types.FileClassResource {
			return nil
		}
		rel, err := filepath.Rel(resourceRoot, path)
		if err != nil {
			return err
		}
		if violation := core.CheckResourceName(name, path); violation != nil {
			violations = append(violations, *violation)
		}
		return copyFileInto(path, filepath.Join(stageDir, core.ResourcesDirName, rel))
	})
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to stage resources").
			WithCause(err)
	}
	return violations, nil
}

func (a PackageWriterAdapter) stageSources(stageDir string, sourceRoot string) error {
	if sourceRoot == "" {
		return nil
	}
	err := filepath.WalkDir(sourceRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != sourceRoot && core.ShouldSkipResourceDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		class := core.ClassifyFile(path)
		if class != types.FileClassSource && class != types.FileClassHeader {
			return nil
		}
		rel, err := filepath.Rel(sourceRoot, path)
		if err != nil {
			return err
		}
		return copyFileInto(path, filepath.Join(stageDir, core.SourcesDirName, rel))
	})
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to stage embedded sources").
			WithCause(err)
	}
	return nil
}

func copyFileInto(srcPath string, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create package subdirectory").
			WithCause(err)
	}
	srcFile, err := os.Open(srcPath)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("failed to open %s", srcPath)).
			WithCause(err)
	}
	defer srcFile.Close()
	destFile, err := os.Create(destPath)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to create %s", destPath)).
			WithCause(err)
	}
	defer destFile.Close()
	if _, err := io.Copy(destFile, srcFile); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to copy %s", srcPath)).
			WithCause(err)
	}
	return nil
}

var _ ports.AssemblerPort = PackageWriterAdapter{}
