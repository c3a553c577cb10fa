package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"fatpack/internal/adapters"
	"fatpack/internal/core"
	"fatpack/internal/ports"
	"fatpack/internal/shared"
	"fatpack/internal/types"
)

// Pack runs the full assembly pipeline for one package: recover any
// leftover snapshot, mutate the forced-linkage units, invoke the
// external build once per architecture, restore the units, fuse the
// per-architecture binaries, emit the bootstrap unit, and publish the
// package layout into the repository.  Mutated units are restored on
// every exit path after mutation begins.
func (s Service) Pack(ctx context.Context, req PackRequest) (PackResult, error) {
	projectRoot := strings.TrimSpace(req.ProjectRoot)
	if projectRoot == "" {
		projectRoot = "."
	}
	descriptor, err := s.Descriptor.LoadDescriptor(filepath.Join(projectRoot, adapters.DescriptorFileName))
	if err != nil {
		return PackResult{}, err
	}
	if req.VersionTag != "" {
		descriptor.Metadata.VersionTag = req.VersionTag
	}
	if !core.ValidVersionTag(descriptor.Metadata.VersionTag) {
		return PackResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("version tag must start with a digit: " + descriptor.Metadata.VersionTag)
	}
	name := descriptor.Metadata.Name
	configuration := strings.ToLower(shared.FirstNonEmpty(req.Configuration, descriptor.Defaults.Configuration, "release"))
	embedSource := req.EmbedSource || descriptor.Build.EmbedSource
	minPlatform := shared.FirstNonEmpty(req.MinPlatform, descriptor.Build.MinPlatform)
	repoRoot := shared.FirstNonEmpty(req.RepoRoot, descriptor.Defaults.RepoRoot, DefaultRepoRoot())
	buildCommand := shared.FirstNonEmpty(req.BuildCommand, descriptor.Defaults.BuildCommand)
	buildDir := filepath.Join(projectRoot, shared.FirstNonEmpty(descriptor.Build.OutputDir, "build"))
	namingMode := descriptor.Policies.ResourceNaming
	if req.StrictResources {
		namingMode = types.NamingPolicyReject
	}

	// The header list is required for a usable package; its absence is
	// a configuration failure before any mutation happens.
	headerListPath := filepath.Join(projectRoot, shared.FirstNonEmpty(descriptor.Inputs.HeaderList, adapters.HeaderListFileName))
	headerRels, err := s.Lists.ReadPaths(headerListPath)
	if err != nil {
		return PackResult{}, err
	}
	headerPaths := make([]string, 0, len(headerRels))
	for _, rel := range headerRels {
		headerPaths = append(headerPaths, filepath.Join(projectRoot, rel))
	}

	// The forced-linkage list is conventional: a project with no
	// indirectly-dispatched units simply omits it.
	trampolines, err := s.loadTrampolines(projectRoot, descriptor)
	if err != nil {
		return PackResult{}, err
	}

	if recovered, err := s.Mutator.Recover(ctx, projectRoot); err != nil {
		return PackResult{}, err
	} else if recovered {
		log.Ctx(ctx).Warn().Msg("recovered mutated units from a previous interrupted run")
	}

	var manifest types.SnapshotManifest
	mutated := false
	if len(trampolines) > 0 {
		manifest, err = s.Mutator.Begin(ctx, projectRoot, trampolines)
		if err != nil {
			return PackResult{}, err
		}
		mutated = true
	}
	restored := false
	defer func() {
		if mutated && !restored {
			if restoreErr := s.Mutator.Restore(ctx, projectRoot, manifest); restoreErr != nil {
				log.Ctx(ctx).Error().Err(restoreErr).Msg("restore on abnormal exit failed")
			}
		}
	}()

	runner := s.NewBuildRunner(buildCommand)
	var buildErr error
	for _, arch := range descriptor.Build.Architectures {
		if buildErr = runner.RunBuild(ctx, projectRoot, configuration, arch, minPlatform); buildErr != nil {
			break
		}
		log.Ctx(ctx).Debug().Str("arch", string(arch)).Msg("architecture built")
	}
	if mutated {
		restoreErr := s.Mutator.Restore(ctx, projectRoot, manifest)
		restored = true
		if restoreErr != nil && buildErr == nil {
			buildErr = restoreErr
		}
	}
	if buildErr != nil {
		return PackResult{}, buildErr
	}

	binaryInputs := map[types.Architecture]string{}
	for _, arch := range descriptor.Build.Architectures {
		binaryInputs[arch] = core.ArchBinaryPath(buildDir, configuration, arch, name)
	}
	universalPath := filepath.Join(buildDir, "universal", name)
	if err := s.Combiner.Combine(ctx, binaryInputs, universalPath); err != nil {
		return PackResult{}, err
	}

	bootstrapPath := ""
	if !embedSource && len(trampolines) > 0 {
		bootstrapPath, err = s.Emitter.Emit(filepath.Join(buildDir, "bootstrap"), name, trampolines)
		if err != nil {
			return PackResult{}, err
		}
	}

	resourceRoot := projectRoot
	if descriptor.Inputs.ResourceRoot != "" {
		resourceRoot = filepath.Join(projectRoot, descriptor.Inputs.ResourceRoot)
	}
	sourceRoot := projectRoot
	if descriptor.Inputs.SourceRoot != "" {
		sourceRoot = filepath.Join(projectRoot, descriptor.Inputs.SourceRoot)
	}

	info, violations, err := s.Assembler.Assemble(ctx, repoRoot, ports.AssembleInputs{
		Descriptor:         descriptor,
		Configuration:      configuration,
		BinaryPath:         universalPath,
		HeaderPaths:        headerPaths,
		ResourceRoot:       resourceRoot,
		SourceRoot:         sourceRoot,
		BootstrapPath:      bootstrapPath,
		EmbedSource:        embedSource,
		ResourceNamingMode: namingMode,
	})
	if err != nil {
		return PackResult{}, err
	}
	log.Ctx(ctx).Info().
		Str("package", info.DirName).
		Int("architectures", len(descriptor.Build.Architectures)).
		Msg("package published")
	return PackResult{
		PackageDir:    info.DirName,
		PackagePath:   info.Path,
		Architectures: len(descriptor.Build.Architectures),
		Violations:    len(violations),
	}, nil
}

func (s Service) loadTrampolines(projectRoot string, descriptor types.Descriptor) ([]types.Trampoline, error) {
	listPath := filepath.Join(projectRoot, shared.FirstNonEmpty(descriptor.Inputs.ForcedLinkageList, adapters.ForcedLinkageListFileName))
	paths, err := s.Lists.ReadPaths(listPath)
	if err != nil {
		if errbuilder.CodeOf(err) == errbuilder.CodeNotFound {
			return nil, nil
		}
		return nil, err
	}
	return core.DeriveTrampolines(paths)
}
