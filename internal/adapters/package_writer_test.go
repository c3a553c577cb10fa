package adapters

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fatpack/internal/core"
	"fatpack/internal/ports"
	"fatpack/internal/types"
)

func testPackDescriptor(versionTag string) types.Descriptor {
	return types.Descriptor{
		APIVersion: "fatpack/v1",
		Kind:       types.DescriptorKindLibrary,
		Metadata:   types.Metadata{Name: "mylib", VersionTag: versionTag},
		Build:      types.BuildSection{Architectures: []types.Architecture{types.ArchArm64}},
	}
}

func writeAssembleFixture(t *testing.T) (string, ports.AssembleInputs) {
	t.Helper()
	projectRoot := t.TempDir()

	binaryPath := filepath.Join(projectRoot, "build", "universal", "mylib")
	require.NoError(t, os.MkdirAll(filepath.Dir(binaryPath), 0o755))
	require.NoError(t, os.WriteFile(binaryPath, []byte("fused"), 0o644))

	headerPath := filepath.Join(projectRoot, "src", "api.h")
	require.NoError(t, os.MkdirAll(filepath.Dir(headerPath), 0o755))
	require.NoError(t, os.WriteFile(headerPath, []byte("// api\n"), 0o644))

	assetsDir := filepath.Join(projectRoot, "assets")
	require.NoError(t, os.MkdirAll(assetsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(assetsDir, "mylib_logo.png"), []byte("png"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(assetsDir, "stray.png"), []byte("png"), 0o644))

	bootstrapPath := filepath.Join(projectRoot, "build", "mylib_bootstrap.c")
	require.NoError(t, os.WriteFile(bootstrapPath, []byte("/* bootstrap */\n"), 0o644))

	return projectRoot, ports.AssembleInputs{
		Descriptor:         testPackDescriptor("1.2.0"),
		Configuration:      "release",
		BinaryPath:         binaryPath,
		HeaderPaths:        []string{headerPath},
		ResourceRoot:       projectRoot,
		SourceRoot:         projectRoot,
		BootstrapPath:      bootstrapPath,
		ResourceNamingMode: types.NamingPolicyWarn,
	}
}

func TestAssemblePublishesCompleteLayout(t *testing.T) {
	_, inputs := writeAssembleFixture(t)
	repoRoot := t.TempDir()

	writer := NewPackageWriterAdapter()
	info, violations, err := writer.Assemble(context.Background(), repoRoot, inputs)
	require.NoError(t, err)

	assert.Equal(t, "mylib-1.2.0-release", info.DirName)
	assert.Equal(t, filepath.Join(repoRoot, "mylib-1.2.0-release"), info.Path)

	assert.FileExists(t, filepath.Join(info.Path, "mylib.framework", "mylib"))
	assert.FileExists(t, filepath.Join(info.Path, core.HeadersDirName, "api.h"))
	assert.FileExists(t, filepath.Join(info.Path, core.ResourcesDirName, "assets", "mylib_logo.png"))
	assert.FileExists(t, filepath.Join(info.Path, "mylib_bootstrap.c"))
	assert.NoDirExists(t, filepath.Join(info.Path, core.SourcesDirName))

	require.Len(t, violations, 1)
	assert.True(t, strings.HasSuffix(violations[0].Path, "stray.png"))

	// Staging directories must not survive publication.
	entries, err := os.ReadDir(repoRoot)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "mylib-1.2.0-release", entries[0].Name())
}

func TestAssembleEmbedSourceOmitsBootstrap(t *testing.T) {
	projectRoot, inputs := writeAssembleFixture(t)
	srcPath := filepath.Join(projectRoot, "src", "Widget.m")
	require.NoError(t, os.WriteFile(srcPath, []byte("// widget impl\n"), 0o644))
	inputs.EmbedSource = true
	repoRoot := t.TempDir()

	writer := NewPackageWriterAdapter()
	info, _, err := writer.Assemble(context.Background(), repoRoot, inputs)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(info.Path, core.SourcesDirName, "src", "Widget.m"))
	assert.FileExists(t, filepath.Join(info.Path, core.SourcesDirName, "src", "api.h"))
	assert.NoFileExists(t, filepath.Join(info.Path, "mylib_bootstrap.c"))
}

func TestAssembleMissingHeaderIsFatal(t *testing.T) {
	_, inputs := writeAssembleFixture(t)
	inputs.HeaderPaths = append(inputs.HeaderPaths, filepath.Join(t.TempDir(), "ghost.h"))
	repoRoot := t.TempDir()

	writer := NewPackageWriterAdapter()
	_, _, err := writer.Assemble(context.Background(), repoRoot, inputs)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "ghost.h")

	// Nothing published, nothing staged.
	entries, err := os.ReadDir(repoRoot)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAssembleHeaderNameCollisionIsFatal(t *testing.T) {
	projectRoot, inputs := writeAssembleFixture(t)
	other := filepath.Join(projectRoot, "legacy", "api.h")
	require.NoError(t, os.MkdirAll(filepath.Dir(other), 0o755))
	require.NoError(t, os.WriteFile(other, []byte("// old api\n"), 0o644))
	inputs.HeaderPaths = append(inputs.HeaderPaths, other)
	repoRoot := t.TempDir()

	writer := NewPackageWriterAdapter()
	_, _, err := writer.Assemble(context.Background(), repoRoot, inputs)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "api.h")

	entries, err := os.ReadDir(repoRoot)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAssembleRejectModeBlocksPublication(t *testing.T) {
	_, inputs := writeAssembleFixture(t)
	inputs.ResourceNamingMode = types.NamingPolicyReject
	repoRoot := t.TempDir()

	writer := NewPackageWriterAdapter()
	_, _, err := writer.Assemble(context.Background(), repoRoot, inputs)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))

	entries, err := os.ReadDir(repoRoot)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAssembleReplacesPreviousPackage(t *testing.T) {
	_, inputs := writeAssembleFixture(t)
	repoRoot := t.TempDir()
	stale := filepath.Join(repoRoot, "mylib-1.2.0-release", "leftover.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	writer := NewPackageWriterAdapter()
	info, _, err := writer.Assemble(context.Background(), repoRoot, inputs)
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(info.Path, "leftover.txt"))
	assert.FileExists(t, filepath.Join(info.Path, "mylib.framework", "mylib"))
}
