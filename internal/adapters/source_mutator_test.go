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

	"fatpack/internal/types"
)

func writeUnit(t *testing.T, root string, rel string, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readUnit(t *testing.T, root string, rel string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(root, rel))
	require.NoError(t, err)
	return string(content)
}

func TestBeginMutatesAndRestoreReverts(t *testing.T) {
	root := t.TempDir()
	writeUnit(t, root, "src/Widget.m", "// widget impl\n")
	writeUnit(t, root, "src/Gadget.m", "// gadget impl\n")
	trampolines := []types.Trampoline{
		{SourcePath: "src/Widget.m", Identifier: "fatpack_keep_widget"},
		{SourcePath: "src/Gadget.m", Identifier: "fatpack_keep_gadget"},
	}

	mutator := NewSourceMutatorAdapter()
	manifest, err := mutator.Begin(context.Background(), root, trampolines)
	require.NoError(t, err)
	assert.NotEmpty(t, manifest.TransactionID)
	require.Len(t, manifest.Entries, 2)

	mutated := readUnit(t, root, "src/Widget.m")
	assert.True(t, strings.HasPrefix(mutated, "// widget impl\n"), "mutation must be append-only")
	assert.Contains(t, mutated, "void fatpack_keep_widget(void) {}")
	assert.FileExists(t, filepath.Join(root, "src/Widget.m"+backupSuffix))
	assert.FileExists(t, filepath.Join(root, snapshotManifestName))

	require.NoError(t, mutator.Restore(context.Background(), root, manifest))
	assert.Equal(t, "// widget impl\n", readUnit(t, root, "src/Widget.m"))
	assert.Equal(t, "// gadget impl\n", readUnit(t, root, "src/Gadget.m"))
	assert.NoFileExists(t, filepath.Join(root, "src/Widget.m"+backupSuffix))
	assert.NoFileExists(t, filepath.Join(root, snapshotManifestName))
}

func TestBeginAllOrNothingOnMissingUnit(t *testing.T) {
	root := t.TempDir()
	writeUnit(t, root, "src/Widget.m", "// widget impl\n")
	trampolines := []types.Trampoline{
		{SourcePath: "src/Widget.m", Identifier: "fatpack_keep_widget"},
		{SourcePath: "src/Ghost.m", Identifier: "fatpack_keep_ghost"},
	}

	mutator := NewSourceMutatorAdapter()
	_, err := mutator.Begin(context.Background(), root, trampolines)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))

	// The existing unit must be untouched: no mutation, no backup, no
	// manifest.
	assert.Equal(t, "// widget impl\n", readUnit(t, root, "src/Widget.m"))
	assert.NoFileExists(t, filepath.Join(root, "src/Widget.m"+backupSuffix))
	assert.NoFileExists(t, filepath.Join(root, snapshotManifestName))
}

func TestBeginRefusesWhenManifestPresent(t *testing.T) {
	root := t.TempDir()
	writeUnit(t, root, "src/Widget.m", "// widget impl\n")
	require.NoError(t, os.WriteFile(filepath.Join(root, snapshotManifestName), []byte("transaction_id: old\n"), 0o644))

	mutator := NewSourceMutatorAdapter()
	_, err := mutator.Begin(context.Background(), root, []types.Trampoline{
		{SourcePath: "src/Widget.m", Identifier: "fatpack_keep_widget"},
	})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
}

func TestRecoverRestoresLeftoverSnapshot(t *testing.T) {
	root := t.TempDir()
	writeUnit(t, root, "src/Widget.m", "// widget impl\n")
	mutator := NewSourceMutatorAdapter()
	_, err := mutator.Begin(context.Background(), root, []types.Trampoline{
		{SourcePath: "src/Widget.m", Identifier: "fatpack_keep_widget"},
	})
	require.NoError(t, err)

	// Simulate an interrupted run: the manifest and mutated unit are
	// left behind and a fresh adapter finds them.
	recovered, err := NewSourceMutatorAdapter().Recover(context.Background(), root)
	require.NoError(t, err)
	assert.True(t, recovered)
	assert.Equal(t, "// widget impl\n", readUnit(t, root, "src/Widget.m"))
	assert.NoFileExists(t, filepath.Join(root, snapshotManifestName))

	recovered, err = NewSourceMutatorAdapter().Recover(context.Background(), root)
	require.NoError(t, err)
	assert.False(t, recovered, "nothing left to recover")
}

func TestRestoreAcceptsMissingBackupWhenUnitMatchesChecksum(t *testing.T) {
	root := t.TempDir()
	writeUnit(t, root, "src/Widget.m", "// widget impl\n")
	mutator := NewSourceMutatorAdapter()
	manifest, err := mutator.Begin(context.Background(), root, []types.Trampoline{
		{SourcePath: "src/Widget.m", Identifier: "fatpack_keep_widget"},
	})
	require.NoError(t, err)

	// Put the unit back by hand and drop the backup; restore must treat
	// the matching checksum as already-restored.
	writeUnit(t, root, "src/Widget.m", "// widget impl\n")
	require.NoError(t, os.Remove(filepath.Join(root, "src/Widget.m"+backupSuffix)))
	require.NoError(t, mutator.Restore(context.Background(), root, manifest))
}

func TestRestoreRejectsTamperedBackup(t *testing.T) {
	root := t.TempDir()
	writeUnit(t, root, "src/Widget.m", "// widget impl\n")
	mutator := NewSourceMutatorAdapter()
	manifest, err := mutator.Begin(context.Background(), root, []types.Trampoline{
		{SourcePath: "src/Widget.m", Identifier: "fatpack_keep_widget"},
	})
	require.NoError(t, err)

	writeUnit(t, root, "src/Widget.m"+backupSuffix, "// tampered\n")
	err = mutator.Restore(context.Background(), root, manifest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")
}
