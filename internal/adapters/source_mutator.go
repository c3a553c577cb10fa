package adapters

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"fatpack/internal/core"
	"fatpack/internal/ports"
	"fatpack/internal/types"
)

const (
	snapshotManifestName = ".fatpack-snapshot.yaml"
	backupSuffix         = ".fatpack-bak"
)

// SourceMutatorAdapter implements the reversible forced-linkage
// mutation as an explicit transaction: manifest first, then backups,
// then append-only mutation.  The manifest's presence in the project
// root is the signal that a run is (or was left) in flight.
type SourceMutatorAdapter struct{}

func NewSourceMutatorAdapter() SourceMutatorAdapter {
	return SourceMutatorAdapter{}
}

func (a SourceMutatorAdapter) Begin(ctx context.Context, projectRoot string, trampolines []types.Trampoline) (types.SnapshotManifest, error) {
	manifestPath := filepath.Join(projectRoot, snapshotManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return types.SnapshotManifest{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("snapshot manifest already present; run recovery before mutating")
	}

	// All-or-nothing: every unit must exist and be writable before any
	// file is touched.
	for _, trampoline := range trampolines {
		path := filepath.Join(projectRoot, trampoline.SourcePath)
		handle, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
		if err != nil {
			code := errbuilder.CodeNotFound
			if os.IsPermission(err) {
				code = errbuilder.CodePermissionDenied
			}
			return types.SnapshotManifest{}, errbuilder.New().
				WithCode(code).
				WithMsg(fmt.Sprintf("forced-linkage unit not mutable: %s", trampoline.SourcePath)).
				WithCause(err)
		}
		_ = handle.Close()
	}

	manifest := types.SnapshotManifest{
		TransactionID: uuid.NewString(),
		StartedAt:     time.Now().UTC(),
	}
	for _, trampoline := range trampolines {
		path := filepath.Join(projectRoot, trampoline.SourcePath)
		content, err := os.ReadFile(path)
		if err != nil {
			return types.SnapshotManifest{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("failed to read forced-linkage unit: %s", trampoline.SourcePath)).
				WithCause(err)
		}
		manifest.Entries = append(manifest.Entries, types.SnapshotEntry{
			Path:       trampoline.SourcePath,
			BackupPath: trampoline.SourcePath + backupSuffix,
			Checksum:   checksum(content),
			Identifier: trampoline.Identifier,
		})
	}
	if err := writeManifest(manifestPath, manifest); err != nil {
		return types.SnapshotManifest{}, err
	}

	for i, entry := range manifest.Entries {
		if err := a.mutateOne(projectRoot, entry); err != nil {
			// Roll back whatever was already mutated so no unit is
			// left changed after a partial failure.
			rollback := manifest
			rollback.Entries = manifest.Entries[:i+1]
			if restoreErr := a.Restore(ctx, projectRoot, rollback); restoreErr != nil {
				log.Ctx(ctx).Error().Err(restoreErr).Msg("rollback after failed mutation also failed")
			}
			return types.SnapshotManifest{}, err
		}
	}
	log.Ctx(ctx).Debug().
		Str("transaction", manifest.TransactionID).
		Int("units", len(manifest.Entries)).
		Msg("source mutation complete")
	return manifest, nil
}

func (a SourceMutatorAdapter) mutateOne(projectRoot string, entry types.SnapshotEntry) error {
	path := filepath.Join(projectRoot, entry.Path)
	backupPath := filepath.Join(projectRoot, entry.BackupPath)
	content, err := os.ReadFile(path)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to read forced-linkage unit: %s", entry.Path)).
			WithCause(err)
	}
	if err := os.WriteFile(backupPath, content, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to write backup: %s", entry.BackupPath)).
			WithCause(err)
	}
	handle, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to open forced-linkage unit: %s", entry.Path)).
			WithCause(err)
	}
	defer handle.Close()
	if _, err := handle.WriteString(core.MutationBlock(entry.Identifier)); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to append trampoline: %s", entry.Path)).
			WithCause(err)
	}
	return nil
}

// Restore puts every entry back bit-for-bit from its backup, removes
// the backups, and discards the manifest.  Restoration is attempted
// for every entry even when an earlier one fails; the first failure is
// returned.
func (a SourceMutatorAdapter) Restore(ctx context.Context, projectRoot string, manifest types.SnapshotManifest) error {
	var firstErr error
	for _, entry := range manifest.Entries {
		if err := a.restoreOne(projectRoot, entry); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("unit", entry.Path).Msg("restore failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if firstErr != nil {
		return firstErr
	}
	manifestPath := filepath.Join(projectRoot, snapshotManifestName)
	if err := os.Remove(manifestPath); err != nil && !os.IsNotExist(err) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to remove snapshot manifest").
			WithCause(err)
	}
	return nil
}

func (a SourceMutatorAdapter) restoreOne(projectRoot string, entry types.SnapshotEntry) error {
	path := filepath.Join(projectRoot, entry.Path)
	backupPath := filepath.Join(projectRoot, entry.BackupPath)
	backup, err := os.ReadFile(backupPath)
	if err != nil {
		if os.IsNotExist(err) {
			// No backup left: the unit is intact only if its content
			// still matches the snapshot checksum.
			current, readErr := os.ReadFile(path)
			if readErr == nil && checksum(current) == entry.Checksum {
				return nil
			}
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("backup missing and unit differs from snapshot: %s", entry.Path))
		}
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to read backup: %s", entry.BackupPath)).
			WithCause(err)
	}
	if checksum(backup) != entry.Checksum {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("backup checksum mismatch, refusing to restore from it: %s", entry.BackupPath))
	}
	if err := os.WriteFile(path, backup, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to restore unit: %s", entry.Path)).
			WithCause(err)
	}
	if err := os.Remove(backupPath); err != nil && !os.IsNotExist(err) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to remove backup: %s", entry.BackupPath)).
			WithCause(err)
	}
	return nil
}

// Recover detects a manifest left behind by an interrupted prior run,
// warns, and restores from it.  Returns true when a leftover snapshot
// was found.
func (a SourceMutatorAdapter) Recover(ctx context.Context, projectRoot string) (bool, error) {
	manifestPath := filepath.Join(projectRoot, snapshotManifestName)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read snapshot manifest").
			WithCause(err)
	}
	var manifest types.SnapshotManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("snapshot manifest is unreadable").
			WithCause(err)
	}
	log.Ctx(ctx).Warn().
		Str("transaction", manifest.TransactionID).
		Time("started_at", manifest.StartedAt).
		Msg("leftover snapshot from interrupted run, restoring")
	if err := a.Restore(ctx, projectRoot, manifest); err != nil {
		return true, err
	}
	return true, nil
}

func writeManifest(path string, manifest types.SnapshotManifest) error {
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode snapshot manifest").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write snapshot manifest").
			WithCause(err)
	}
	return nil
}

func checksum(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

var _ ports.MutatorPort = SourceMutatorAdapter{}
