package types

import "time"

// SnapshotEntry records one mutated source unit: where the original
// lives, where its backup sits, and the checksum of the original
// content so crash recovery can tell a valid backup from a torn one.
type SnapshotEntry struct {
	Path       string `yaml:"path"`
	BackupPath string `yaml:"backup_path"`
	Checksum   string `yaml:"checksum"`
	Identifier string `yaml:"identifier"`
}

// SnapshotManifest is the on-disk record of an in-flight mutation
// transaction.  Its presence in a project root means a previous run
// was interrupted between mutation and restoration.
type SnapshotManifest struct {
	TransactionID string          `yaml:"transaction_id"`
	StartedAt     time.Time       `yaml:"started_at"`
	Entries       []SnapshotEntry `yaml:"entries"`
}

// Trampoline pairs a forced-linkage source unit with the identifier of
// the inert construct appended to it.
type Trampoline struct {
	SourcePath string
	Identifier string
}
