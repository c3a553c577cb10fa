package types

type Architecture string

const (
	ArchArm64  Architecture = "arm64"
	ArchArmv7  Architecture = "armv7"
	ArchX86_64 Architecture = "x86_64"
	ArchI386   Architecture = "i386"
)

type DescriptorKind string

const (
	DescriptorKindLibrary DescriptorKind = "library"
)

// NamingPolicyMode controls what happens when a resource file does not
// carry the package-name prefix: warn keeps packaging going, reject
// fails the run.
type NamingPolicyMode string

const (
	NamingPolicyWarn   NamingPolicyMode = "warn"
	NamingPolicyReject NamingPolicyMode = "reject"
)

// FileClass is the coarse classification the assembler uses to decide
// where (or whether) a file belongs in the package layout.
type FileClass string

const (
	FileClassSource   FileClass = "source"
	FileClassHeader   FileClass = "header"
	FileClassMetadata FileClass = "metadata"
	FileClassResource FileClass = "resource"
)
