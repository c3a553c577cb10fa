package types

// DependencyDeclaration is one consumer-declared (name, version) pair.
// Version may be empty, in which case the untagged package directory is
// the resolution target.
type DependencyDeclaration struct {
	Name    string
	Version string
}

// PackageInfo describes one package directory found in the repository.
type PackageInfo struct {
	DirName       string
	Name          string
	Version       string
	Configuration string
	Path          string
}

// ResourceViolation records a resource file whose name does not carry
// the package-name prefix required by the flattened-namespace
// convention.
type ResourceViolation struct {
	Path     string
	Expected string
}

// ReferencePlan is the outcome of comparing declared dependencies with
// the links already present in the consumer's reference directory.
type ReferencePlan struct {
	Create []PackageInfo
	Keep   []PackageInfo
	Remove []string
	Missed []DependencyDeclaration
}
