package core

import (
	"fmt"
	"path/filepath"
	"strings"

	"fatpack/internal/types"
)

// Package layout directory names.  These are the wire format of the
// repository: consumers and the synchronizer both depend on them.
const (
	HeadersDirName   = "include"
	ResourcesDirName = "resources"
	SourcesDirName   = "src"
)

// PackageDirName composes the repository directory name for a package:
// name, optional version tag, and configuration.  Multiple versions and
// configurations of one package coexist side by side under distinct
// names.
func PackageDirName(name string, versionTag string, configuration string) string {
	if versionTag == "" {
		return name + "-" + configuration
	}
	return name + "-" + versionTag + "-" + configuration
}

// FrameworkDirName is the binary holder: a framework-shaped directory
// the host IDE recognizes as an importable binary unit.
func FrameworkDirName(name string) string {
	return name + ".framework"
}

// FrameworkBinaryRelPath is the universal binary's path inside the
// package directory.
func FrameworkBinaryRelPath(name string) string {
	return filepath.Join(FrameworkDirName(name), name)
}

// BootstrapUnitName is the file name of the generated companion unit.
func BootstrapUnitName(name string) string {
	return sanitizeName(name) + "_bootstrap.c"
}

// ValidVersionTag reports whether a version tag round-trips through
// the directory naming convention: empty (untagged) or starting with a
// digit, since ParsePackageDirName recognizes versions by their leading
// digit.
func ValidVersionTag(tag string) bool {
	return tag == "" || (tag[0] >= '0' && tag[0] <= '9')
}

// ParsePackageDirName splits a repository directory name back into its
// identity parts.  The configuration is the last dash-separated
// segment; a preceding segment that starts with a digit is the version
// tag; everything before that is the package name (which may itself
// contain dashes).  Returns false for names that do not fit the
// convention.
func ParsePackageDirName(dirName string) (types.PackageInfo, bool) {
	segments := strings.Split(dirName, "-")
	if len(segments) < 2 {
		return types.PackageInfo{}, false
	}
	configuration := segments[len(segments)-1]
	rest := segments[:len(segments)-1]
	info := types.PackageInfo{DirName: dirName, Configuration: configuration}
	last := rest[len(rest)-1]
	if len(rest) > 1 && last != "" && last[0] >= '0' && last[0] <= '9' {
		info.Version = last
		rest = rest[:len(rest)-1]
	}
	info.Name = strings.Join(rest, "-")
	if info.Name == "" || info.Configuration == "" {
		return types.PackageInfo{}, false
	}
	return info, true
}

// ArchBinaryPath is the build-system-determined output location of one
// per-architecture static library: keyed by configuration and
// architecture, with the conventional lib<name>.a file name.  A project
// whose output name differs from its package name will not be found
// here; that is a documented limitation, surfaced as a missing-binary
// failure by the combiner.
func ArchBinaryPath(buildDir string, configuration string, arch types.Architecture, name string) string {
	slot := fmt.Sprintf("%s-%s", strings.ToLower(configuration), arch)
	return filepath.Join(buildDir, slot, "lib"+name+".a")
}
