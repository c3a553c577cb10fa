package core

import (
	"path/filepath"
	"strings"

	"fatpack/internal/types"
)

var sourceExtensions = map[string]struct{}{
	".c": {}, ".cc": {}, ".cpp": {}, ".cxx": {},
	".m": {}, ".mm": {}, ".s": {}, ".swift": {},
}

var headerExtensions = map[string]struct{}{
	".h": {}, ".hh": {}, ".hpp": {}, ".hxx": {}, ".pch": {},
}

var metadataNames = map[string]struct{}{
	".ds_store":  {},
	".gitignore": {},
}

var metadataExtensions = map[string]struct{}{
	".pbxproj":      {},
	".xcworkspace":  {},
	".xcscheme":     {},
	".plist":        {},
	".md":           {},
	".txt":          {},
	".yaml":         {},
	".fatpack-list": {},
	".fatpack-bak":  {},
	".a":            {},
	".o":            {},
}

// ShouldSkipResourceDir excludes build output and hidden directories
// from the resource walk.
func ShouldSkipResourceDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	switch name {
	case "build", "DerivedData":
		return true
	default:
		return false
	}
}

// ClassifyFile buckets a file by name convention.  There is no resource
// manifest: anything that is not source, header, or project metadata is
// a resource.
func ClassifyFile(path string) types.FileClass {
	base := strings.ToLower(filepath.Base(path))
	if _, ok := metadataNames[base]; ok {
		return types.FileClassMetadata
	}
	ext := strings.ToLower(filepath.Ext(base))
	if _, ok := sourceExtensions[ext]; ok {
		return types.FileClassSource
	}
	if _, ok := headerExtensions[ext]; ok {
		return types.FileClassHeader
	}
	if _, ok := metadataExtensions[ext]; ok {
		return types.FileClassMetadata
	}
	return types.FileClassResource
}

// ResourcePrefix is the name prefix a package's resources are expected
// to carry so they survive flattening into a consumer's merged resource
// namespace.
func ResourcePrefix(packageName string) string {
	return packageName + "_"
}

// CheckResourceName reports a violation when a resource file's name
// does not start with the package prefix.  Nil means the convention is
// satisfied.
func CheckResourceName(packageName string, path string) *types.ResourceViolation {
	prefix := ResourcePrefix(packageName)
	if strings.HasPrefix(filepath.Base(path), prefix) {
		return nil
	}
	return &types.ResourceViolation{Path: path, Expected: prefix}
}
