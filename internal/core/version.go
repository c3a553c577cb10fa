package core

import (
	"sort"

	debversion "github.com/knqyf263/go-deb-version"
)

// SortVersionTags orders version tags newest first for repository
// listings.  Tags that do not parse as versions sort after those that
// do, lexically among themselves, so a stray directory never hides a
// real version.
func SortVersionTags(tags []string) []string {
	ordered := append([]string(nil), tags...)
	sort.SliceStable(ordered, func(i, j int) bool {
		vi, erri := debversion.NewVersion(ordered[i])
		vj, errj := debversion.NewVersion(ordered[j])
		if erri == nil && errj == nil {
			return vi.GreaterThan(vj)
		}
		if erri == nil {
			return true
		}
		if errj == nil {
			return false
		}
		return ordered[i] < ordered[j]
	})
	return ordered
}
