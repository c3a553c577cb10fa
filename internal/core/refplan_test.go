package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fatpack/internal/types"
)

func TestParseDeclarations(t *testing.T) {
	content := "mylib 1.2.0\n\n# comment\nother\n  spaced 2.0  \n"
	got := ParseDeclarations(content)
	expected := []types.DependencyDeclaration{
		{Name: "mylib", Version: "1.2.0"},
		{Name: "other"},
		{Name: "spaced", Version: "2.0"},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Fatalf("unexpected declarations (-want +got):\n%s", diff)
	}
}

func TestExpectedDirName(t *testing.T) {
	assert.Equal(t, "mylib-1.2.0-release",
		ExpectedDirName(types.DependencyDeclaration{Name: "mylib", Version: "1.2.0"}, "release"))
	assert.Equal(t, "mylib-release",
		ExpectedDirName(types.DependencyDeclaration{Name: "mylib"}, "release"))
}

func TestBuildReferencePlan(t *testing.T) {
	available := map[string]types.PackageInfo{
		"x-1.0-release": {DirName: "x-1.0-release", Name: "x", Version: "1.0"},
		"y-release":     {DirName: "y-release", Name: "y"},
	}
	declared := []types.DependencyDeclaration{
		{Name: "x", Version: "1.0"},
		{Name: "y"},
		{Name: "ghost", Version: "9.9"},
	}
	plan := BuildReferencePlan(declared, available, []string{"x-1.0-release", "stale-release"}, "release")

	require.Len(t, plan.Keep, 1)
	assert.Equal(t, "x-1.0-release", plan.Keep[0].DirName)
	require.Len(t, plan.Create, 1)
	assert.Equal(t, "y-release", plan.Create[0].DirName)
	assert.Equal(t, []string{"stale-release"}, plan.Remove)
	require.Len(t, plan.Missed, 1)
	assert.Equal(t, "ghost", plan.Missed[0].Name)
}

func TestBuildReferencePlanConverges(t *testing.T) {
	// Declared {X} then {Y}: the second run removes X and creates Y.
	available := map[string]types.PackageInfo{
		"x-release": {DirName: "x-release", Name: "x"},
		"y-release": {DirName: "y-release", Name: "y"},
	}
	first := BuildReferencePlan(
		[]types.DependencyDeclaration{{Name: "x"}}, available, nil, "release")
	require.Len(t, first.Create, 1)
	assert.Equal(t, "x-release", first.Create[0].DirName)
	assert.Empty(t, first.Remove)

	second := BuildReferencePlan(
		[]types.DependencyDeclaration{{Name: "y"}}, available, []string{"x-release"}, "release")
	require.Len(t, second.Create, 1)
	assert.Equal(t, "y-release", second.Create[0].DirName)
	assert.Equal(t, []string{"x-release"}, second.Remove)
}
