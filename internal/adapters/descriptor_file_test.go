package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fatpack/internal/types"
)

const validDescriptorYAML = `api_version: fatpack/v1
kind: library
metadata:
  name: mylib
  version_tag: "1.2.0"
build:
  architectures: [arm64, x86_64]
  min_platform: "12.0"
policies:
  resource_naming: warn
`

func writeDescriptor(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DescriptorFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDescriptorValid(t *testing.T) {
	adapter := NewDescriptorFileAdapter()
	descriptor, err := adapter.LoadDescriptor(writeDescriptor(t, validDescriptorYAML))
	require.NoError(t, err)

	assert.Equal(t, "mylib", descriptor.Metadata.Name)
	assert.Equal(t, "1.2.0", descriptor.Metadata.VersionTag)
	assert.Equal(t, "mylib-1.2.0", descriptor.Identity())
	assert.Equal(t, []types.Architecture{types.ArchArm64, types.ArchX86_64}, descriptor.Build.Architectures)
	assert.Equal(t, types.NamingPolicyWarn, descriptor.Policies.ResourceNaming)
}

func TestLoadDescriptorMissingFile(t *testing.T) {
	adapter := NewDescriptorFileAdapter()
	_, err := adapter.LoadDescriptor(filepath.Join(t.TempDir(), DescriptorFileName))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestLoadDescriptorRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "wrong kind",
			content: `api_version: fatpack/v1
kind: application
metadata:
  name: mylib
build:
  architectures: [arm64]
`,
		},
		{
			name: "no architectures",
			content: `api_version: fatpack/v1
kind: library
metadata:
  name: mylib
build:
  architectures: []
`,
		},
		{
			name: "duplicate architectures",
			content: `api_version: fatpack/v1
kind: library
metadata:
  name: mylib
build:
  architectures: [arm64, arm64]
`,
		},
		{
			name: "version tag without leading digit",
			content: `api_version: fatpack/v1
kind: library
metadata:
  name: mylib
  version_tag: v1.2
build:
  architectures: [arm64]
`,
		},
		{
			name: "bad naming policy",
			content: `api_version: fatpack/v1
kind: library
metadata:
  name: mylib
build:
  architectures: [arm64]
policies:
  resource_naming: ignore
`,
		},
	}
	adapter := NewDescriptorFileAdapter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := adapter.LoadDescriptor(writeDescriptor(t, tt.content))
			require.Error(t, err)
			assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
		})
	}
}
