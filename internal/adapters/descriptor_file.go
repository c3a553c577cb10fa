package adapters

import (
	"context"
	"os"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"fatpack/internal/core"
	"fatpack/internal/ports"
	"fatpack/internal/types"
)

// Conventional file names inside a project root.
const (
	DescriptorFileName        = "fatpack.yaml"
	HeaderListFileName        = "headers.fatpack-list"
	ForcedLinkageListFileName = "forced-linkage.fatpack-list"
	DependencyListFileName    = "dependencies.fatpack-list"
)

type DescriptorFileAdapter struct{}

func NewDescriptorFileAdapter() DescriptorFileAdapter {
	return DescriptorFileAdapter{}
}

func (a DescriptorFileAdapter) LoadDescriptor(path string) (types.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Descriptor{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("descriptor file not found").
			WithCause(err)
	}
	var descriptor types.Descriptor
	if err := yaml.Unmarshal(data, &descriptor); err != nil {
		return types.Descriptor{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse descriptor yaml").
			WithCause(err)
	}
	if err := validateDescriptor(descriptor); err != nil {
		return types.Descriptor{}, err
	}
	return descriptor, nil
}

func validateDescriptor(descriptor types.Descriptor) error {
	ctx := context.Background()
	assert.NotEmpty(ctx, descriptor.APIVersion, "api_version must be set")
	assert.NotEmpty(ctx, string(descriptor.Kind), "kind must be set")
	assert.NotEmpty(ctx, descriptor.Metadata.Name, "metadata.name must be set")
	if descriptor.Kind != types.DescriptorKindLibrary {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("descriptor kind must be library")
	}
	if !core.ValidVersionTag(descriptor.Metadata.VersionTag) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("metadata.version_tag must start with a digit")
	}
	if len(descriptor.Build.Architectures) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("build.architectures must not be empty")
	}
	seen := map[types.Architecture]struct{}{}
	for _, arch := range descriptor.Build.Architectures {
		if _, dup := seen[arch]; dup {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("build.architectures contains duplicates")
		}
		seen[arch] = struct{}{}
	}
	switch descriptor.Policies.ResourceNaming {
	case "", types.NamingPolicyWarn, types.NamingPolicyReject:
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("policies.resource_naming must be warn or reject")
	}
	return nil
}

var _ ports.DescriptorPort = DescriptorFileAdapter{}
