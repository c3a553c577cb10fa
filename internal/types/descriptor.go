package types

type Metadata struct {
	Name        string   `yaml:"name"`
	VersionTag  string   `yaml:"version_tag,omitempty"`
	Owners      []string `yaml:"owners,omitempty"`
	Description string   `yaml:"description,omitempty"`
}

// DescriptorDefaults provides project-level defaults that the CLI and
// application layer use when a value is not explicitly provided via
// flags or environment variables.  Embedding defaults in the package
// descriptor eliminates repetitive CLI flags across rebuilds.
type DescriptorDefaults struct {
	Configuration string `yaml:"configuration,omitempty"`
	RepoRoot      string `yaml:"repo_root,omitempty"`
	BuildCommand  string `yaml:"build_command,omitempty"`
}

type BuildSection struct {
	Architectures []Architecture `yaml:"architectures"`
	MinPlatform   string         `yaml:"min_platform,omitempty"`
	EmbedSource   bool           `yaml:"embed_source,omitempty"`
	OutputDir     string         `yaml:"output_dir,omitempty"`
}

// InputsSection names the plain-text list files that drive packaging.
// Paths are relative to the project root.  Both files keep their
// conventional default names when omitted.
type InputsSection struct {
	HeaderList        string `yaml:"header_list,omitempty"`
	ForcedLinkageList string `yaml:"forced_linkage_list,omitempty"`
	ResourceRoot      string `yaml:"resource_root,omitempty"`
	SourceRoot        string `yaml:"source_root,omitempty"`
}

type PoliciesSection struct {
	ResourceNaming NamingPolicyMode `yaml:"resource_naming,omitempty"`
}

type Descriptor struct {
	APIVersion string             `yaml:"api_version"`
	Kind       DescriptorKind     `yaml:"kind"`
	Metadata   Metadata           `yaml:"metadata"`
	Defaults   DescriptorDefaults `yaml:"defaults,omitempty"`
	Build      BuildSection       `yaml:"build"`
	Inputs     InputsSection      `yaml:"inputs,omitempty"`
	Policies   PoliciesSection    `yaml:"policies,omitempty"`
}

// Identity is the package identity: name with the version tag appended
// when one is present.  Directory names in the repository are derived
// from it plus the build configuration.
func (d Descriptor) Identity() string {
	if d.Metadata.VersionTag == "" {
		return d.Metadata.Name
	}
	return d.Metadata.Name + "-" + d.Metadata.VersionTag
}
