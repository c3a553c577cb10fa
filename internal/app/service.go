package app

import (
	"os"
	"path/filepath"

	"fatpack/internal/adapters"
	"fatpack/internal/ports"
)

type Service struct {
	Descriptor ports.DescriptorPort
	Lists      ports.ListFilePort
	Mutator    ports.MutatorPort
	Emitter    ports.BootstrapEmitterPort
	Combiner   ports.CombinerPort
	Assembler  ports.AssemblerPort
	Repo       ports.RepoPort
	References ports.ReferencePort

	// NewBuildRunner builds a runner for the resolved build command;
	// tests substitute a fake here.
	NewBuildRunner func(command string) ports.BuildRunnerPort
}

func NewService() Service {
	return Service{
		Descriptor: adapters.NewDescriptorFileAdapter(),
		Lists:      adapters.NewListFileAdapter(),
		Mutator:    adapters.NewSourceMutatorAdapter(),
		Emitter:    adapters.NewBootstrapEmitterAdapter(),
		Combiner:   adapters.NewLipoCombinerAdapter(),
		Assembler:  adapters.NewPackageWriterAdapter(),
		Repo:       adapters.NewRepoDirAdapter(),
		References: adapters.NewReferenceLinksAdapter(),
		NewBuildRunner: func(command string) ports.BuildRunnerPort {
			return adapters.NewBuildRunnerAdapter(command)
		},
	}
}

// DefaultRepoRoot is the conventional repository location under the
// user's home area, used when neither flag, environment, nor
// descriptor overrides it.
func DefaultRepoRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".fatpack", "repo")
	}
	return filepath.Join(home, ".fatpack", "repo")
}
