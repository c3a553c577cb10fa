package adapters

import (
	"context"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"fatpack/internal/ports"
	"fatpack/internal/shared"
	"fatpack/internal/types"
)

// DefaultBuildCommand is the conventional per-architecture build
// invocation.  Placeholders are substituted before execution.
const DefaultBuildCommand = "xcodebuild build -configuration {config} -arch {arch}"

// BuildRunnerAdapter shells out to the configured build command once
// per architecture.  The command is a whitespace-split template with
// {config}, {arch}, and {min_platform} placeholders; quoting is not
// supported, matching the simple invocations this covers.
type BuildRunnerAdapter struct {
	Command string
}

func NewBuildRunnerAdapter(command string) BuildRunnerAdapter {
	if strings.TrimSpace(command) == "" {
		command = DefaultBuildCommand
	}
	return BuildRunnerAdapter{Command: command}
}

func (a BuildRunnerAdapter) RunBuild(ctx context.Context, projectRoot string, configuration string, arch types.Architecture, minPlatform string) error {
	replacer := strings.NewReplacer(
		"{config}", configuration,
		"{arch}", string(arch),
		"{min_platform}", minPlatform,
	)
	rendered := replacer.Replace(a.Command)
	fields := strings.Fields(rendered)
	if len(fields) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("build command is empty")
	}
	log.Ctx(ctx).Debug().
		Str("arch", string(arch)).
		Str("command", rendered).
		Msg("invoking external build")
	cmd := exec.CommandContext(ctx, fields[0], fields[1:]...)
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("external build failed for architecture "+string(arch)).
			WithCause(shared.CommandError(output, err))
	}
	return nil
}

var _ ports.BuildRunnerPort = BuildRunnerAdapter{}
