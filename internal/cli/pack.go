package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fatpack/internal/app"
)

type packOptions struct {
	Project         string
	Configuration   string
	VersionTag      string
	EmbedSource     bool
	MinPlatform     string
	Repo            string
	BuildCmd        string
	StrictResources bool
}

func newPackCommand() *cobra.Command {
	opts := packOptions{}
	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Build and publish a library package into the repository",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPack(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Project, "project", ".", "Project root directory")
	cmd.Flags().StringVar(&opts.Configuration, "configuration", "", "Build configuration name")
	cmd.Flags().StringVar(&opts.VersionTag, "version-tag", "", "Version tag override")
	cmd.Flags().BoolVar(&opts.EmbedSource, "embed-source", false, "Embed source units instead of relying on the binary alone")
	cmd.Flags().StringVar(&opts.MinPlatform, "min-platform", "", "Target platform version floor")
	cmd.Flags().StringVar(&opts.Repo, "repo", "", "Repository root override")
	cmd.Flags().StringVar(&opts.BuildCmd, "build-cmd", "", "External build command template")
	cmd.Flags().BoolVar(&opts.StrictResources, "strict-resources", false, "Reject resource naming violations instead of warning")

	_ = viper.BindPFlag("project", cmd.Flags().Lookup("project"))
	_ = viper.BindPFlag("configuration", cmd.Flags().Lookup("configuration"))
	_ = viper.BindPFlag("version_tag", cmd.Flags().Lookup("version-tag"))
	_ = viper.BindPFlag("embed_source", cmd.Flags().Lookup("embed-source"))
	_ = viper.BindPFlag("min_platform", cmd.Flags().Lookup("min-platform"))
	_ = viper.BindPFlag("repo_root", cmd.Flags().Lookup("repo"))
	_ = viper.BindPFlag("build_cmd", cmd.Flags().Lookup("build-cmd"))
	_ = viper.BindPFlag("strict_resources", cmd.Flags().Lookup("strict-resources"))

	return cmd
}

func runPack(ctx context.Context, cmd *cobra.Command, opts packOptions) error {
	service := newAppService()
	result, err := service.Pack(ctx, app.PackRequest{
		ProjectRoot:     resolveString(cmd, opts.Project, "project", "project"),
		Configuration:   resolveString(cmd, opts.Configuration, "configuration", "configuration"),
		VersionTag:      resolveString(cmd, opts.VersionTag, "version_tag", "version-tag"),
		EmbedSource:     resolveBool(cmd, opts.EmbedSource, "embed_source", "embed-source"),
		MinPlatform:     resolveString(cmd, opts.MinPlatform, "min_platform", "min-platform"),
		RepoRoot:        resolveString(cmd, opts.Repo, "repo_root", "repo"),
		BuildCommand:    resolveString(cmd, opts.BuildCmd, "build_cmd", "build-cmd"),
		StrictResources: resolveBool(cmd, opts.StrictResources, "strict_resources", "strict-resources"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("packed: %s (%d architectures, %d naming warnings)\n",
		result.PackageDir, result.Architectures, result.Violations)
	return nil
}
