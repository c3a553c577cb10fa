package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fatpack/internal/app"
)

type inspectOptions struct {
	Repo    string
	Package string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List packages in the repository",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Repo, "repo", "", "Repository root override")
	cmd.Flags().StringVar(&opts.Package, "package", "", "Only show one package")
	_ = viper.BindPFlag("repo_root", cmd.Flags().Lookup("repo"))
	_ = viper.BindPFlag("package", cmd.Flags().Lookup("package"))
	return cmd
}

func runInspect(ctx context.Context, cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(ctx, app.InspectRequest{
		RepoRoot:    resolveString(cmd, opts.Repo, "repo_root", "repo"),
		PackageName: resolveString(cmd, opts.Package, "package", "package"),
	})
	if err != nil {
		return err
	}
	for _, group := range result.Groups {
		versions := "untagged"
		if len(group.Versions) > 0 {
			versions = strings.Join(group.Versions, ", ")
		}
		fmt.Printf("%s (%s)\n", group.Name, versions)
		for _, dirName := range group.DirNames {
			fmt.Printf("  %s\n", dirName)
		}
	}
	return nil
}
