package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fatpack/internal/app"
)

type syncOptions struct {
	Workspace     string
	Repo          string
	Configuration string
	Declarations  string
	Strict        bool
}

func newSyncCommand() *cobra.Command {
	opts := syncOptions{}
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize workspace references with declared dependencies",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Workspace, "workspace", ".", "Consumer workspace root")
	cmd.Flags().StringVar(&opts.Repo, "repo", "", "Repository root override")
	cmd.Flags().StringVar(&opts.Configuration, "configuration", "release", "Configuration to resolve against")
	cmd.Flags().StringVar(&opts.Declarations, "declarations", "", "Dependency list path override")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail when a declared dependency does not resolve")

	_ = viper.BindPFlag("workspace", cmd.Flags().Lookup("workspace"))
	_ = viper.BindPFlag("repo_root", cmd.Flags().Lookup("repo"))
	_ = viper.BindPFlag("sync_configuration", cmd.Flags().Lookup("configuration"))
	_ = viper.BindPFlag("declarations", cmd.Flags().Lookup("declarations"))
	_ = viper.BindPFlag("sync_strict", cmd.Flags().Lookup("strict"))

	return cmd
}

func runSync(ctx context.Context, cmd *cobra.Command, opts syncOptions) error {
	service := newAppService()
	result, err := service.Sync(ctx, app.SyncRequest{
		WorkspaceRoot: resolveString(cmd, opts.Workspace, "workspace", "workspace"),
		RepoRoot:      resolveString(cmd, opts.Repo, "repo_root", "repo"),
		Configuration: resolveString(cmd, opts.Configuration, "sync_configuration", "configuration"),
		Declarations:  resolveString(cmd, opts.Declarations, "declarations", "declarations"),
		Strict:        resolveBool(cmd, opts.Strict, "sync_strict", "strict"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("synced: %d created, %d kept, %d removed, %d unresolved\n",
		len(result.Created), len(result.Kept), len(result.Removed), len(result.Missed))
	return nil
}
