package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fatpack/internal/app"
)

type restoreOptions struct {
	Project string
}

func newRestoreCommand() *cobra.Command {
	opts := restoreOptions{}
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore source units left mutated by an interrupted run",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRestore(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Project, "project", ".", "Project root directory")
	_ = viper.BindPFlag("project", cmd.Flags().Lookup("project"))
	return cmd
}

func runRestore(ctx context.Context, cmd *cobra.Command, opts restoreOptions) error {
	service := newAppService()
	result, err := service.Restore(ctx, app.RestoreRequest{
		ProjectRoot: resolveString(cmd, opts.Project, "project", "project"),
	})
	if err != nil {
		return err
	}
	if result.Recovered {
		fmt.Println("restored mutated source units")
	} else {
		fmt.Println("nothing to restore")
	}
	return nil
}
