package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/elmpack/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the project whenever an Elm source changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			serve, _ := cmd.Flags().GetBool("serve")
			return c.app.Watch(cmd.Context(), app.WatchOptions{
				Options: options(cmd),
				Serve:   serve,
			})
		},
	}
	cmd.Flags().BoolP("serve", "s", false, "Serve the output directory while watching")
	return cmd
}
