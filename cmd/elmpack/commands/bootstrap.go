package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newBootstrapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Print the script that mounts the Elm application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			script, err := c.app.Bootstrap(options(cmd))
			if err != nil {
				return err
			}

			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), script)
				return err
			}

			//nolint:gosec // The bootstrap script is meant to be world-readable
			if err := os.WriteFile(out, []byte(script), 0o644); err != nil {
				return zerr.With(zerr.Wrap(err, "failed to write bootstrap script"), "path", out)
			}
			return nil
		},
	}
	cmd.Flags().StringP("out", "o", "", "Write the script to this file instead of stdout")
	return cmd
}
