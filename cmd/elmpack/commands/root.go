// Package commands implements the CLI commands for elmpack.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/elmpack/internal/adapters/config"
	"go.trai.ch/elmpack/internal/app"
	"go.trai.ch/elmpack/internal/build"
)

// CLI represents the command line interface for elmpack.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "elmpack",
		Short:         "Bundle Elm applications with esbuild",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultFilename, "Path to configuration file")
	rootCmd.PersistentFlags().BoolP("optimize", "O", false, "Compile with --optimize and minify the output")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newBootstrapCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

func options(cmd *cobra.Command) app.Options {
	configPath, _ := cmd.Flags().GetString("config")
	optimize, _ := cmd.Flags().GetBool("optimize")
	return app.Options{
		ConfigPath: configPath,
		Optimize:   optimize,
	}
}

// SetOutput redirects command output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
}
