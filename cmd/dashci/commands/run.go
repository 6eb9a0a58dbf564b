package commands

import (
	"github.com/morsellabs/dashci/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Provision the environment, install dependencies, and run the test suite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Run(cmd.Context(), runOptions(cmd))
		},
	}
	addRunFlags(cmd)
	return cmd
}

func (c *CLI) newSetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Provision the environment and install dependencies without running tests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Setup(cmd.Context(), runOptions(cmd))
		},
	}
	addRunFlags(cmd)
	return cmd
}

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the suite, then re-run it whenever workspace files change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Watch(cmd.Context(), runOptions(cmd))
		},
	}
	addRunFlags(cmd)
	return cmd
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the environment stamp and force dependency installation")
	cmd.Flags().StringP("output-mode", "o", "auto", "Output mode: auto, pretty, or plain")
	cmd.Flags().Bool("ci", false, "Use plain output mode (shorthand for --output-mode=plain)")
}

func runOptions(cmd *cobra.Command) app.RunOptions {
	noCache, _ := cmd.Flags().GetBool("no-cache")
	outputMode, _ := cmd.Flags().GetString("output-mode")
	ci, _ := cmd.Flags().GetBool("ci")

	// If --ci is set, override output-mode to "plain"
	if ci {
		outputMode = "plain"
	}

	return app.RunOptions{
		NoCache:    noCache,
		OutputMode: outputMode,
	}
}
