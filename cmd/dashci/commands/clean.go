package commands

import (
	"github.com/morsellabs/dashci/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the isolated environment and cached metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cache, _ := cmd.Flags().GetBool("cache")
			all, _ := cmd.Flags().GetBool("all")

			opts := app.CleanOptions{
				Env:   false,
				Cache: false,
			}

			switch {
			case all:
				opts.Env = true
				opts.Cache = true
			case cache:
				opts.Cache = true
			default:
				// Default behavior: remove the environment directory
				opts.Env = true
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolP("cache", "c", false, "Remove recorded environment stamps")
	cmd.Flags().BoolP("all", "a", false, "Remove the environment and all cached metadata")

	return cmd
}
