package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the cache directory and everything in it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Clear(cmd.Context())
		},
	}
}
