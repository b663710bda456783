package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <fingerprint>",
		Short: "Print the cached value stored under a fingerprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := c.app.Show(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(value, "", "  ")
			if err != nil {
				return zerr.Wrap(err, "failed to render cached value")
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(out))

			return nil
		},
	}
}
