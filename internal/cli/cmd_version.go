package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func buildVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "glide %s (commit: %s, built: %s)\n", info.Version, info.Commit, info.Date)
		},
	}
}
