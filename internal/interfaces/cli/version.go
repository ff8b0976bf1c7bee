package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newVersionCmd builds the `version` subcommand, printing the ldflags-
// injected build identifiers.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "gemfluxmcp %s (commit: %s, built: %s)\n", Version, GitCommit, BuildDate)
			return nil
		},
	}
}
