package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newValidateConfigCmd builds the `validate-config` subcommand: it loads
// configuration through the same priority chain serve uses — which already
// runs Config.Validate as its final step — and reports success or failure
// without starting any server.
func newValidateConfigCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate-config",
		Short: "load and validate configuration without starting the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(opts); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK: configuration is valid")
			return nil
		},
	}
}
