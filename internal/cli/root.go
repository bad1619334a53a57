package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "payoutctl",
		Short:        "Compute and export author payouts offline",
		SilenceUsage: true,
	}
	cmd.AddCommand(totalCmd())
	cmd.AddCommand(authorsCmd())
	return cmd
}
