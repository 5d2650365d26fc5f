package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/goruler/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "goruler %s\n", version.GetFullVersion())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
