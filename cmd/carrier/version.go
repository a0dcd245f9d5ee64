package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/carrier"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of carrier",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "carrier version %s\n", strings.TrimSpace(carrier.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
