package main

import (
	"fmt"
	"os"

	"github.com/aretw0/carrier/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "carrier",
	Short: "Carrier runs work on a worker pool under named sessions",
	Long: `Carrier keeps an execution-scoped session per thread of work and carries it
from the submitting goroutine to the pool worker that runs the work.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Int("workers", 0, "Worker pool size (overrides config)")
}

// bootstrap builds the application from the persistent flags.
func bootstrap(cmd *cobra.Command) (*cli.App, error) {
	path, _ := cmd.Flags().GetString("config")
	overrides := map[string]any{}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		overrides["log_level"] = lvl
	}
	if n, _ := cmd.Flags().GetInt("workers"); n > 0 {
		overrides["workers"] = n
	}
	return cli.Bootstrap(path, overrides)
}
