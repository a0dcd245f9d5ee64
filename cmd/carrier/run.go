package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/carrier/pkg/runner"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [work...]",
	Short: "Run catalog work as one batch under a session",
	Long: `Submits each named work to the pool under a single session and prints a JSON
report. Without --session a fresh "batch-<uuid>" session is created.`,
	Example: "  carrier run echo count fail --session nightly",
	Args:    cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		if list, _ := cmd.Flags().GetBool("list"); list {
			for _, name := range app.Catalog.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		}
		if len(args) == 0 {
			return fmt.Errorf("no work named; available: %v", app.Catalog.Names())
		}

		sessionID, _ := cmd.Flags().GetString("session")
		if sessionID == "" {
			sessionID = "batch-" + uuid.NewString()
		}
		app.Runtime.Registry().Create(sessionID, nil)

		r := runner.NewRunner(app.Runtime.Registry(), app.Runtime.Pool(),
			runner.WithSessionID(sessionID),
			runner.WithCatalog(app.Catalog),
			runner.WithLogger(app.Logger),
		)
		report, err := r.RunNamed(cmd.Context(), args...)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
		if report.Failed() {
			return fmt.Errorf("%d of %d tasks failed", report.Status.Failed, len(report.Outcomes))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("session", "s", "", "Session to run under")
	runCmd.Flags().Bool("list", false, "List the available work and exit")
}
