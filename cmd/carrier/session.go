package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:     "session",
	Aliases: []string{"sessions"},
	Short:   "Inspect configured sessions",
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the sessions declared in the configuration",
	Long:  `Lists configured sessions and marks the configured current session with "*".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		// Current() would materialise the default session; read the configured one instead.
		reg := app.Runtime.Registry()
		current := app.Config.CurrentSession
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCURRENT\tCREATED")
		for _, id := range reg.List() {
			s, err := reg.Get(id)
			if err != nil {
				return err
			}
			mark := ""
			if id == current {
				mark = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, mark, s.CreatedAt.Format("15:04:05"))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
}
