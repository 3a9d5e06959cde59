package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statusCmd prints the current time, the rendered date, and the live alarms.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current time, date, and alarms.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		t, err := openTracker(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		fmt.Fprintln(out, t.Now())
		fmt.Fprintln(out, t.Date("default"))

		alarms := t.Alarms()
		if len(alarms) == 0 {
			fmt.Fprintln(out, "No alarms set.")

			return nil
		}

		for i, a := range alarms {
			fmt.Fprintf(out, "%d. %s\n", i+1, a)
		}

		return nil
	},
}
