package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// eventCmd fires a named event by hand.
var eventCmd = &cobra.Command{
	Use:   "event [name]",
	Short: "Fire a named event, or list the known ones.",
	Long: `Fires a named recurring event (a full moon, a festival) so the alarms
anchored to it go off. Without a name, lists the events the calendar and
the journal define.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		t, err := openTracker(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		if len(args) == 0 {
			events := t.Events()

			names := make([]string, 0, len(events))
			for name := range events {
				names = append(names, name)
			}

			sort.Strings(names)

			for _, name := range names {
				fmt.Fprintf(out, "%s: %s\n", name, events[name])
			}

			return nil
		}

		fired, err := t.Trigger(ctx, args[0])
		if err != nil {
			return err
		}

		for _, note := range fired {
			fmt.Fprintf(out, "ALARM: %s\n", note)
		}

		return t.Save(ctx)
	},
}
