package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/campaign-clock/internal/domain/clock"
)

// advanceDays holds the --days flag for whole-day advances.
var advanceDays int

// advanceCmd moves the campaign clock forward.
var advanceCmd = &cobra.Command{
	Use:   "advance [offset]",
	Short: "Move the clock forward and fire due alarms.",
	Long: `Moves the campaign clock forward.

An offset is a bare number of minutes ("45"), an hour-and-minute span
("2:30"), or a full time component ("0/1 2:30"). Alternatively --days
advances whole days: each day lands on the campaign's morning hour and
fires the 'day' event. Alarms passed on the way fire once per missed
interval and their notes are printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		t, err := openTracker(ctx)
		if err != nil {
			return err
		}

		var fired []string

		switch {
		case advanceDays > 0:
			fired = t.AdvanceDays(ctx, advanceDays)
		case len(args) == 1:
			offset, err := clock.Parse(args[0])
			if err != nil {
				return err
			}

			fired = t.Advance(ctx, offset)
		default:
			return errors.New("nothing to advance: give an offset or --days")
		}

		out := cmd.OutOrStdout()

		for _, note := range fired {
			fmt.Fprintf(out, "ALARM: %s\n", note)
		}

		fmt.Fprintln(out, t.Now())

		return t.Save(ctx)
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	advanceCmd.Flags().IntVarP(&advanceDays, "days", "d", 0, "advance whole days to the morning hour")
}
