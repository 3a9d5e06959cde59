package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// alarmCmd groups the alarm subcommands.
var alarmCmd = &cobra.Command{
	Use:   "alarm",
	Short: "Set, list, and kill alarms.",
}

// alarmSetCmd registers a new alarm from a specification.
var alarmSetCmd = &cobra.Command{
	Use:   "set <symbol> <time> <note>...",
	Short: "Set an alarm.",
	Long: `Sets an alarm from a symbol, a time, and a note.

"+" is a one-shot relative alarm ("+ 45 torch burns low"), "@" a repeating
one ("@ 7-0:00 pay the guards"), and "=" an absolute alarm whose year and
day default to today ("= 18:00 light the beacons"). A time naming a known
event anchors to that event instead ("@ fullmoon werewolves prowl").`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		t, err := openTracker(ctx)
		if err != nil {
			return err
		}

		a, err := t.SetAlarm(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), a)

		return t.Save(ctx)
	},
}

// alarmListCmd enumerates the live alarms.
var alarmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the live alarms.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		t, err := openTracker(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

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

// alarmKillCmd removes an alarm by its list index.
var alarmKillCmd = &cobra.Command{
	Use:   "kill <index>",
	Short: "Kill an alarm by its list index.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("alarm index must be a number: %w", err)
		}

		t, err := openTracker(ctx)
		if err != nil {
			return err
		}

		if err = t.KillAlarm(ctx, index); err != nil {
			return err
		}

		return t.Save(ctx)
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	alarmCmd.AddCommand(alarmSetCmd, alarmListCmd, alarmKillCmd)
}
