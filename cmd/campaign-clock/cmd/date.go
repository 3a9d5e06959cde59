package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// dateCmd renders the current date in a named calendar format.
var dateCmd = &cobra.Command{
	Use:   "date [format]",
	Short: "Render the current date in a named calendar format.",
	Long: `Renders today through the calendar's date formats.

Formats are named in the calendar definition; unnamed ones fall back to the
default format. Placeholders like {month-name}, {day-of-month}, {year} and
per-cycle fields like {moon-period} are substituted from the year table.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := openTracker(cmd.Context())
		if err != nil {
			return err
		}

		name := "default"
		if len(args) > 0 {
			name = args[0]
		}

		fmt.Fprintln(cmd.OutOrStdout(), t.Date(name))

		return nil
	},
}
