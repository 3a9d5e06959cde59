package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/campaign-clock/internal/config"
	"github.com/oshokin/campaign-clock/internal/logger"
	"github.com/oshokin/campaign-clock/internal/repository/journal"
	"github.com/oshokin/campaign-clock/internal/service/tracker"
	"github.com/oshokin/campaign-clock/internal/version"
)

var (
	// configPath stores the path to the settings YAML file.
	configPath string
	// logLevel overrides the log level from settings when set.
	logLevel string

	// rootCmd represents the base command for the campaign clock.
	rootCmd = &cobra.Command{
		Use:   "campaign-clock",
		Short: "Track time, dates, and alarms in a fictional calendar.",
		Long: `Campaign timekeeper for tabletop worlds with their own calendars.

The calendar definition (months, leap-year deviations, moons and other
day-cycles, date formats, named events) lives in a YAML file. The current
time, the live alarms, and campaign notes persist in a flat text journal,
so every invocation picks up where the last one left off.

Alarms anchor either to a time (one-shot or repeating) or to a named event
such as the morning 'day' event fired by whole-day advances.`,
	}
)

// Execute runs the campaign-clock CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to settings file")
	rootCmd.PersistentFlags().
		StringVarP(&logLevel, "log-level", "l", "", "minimum log level (overrides settings)")

	rootCmd.AddCommand(statusCmd, dateCmd, advanceCmd, alarmCmd, eventCmd)
}

// openTracker loads settings, realizes the calendar, and restores the
// journal. Missing settings fall back to defaults so a fresh campaign only
// needs a calendar file.
func openTracker(ctx context.Context) (*tracker.Tracker, error) {
	cfg, err := config.Load(configPath)

	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		cfg = new(config.Config)
		if err = config.Validate(cfg); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}

	if level != "" {
		parsed, ok := logger.ParseLogLevel(level)
		if !ok {
			return nil, fmt.Errorf("unknown log level %q", level)
		}

		logger.SetLevel(parsed)
	}

	def, err := config.LoadCalendar(cfg.CalendarFile)
	if err != nil {
		return nil, err
	}

	cal, err := def.Build()
	if err != nil {
		return nil, err
	}

	return tracker.New(ctx, cfg, cal, def.Events, journal.NewFileRepository(cfg.JournalFile))
}
