package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/campaign-clock/internal/logger"
)

// Config holds the campaign settings shared by every subcommand.
type Config struct {
	// CalendarFile is the path to the YAML calendar definition.
	CalendarFile string `yaml:"calendar_file"`
	// JournalFile is the path to the flat text journal storing time state.
	JournalFile string `yaml:"journal_file"`
	// MorningHour is the hour the clock snaps to after a whole-day advance.
	MorningHour int `yaml:"morning_hour"`
	// LogLevel is the minimum level for console logging.
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultConfigFilename is the default filename for campaign settings.
	DefaultConfigFilename = "campaign-clock-settings.yaml"

	// DefaultCalendarFilename is the default filename for the calendar definition.
	DefaultCalendarFilename = "campaign-calendar.yaml"

	// DefaultJournalFilename is the default filename for the time journal.
	DefaultJournalFilename = "campaign-clock-journal.txt"

	// DefaultMorningHour is the hour a day advance wakes the party at.
	DefaultMorningHour = 6

	// DefaultFilePermissions is the default file permission for written files.
	DefaultFilePermissions = 0o600
)

// errConfigIsNotSet is returned when a nil configuration is provided.
var errConfigIsNotSet = errors.New("configuration is not set")

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills in defaults for
// unspecified fields.
func Validate(cfg *Config) error {
	if cfg.CalendarFile == "" {
		cfg.CalendarFile = DefaultCalendarFilename
	}

	if cfg.JournalFile == "" {
		cfg.JournalFile = DefaultJournalFilename
	}

	// Zero means unspecified; nobody wakes the party at midnight.
	if cfg.MorningHour == 0 {
		cfg.MorningHour = DefaultMorningHour
	}

	if cfg.MorningHour < 0 || cfg.MorningHour > 23 {
		return fmt.Errorf("morning hour %d outside [0, 24)", cfg.MorningHour)
	}

	if cfg.LogLevel != "" {
		if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
			return fmt.Errorf("unknown log level %q", cfg.LogLevel)
		}
	}

	return nil
}
