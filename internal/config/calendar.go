package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/campaign-clock/internal/domain/calendar"
)

// CalendarDefinition is the declarative YAML form of a campaign calendar.
// The realization is tagged by the shape of the definition: a fractional
// days_in_year (or an overage month) selects the fractional calendar,
// anything else the deviation calendar.
type CalendarDefinition struct {
	// Name labels the calendar in logs and CLI output.
	Name string `yaml:"name"`
	// DaysInYear is the ideal year length. Optional for deviation
	// calendars, where it must match the month sum when present.
	DaysInYear float64 `yaml:"days_in_year"`
	// Months are the base month lengths in order.
	Months []calendar.Period `yaml:"months"`
	// OverageMonth receives the extra day in long fractional years.
	OverageMonth string `yaml:"overage_month"`
	// Deviations override month lengths for matching years.
	Deviations []calendar.Deviation `yaml:"deviations"`
	// Cycles are the secondary day-cycles laid over the calendar.
	Cycles []CycleDefinition `yaml:"cycles"`
	// Formats are named date format strings.
	Formats map[string]string `yaml:"formats"`
	// Events are the named recurring events alarms may anchor to,
	// mapped to the time offset they stand for.
	Events map[string]string `yaml:"events"`
}

// CycleDefinition is the declarative form of one cycle. A non-zero
// period_length selects the fractional cycle (period entries carry names
// only); otherwise periods carry integer lengths and the cycle is static.
type CycleDefinition struct {
	// Name identifies the cycle; year-table stamps are keyed by it.
	Name string `yaml:"name"`
	// PeriodLength is the shared fractional period length, when fractional.
	PeriodLength float64 `yaml:"period_length"`
	// Periods are the named periods, with lengths for static cycles.
	Periods []calendar.Period `yaml:"periods"`
	// Deviations override period lengths for matching cycle numbers.
	Deviations []calendar.Deviation `yaml:"deviations"`
}

// LoadCalendar reads a calendar definition from the provided path.
func LoadCalendar(path string) (*CalendarDefinition, error) {
	if path == "" {
		path = DefaultCalendarFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read calendar definition: %w", err)
	}

	var def CalendarDefinition
	if err := yaml.Unmarshal(contents, &def); err != nil {
		return nil, fmt.Errorf("unmarshal calendar definition: %w", err)
	}

	return &def, nil
}

// fractional reports whether the definition selects the fractional calendar.
func (d *CalendarDefinition) fractional() bool {
	return d.OverageMonth != "" || d.DaysInYear != math.Trunc(d.DaysInYear)
}

// Build validates the definition and constructs the calendar it describes.
// All configuration errors surface here, before any year table exists.
func (d *CalendarDefinition) Build() (calendar.Calendar, error) {
	cycles := make([]calendar.Cycle, 0, len(d.Cycles))

	for _, cycleDef := range d.Cycles {
		cycle, err := cycleDef.build()
		if err != nil {
			return nil, err
		}

		cycles = append(cycles, cycle)
	}

	if d.fractional() {
		return calendar.NewFractionalCalendar(d.DaysInYear, d.Months, d.OverageMonth, cycles, d.Formats)
	}

	if d.DaysInYear != 0 {
		declared := int(d.DaysInYear)

		total := 0
		for _, month := range d.Months {
			total += month.Days
		}

		if declared != total {
			return nil, fmt.Errorf(
				"%w: days_in_year %d does not match month sum %d",
				calendar.ErrConfig, declared, total,
			)
		}
	}

	return calendar.NewDeviationCalendar(d.Months, d.Deviations, cycles, d.Formats)
}

// build constructs one cycle from its definition.
func (d *CycleDefinition) build() (calendar.Cycle, error) {
	if d.PeriodLength == 0 {
		return calendar.NewStaticCycle(d.Name, d.Periods, d.Deviations)
	}

	if len(d.Deviations) > 0 {
		return nil, fmt.Errorf("%w: cycle %q: fractional cycles cannot carry deviations", calendar.ErrConfig, d.Name)
	}

	names := make([]string, 0, len(d.Periods))

	for _, period := range d.Periods {
		if period.Days != 0 {
			return nil, fmt.Errorf(
				"%w: cycle %q: period %q has a length but the cycle is fractional",
				calendar.ErrConfig, d.Name, period.Name,
			)
		}

		names = append(names, period.Name)
	}

	return calendar.NewFractionalCycle(d.Name, names, d.PeriodLength)
}
