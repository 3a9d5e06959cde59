package calendar

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfig is returned when a calendar or cycle is constructed from an
// inconsistent specification. Constructors validate eagerly so that no
// undefined year table can ever be materialized.
var ErrConfig = errors.New("inconsistent calendar specification")

// DefaultFormat is the date format used when a definition names none.
const DefaultFormat = "{month-name} {day-of-month}"

// Calendar is the contract shared by all calendar realizations.
type Calendar interface {
	// YearLength returns the realized number of days in the given year.
	YearLength(year int) int
	// DaysToYear returns the total days in all years strictly before the
	// given year, measured from the epoch (day 1 of year 1).
	DaysToYear(year int) int
	// Materialize lays out the year table for the given year, including
	// the stamps of every attached cycle.
	Materialize(year int) *YearTable
	// Cycles returns the attached cycles.
	Cycles() []Cycle
	// Format returns the named date format, falling back to the default.
	Format(name string) string
}

// DeviationCalendar is an integer calendar: months have fixed base lengths
// and deviations override single months for matching years.
type DeviationCalendar struct {
	months     []Period
	deviations []Deviation
	cycles     []Cycle
	formats    map[string]string

	// lengths memoizes realized year lengths; lengths[i] is year i+1.
	// Deviations are opaque per-year predicates, so cumulative day counts
	// are only ever extended monotonically from the years already computed.
	lengths []int
}

// NewDeviationCalendar validates the specification and builds the calendar.
func NewDeviationCalendar(
	months []Period,
	deviations []Deviation,
	cycles []Cycle,
	formats map[string]string,
) (*DeviationCalendar, error) {
	if err := validatePeriods("month", months); err != nil {
		return nil, err
	}

	for _, dev := range deviations {
		if err := dev.validate(periodNames(months)); err != nil {
			return nil, err
		}
	}

	if err := validateCycles(cycles); err != nil {
		return nil, err
	}

	return &DeviationCalendar{
		months:     months,
		deviations: deviations,
		cycles:     cycles,
		formats:    withDefaultFormat(formats),
	}, nil
}

// monthsFor returns the effective month table for a year with every
// matching deviation applied.
func (c *DeviationCalendar) monthsFor(year int) []Period {
	return applyDeviations(c.months, c.deviations, RuleContext{Year: year})
}

// YearLength returns the realized number of days in the given year.
func (c *DeviationCalendar) YearLength(year int) int {
	requireYear(year)

	return periodSum(c.monthsFor(year))
}

// DaysToYear returns the cumulative days strictly before the given year,
// extending the per-year cache through every intervening year.
func (c *DeviationCalendar) DaysToYear(year int) int {
	requireYear(year)

	for len(c.lengths) < year-1 {
		c.lengths = append(c.lengths, c.YearLength(len(c.lengths)+1))
	}

	total := 0
	for _, days := range c.lengths[:year-1] {
		total += days
	}

	return total
}

// Materialize lays out the year table and annotates it with every cycle.
func (c *DeviationCalendar) Materialize(year int) *YearTable {
	requireYear(year)

	months := c.monthsFor(year)
	table := layoutYear(year, months, periodSum(months))

	for _, cycle := range c.cycles {
		cycle.Annotate(table, c)
	}

	return table
}

// Cycles returns the attached cycles.
func (c *DeviationCalendar) Cycles() []Cycle {
	return c.cycles
}

// Format returns the named date format, falling back to the default.
func (c *DeviationCalendar) Format(name string) string {
	return lookupFormat(c.formats, name)
}

// requireYear rejects years before the epoch; asking for year 0 is a
// programmer error, not an input error.
func requireYear(year int) {
	if year < 1 {
		panic(fmt.Sprintf("calendar: year %d before the epoch", year))
	}
}

// periodSum totals the lengths of a period table.
func periodSum(periods []Period) int {
	total := 0
	for _, p := range periods {
		total += p.Days
	}

	return total
}

// periodNames lists the names of a period table.
func periodNames(periods []Period) []string {
	names := make([]string, 0, len(periods))
	for _, p := range periods {
		names = append(names, p.Name)
	}

	return names
}

// validatePeriods rejects empty tables, unnamed or duplicated periods,
// and non-positive lengths. kind is used for error wording only.
func validatePeriods(kind string, periods []Period) error {
	if len(periods) == 0 {
		return fmt.Errorf("%w: no %ss defined", ErrConfig, kind)
	}

	seen := make(map[string]struct{}, len(periods))

	for _, p := range periods {
		if p.Name == "" {
			return fmt.Errorf("%w: unnamed %s", ErrConfig, kind)
		}

		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("%w: duplicate %s %q", ErrConfig, kind, p.Name)
		}

		seen[p.Name] = struct{}{}

		if p.Days < 1 {
			return fmt.Errorf("%w: %s %q has non-positive length %d", ErrConfig, kind, p.Name, p.Days)
		}
	}

	return nil
}

// validateCycles rejects duplicate cycle names, since stamps are keyed by name.
func validateCycles(cycles []Cycle) error {
	seen := make(map[string]struct{}, len(cycles))

	for _, cycle := range cycles {
		key := strings.ToLower(cycle.Name())
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: duplicate cycle %q", ErrConfig, cycle.Name())
		}

		seen[key] = struct{}{}
	}

	return nil
}

// withDefaultFormat copies the format map and guarantees a default entry.
func withDefaultFormat(formats map[string]string) map[string]string {
	merged := make(map[string]string, len(formats)+1)
	for name, format := range formats {
		merged[name] = format
	}

	if _, ok := merged["default"]; !ok {
		merged["default"] = DefaultFormat
	}

	return merged
}

// lookupFormat resolves a format name, falling back to the default format.
func lookupFormat(formats map[string]string, name string) string {
	if format, ok := formats[name]; ok {
		return format
	}

	return formats["default"]
}
