package calendar

import (
	"fmt"
	"math"
	"slices"
)

// FractionalCalendar distributes a real-valued year length by rounding
// cumulative days: the realized length of year y is
// round(y*L) - round((y-1)*L), so the running total never drifts more than
// half a day from y*L. Years that come out one day long credit the extra
// day to a designated overage month.
type FractionalCalendar struct {
	ideal   float64
	months  []Period
	overage string
	cycles  []Cycle
	formats map[string]string
}

// NewFractionalCalendar validates the specification and builds the calendar.
// The base month lengths must sum to the whole part of the ideal year length.
func NewFractionalCalendar(
	ideal float64,
	months []Period,
	overageMonth string,
	cycles []Cycle,
	formats map[string]string,
) (*FractionalCalendar, error) {
	if err := validatePeriods("month", months); err != nil {
		return nil, err
	}

	if ideal < 1 {
		return nil, fmt.Errorf("%w: fractional year length %v below one day", ErrConfig, ideal)
	}

	if base := periodSum(months); base != int(ideal) {
		return nil, fmt.Errorf(
			"%w: months sum to %d days, want %d (whole part of year length %v)",
			ErrConfig, base, int(ideal), ideal,
		)
	}

	if !slices.Contains(periodNames(months), overageMonth) {
		return nil, fmt.Errorf("%w: overage month %q is not a month", ErrConfig, overageMonth)
	}

	if err := validateCycles(cycles); err != nil {
		return nil, err
	}

	return &FractionalCalendar{
		ideal:   ideal,
		months:  months,
		overage: overageMonth,
		cycles:  cycles,
		formats: withDefaultFormat(formats),
	}, nil
}

// boundary returns the rounded cumulative day count after the given number
// of years. Rounding is half to even, matching the deviation-free drift
// bound of at most half a day.
func (c *FractionalCalendar) boundary(years int) int {
	return int(math.RoundToEven(float64(years) * c.ideal))
}

// YearLength returns the realized number of days in the given year.
func (c *FractionalCalendar) YearLength(year int) int {
	requireYear(year)

	return c.boundary(year) - c.boundary(year-1)
}

// DaysToYear returns the cumulative days strictly before the given year.
// Unlike the deviation calendar this has a closed form.
func (c *FractionalCalendar) DaysToYear(year int) int {
	requireYear(year)

	return c.boundary(year - 1)
}

// monthsFor returns the month table for a year, crediting the overage
// month with one extra day in long years.
func (c *FractionalCalendar) monthsFor(year int) []Period {
	months := slices.Clone(c.months)

	if c.YearLength(year) > periodSum(c.months) {
		for i := range months {
			if months[i].Name == c.overage {
				months[i].Days++
			}
		}
	}

	return months
}

// Materialize lays out the year table and annotates it with every cycle.
func (c *FractionalCalendar) Materialize(year int) *YearTable {
	requireYear(year)

	months := c.monthsFor(year)
	table := layoutYear(year, months, periodSum(months))

	for _, cycle := range c.cycles {
		cycle.Annotate(table, c)
	}

	return table
}

// Cycles returns the attached cycles.
func (c *FractionalCalendar) Cycles() []Cycle {
	return c.cycles
}

// Format returns the named date format, falling back to the default.
func (c *FractionalCalendar) Format(name string) string {
	return lookupFormat(c.formats, name)
}
