package calendar

import (
	"fmt"
	"strings"
)

// Cycle is a secondary repeating sequence of days (a week, a moon, a
// festival rotation) laid over a calendar's year tables.
type Cycle interface {
	// Name identifies the cycle; stamps are keyed by its lowercase form.
	Name() string
	// Annotate stamps every day of the year table with this cycle's
	// position, reconstructing the starting state in closed form from the
	// owning calendar's cumulative day count.
	Annotate(table *YearTable, cal Calendar)
	// Advance returns the state for the next day. It is pure: annotation
	// and the continuity property tests both step through it.
	Advance(s State) State
	// StateAt reconstructs the state for an absolute day counted from the
	// epoch, without replaying history.
	StateAt(absDay int) State
}

// State is a cycle's full position on one day. The Stamp fields are what
// year tables carry; the remaining fields are the bookkeeping Advance needs.
type State struct {
	// Cycle is the cycle number, counted from 1 at the epoch.
	Cycle int
	// Day is the day within the cycle, counted from 1.
	Day int
	// Period is the name of the current period.
	Period string
	// PeriodDay is the day within the period, counted from 1.
	PeriodDay int

	// PeriodIndex is the zero-based index of the current period within the
	// cycle. Maintained by static cycles.
	PeriodIndex int
	// AbsDay is the day number from the epoch. Maintained by fractional cycles.
	AbsDay int
	// AbsPeriod is the period number from the epoch. Maintained by
	// fractional cycles.
	AbsPeriod int
	// Fraction is the running fractional-days accumulator that keeps
	// realized period lengths consistent with the ideal fractional length.
	Fraction float64
}

// Stamp reduces the state to the fields year tables carry.
func (s State) Stamp() Stamp {
	return Stamp{
		Cycle:     s.Cycle,
		Day:       s.Day,
		Period:    s.Period,
		PeriodDay: s.PeriodDay,
	}
}

// StaticCycle has periods of fixed integer length, optionally overridden by
// deviations keyed on the cycle number.
type StaticCycle struct {
	name       string
	periods    []Period
	deviations []Deviation

	// cumulative memoizes total days through cycle i+1, needed only when
	// deviations make cycle lengths vary; extended monotonically.
	cumulative []int
}

// NewStaticCycle validates the specification and builds the cycle.
func NewStaticCycle(name string, periods []Period, deviations []Deviation) (*StaticCycle, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: unnamed cycle", ErrConfig)
	}

	if err := validatePeriods("period", periods); err != nil {
		return nil, fmt.Errorf("cycle %q: %w", name, err)
	}

	for _, dev := range deviations {
		if err := dev.validate(periodNames(periods)); err != nil {
			return nil, fmt.Errorf("cycle %q: %w", name, err)
		}
	}

	return &StaticCycle{name: name, periods: periods, deviations: deviations}, nil
}

// Name identifies the cycle.
func (c *StaticCycle) Name() string {
	return c.name
}

// periodsFor returns the effective period table for a cycle number.
func (c *StaticCycle) periodsFor(cycle int) []Period {
	return applyDeviations(c.periods, c.deviations, RuleContext{Cycle: cycle})
}

// lengthOf returns the realized length of one cycle.
func (c *StaticCycle) lengthOf(cycle int) int {
	return periodSum(c.periodsFor(cycle))
}

// locate finds the cycle containing the day after elapsed whole days and
// the zero-based offset into that cycle.
func (c *StaticCycle) locate(elapsed int) (int, int) {
	if len(c.deviations) == 0 {
		length := periodSum(c.periods)

		return elapsed/length + 1, elapsed % length
	}

	// Deviations are opaque per-cycle predicates, so cumulative lengths
	// are extended monotonically, like calendar year caches.
	for len(c.cumulative) == 0 || c.cumulative[len(c.cumulative)-1] <= elapsed {
		previous := 0
		if len(c.cumulative) > 0 {
			previous = c.cumulative[len(c.cumulative)-1]
		}

		c.cumulative = append(c.cumulative, previous+c.lengthOf(len(c.cumulative)+1))
	}

	for i, through := range c.cumulative {
		if elapsed < through {
			start := 0
			if i > 0 {
				start = c.cumulative[i-1]
			}

			return i + 1, elapsed - start
		}
	}

	panic("calendar: unreachable cycle location")
}

// StateAt reconstructs the state for an absolute day from the epoch.
func (c *StaticCycle) StateAt(absDay int) State {
	if absDay < 1 {
		panic(fmt.Sprintf("calendar: absolute day %d before the epoch", absDay))
	}

	cycle, offset := c.locate(absDay - 1)
	periods := c.periodsFor(cycle)

	remaining := offset
	index := 0

	for remaining >= periods[index].Days {
		remaining -= periods[index].Days
		index++
	}

	return State{
		Cycle:       cycle,
		Day:         offset + 1,
		Period:      periods[index].Name,
		PeriodDay:   remaining + 1,
		PeriodIndex: index,
	}
}

// Advance returns the state for the next day, wrapping period and cycle
// boundaries.
func (c *StaticCycle) Advance(s State) State {
	periods := c.periodsFor(s.Cycle)

	if s.Day+1 > periodSum(periods) {
		next := c.periodsFor(s.Cycle + 1)

		return State{
			Cycle:     s.Cycle + 1,
			Day:       1,
			Period:    next[0].Name,
			PeriodDay: 1,
		}
	}

	if s.PeriodDay+1 > periods[s.PeriodIndex].Days {
		return State{
			Cycle:       s.Cycle,
			Day:         s.Day + 1,
			Period:      periods[s.PeriodIndex+1].Name,
			PeriodDay:   1,
			PeriodIndex: s.PeriodIndex + 1,
		}
	}

	s.Day++
	s.PeriodDay++

	return s
}

// Annotate stamps every day of the year table with this cycle's position.
func (c *StaticCycle) Annotate(table *YearTable, cal Calendar) {
	state := c.StateAt(cal.DaysToYear(table.Year) + 1)
	key := strings.ToLower(c.name)

	for i := range table.Days {
		table.Days[i].Cycles[key] = state.Stamp()
		state = c.Advance(state)
	}
}
