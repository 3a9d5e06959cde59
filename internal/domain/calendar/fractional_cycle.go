package calendar

import (
	"fmt"
	"math"
	"strings"
)

// FractionalCycle has periods sharing one fractional length F (a moon of
// 25.31 days, say). The realized length of each occurrence is floor(F) or
// floor(F)+1, chosen so the running total tracks the ideal: the j-th period
// from the epoch ends on absolute day round(j*F), half rounded to even.
// Everything else derives from that boundary sequence, which is what makes
// reconstruction at an arbitrary year agree exactly with day-by-day
// simulation from the epoch.
type FractionalCycle struct {
	name         string
	periods      []string
	periodLength float64
}

// NewFractionalCycle validates the specification and builds the cycle.
func NewFractionalCycle(name string, periods []string, periodLength float64) (*FractionalCycle, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: unnamed cycle", ErrConfig)
	}

	if len(periods) == 0 {
		return nil, fmt.Errorf("%w: cycle %q has no periods", ErrConfig, name)
	}

	seen := make(map[string]struct{}, len(periods))

	for _, period := range periods {
		if period == "" {
			return nil, fmt.Errorf("%w: cycle %q has an unnamed period", ErrConfig, name)
		}

		if _, dup := seen[period]; dup {
			return nil, fmt.Errorf("%w: cycle %q has duplicate period %q", ErrConfig, name, period)
		}

		seen[period] = struct{}{}
	}

	if periodLength < 1 {
		return nil, fmt.Errorf("%w: cycle %q period length %v below one day", ErrConfig, name, periodLength)
	}

	return &FractionalCycle{name: name, periods: periods, periodLength: periodLength}, nil
}

// Name identifies the cycle.
func (c *FractionalCycle) Name() string {
	return c.name
}

// boundary returns the absolute day the j-th period from the epoch ends on.
func (c *FractionalCycle) boundary(period int) int {
	return int(math.RoundToEven(float64(period) * c.periodLength))
}

// periodAt finds the period from the epoch containing an absolute day: the
// smallest j with boundary(j) >= absDay. The arithmetic guess is corrected
// by at most one step to absorb float error at the rounding edges.
func (c *FractionalCycle) periodAt(absDay int) int {
	period := int(math.Ceil((float64(absDay) - 0.5) / c.periodLength))
	if period < 1 {
		period = 1
	}

	for c.boundary(period) < absDay {
		period++
	}

	for period > 1 && c.boundary(period-1) >= absDay {
		period--
	}

	return period
}

// stateFor derives the full state for an absolute day known to fall in the
// given period from the epoch.
func (c *FractionalCycle) stateFor(absDay, period int) State {
	count := len(c.periods)
	cycle := (period-1)/count + 1
	cycleStart := c.boundary((cycle - 1) * count)

	return State{
		Cycle:     cycle,
		Day:       absDay - cycleStart,
		Period:    c.periods[(period-1)%count],
		PeriodDay: absDay - c.boundary(period-1),
		AbsDay:    absDay,
		AbsPeriod: period,
		Fraction:  float64(period)*c.periodLength - float64(cycleStart),
	}
}

// StateAt reconstructs the state for an absolute day from the epoch using
// the boundary sequence alone, never by replaying history.
func (c *FractionalCycle) StateAt(absDay int) State {
	if absDay < 1 {
		panic(fmt.Sprintf("calendar: absolute day %d before the epoch", absDay))
	}

	return c.stateFor(absDay, c.periodAt(absDay))
}

// Advance returns the state for the next day, crossing at most one period
// boundary.
func (c *FractionalCycle) Advance(s State) State {
	absDay := s.AbsDay + 1
	period := s.AbsPeriod

	if absDay > c.boundary(period) {
		period++
	}

	return c.stateFor(absDay, period)
}

// Annotate stamps every day of the year table with this cycle's position.
func (c *FractionalCycle) Annotate(table *YearTable, cal Calendar) {
	state := c.StateAt(cal.DaysToYear(table.Year) + 1)
	key := strings.ToLower(c.name)

	for i := range table.Days {
		table.Days[i].Cycles[key] = state.Stamp()
		state = c.Advance(state)
	}
}
