package calendar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// testWeek is the seven-day week cycle used across the package tests.
func testWeek(t *testing.T) *StaticCycle {
	t.Helper()

	week, err := NewStaticCycle("Week", []Period{
		{Name: "Moonday", Days: 1},
		{Name: "Forgeday", Days: 1},
		{Name: "Midweek", Days: 1},
		{Name: "Highday", Days: 1},
		{Name: "Fernday", Days: 1},
		{Name: "Starday", Days: 1},
		{Name: "Sunday", Days: 1},
	}, nil)
	require.NoError(t, err)

	return week
}

// testMoon is a 30-day cycle whose Full period stretches a day on even
// cycle numbers.
func testMoon(t *testing.T) *StaticCycle {
	t.Helper()

	moon, err := NewStaticCycle("Moon", []Period{
		{Name: "Waxing", Days: 10},
		{Name: "Full", Days: 5},
		{Name: "Waning", Days: 10},
		{Name: "New", Days: 5},
	}, []Deviation{
		{Period: "Full", Days: 6, Rule: Rule{Mod: 2, Remainders: []int{0}}},
	})
	require.NoError(t, err)

	return moon
}

// TestStaticCycle_StateAt checks the closed-form reconstruction for a
// uniform cycle.
func TestStaticCycle_StateAt(t *testing.T) {
	t.Parallel()

	week := testWeek(t)

	tests := []struct {
		absDay int
		want   State
	}{
		{
			absDay: 1,
			want:   State{Cycle: 1, Day: 1, Period: "Moonday", PeriodDay: 1, PeriodIndex: 0},
		},
		{
			absDay: 7,
			want:   State{Cycle: 1, Day: 7, Period: "Sunday", PeriodDay: 1, PeriodIndex: 6},
		},
		{
			absDay: 8,
			want:   State{Cycle: 2, Day: 1, Period: "Moonday", PeriodDay: 1, PeriodIndex: 0},
		},
		{
			absDay: 90*6 + 1, // day 1 of year 7 on a plain 90-day calendar
			want:   State{Cycle: 78, Day: 2, Period: "Forgeday", PeriodDay: 1, PeriodIndex: 1},
		},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, week.StateAt(tt.absDay), "day %d", tt.absDay)
	}
}

// TestStaticCycle_AdvanceMatchesStateAt walks day by day and checks every
// state agrees with the closed form, across deviated cycle lengths.
func TestStaticCycle_AdvanceMatchesStateAt(t *testing.T) {
	t.Parallel()

	moon := testMoon(t)
	state := moon.StateAt(1)

	for absDay := 1; absDay <= 400; absDay++ {
		require.Equal(t, moon.StateAt(absDay).Stamp(), state.Stamp(), "day %d", absDay)
		state = moon.Advance(state)
	}
}

// TestStaticCycle_DeviatedLengths checks the cycle boundaries shift under
// the deviation: cycles 1 and 2 run 30 and 31 days.
func TestStaticCycle_DeviatedLengths(t *testing.T) {
	t.Parallel()

	moon := testMoon(t)

	require.Equal(t, 30, moon.lengthOf(1))
	require.Equal(t, 31, moon.lengthOf(2))

	require.Equal(t, Stamp{Cycle: 1, Day: 30, Period: "New", PeriodDay: 5}, moon.StateAt(30).Stamp())
	require.Equal(t, Stamp{Cycle: 2, Day: 1, Period: "Waxing", PeriodDay: 1}, moon.StateAt(31).Stamp())
	require.Equal(t, Stamp{Cycle: 2, Day: 16, Period: "Full", PeriodDay: 6}, moon.StateAt(46).Stamp())
	require.Equal(t, Stamp{Cycle: 2, Day: 31, Period: "New", PeriodDay: 5}, moon.StateAt(61).Stamp())
	require.Equal(t, Stamp{Cycle: 3, Day: 1, Period: "Waxing", PeriodDay: 1}, moon.StateAt(62).Stamp())
}

// TestStaticCycle_Annotate checks year tables carry the cycle stamps and
// that annotation continues seamlessly across year boundaries.
func TestStaticCycle_Annotate(t *testing.T) {
	t.Parallel()

	cal, err := NewDeviationCalendar(testMonths(), nil, []Cycle{testWeek(t)}, nil)
	require.NoError(t, err)

	year1 := cal.Materialize(1)
	require.Equal(t, Stamp{Cycle: 1, Day: 1, Period: "Moonday", PeriodDay: 1}, year1.At(1).Cycles["week"])
	require.Equal(t, Stamp{Cycle: 13, Day: 6, Period: "Starday", PeriodDay: 1}, year1.At(90).Cycles["week"])

	year2 := cal.Materialize(2)
	require.Equal(t, Stamp{Cycle: 13, Day: 7, Period: "Sunday", PeriodDay: 1}, year2.At(1).Cycles["week"])
}

// TestStaticCycle_ClosedFormAtDistantYear cross-checks the starting state
// of year 7 against day-by-day simulation from the epoch, with deviated
// year lengths in between.
func TestStaticCycle_ClosedFormAtDistantYear(t *testing.T) {
	t.Parallel()

	week := testWeek(t)

	cal, err := NewDeviationCalendar(testMonths(), leapFirst(), nil, nil)
	require.NoError(t, err)

	absDay := cal.DaysToYear(7) + 1

	state := week.StateAt(1)
	for day := 1; day < absDay; day++ {
		state = week.Advance(state)
	}

	require.Equal(t, state, week.StateAt(absDay))
}

// TestNewStaticCycle_Rejects covers specification errors.
func TestNewStaticCycle_Rejects(t *testing.T) {
	t.Parallel()

	_, err := NewStaticCycle("", []Period{{Name: "Only", Days: 1}}, nil)
	require.ErrorIs(t, err, ErrConfig)

	_, err = NewStaticCycle("Moon", nil, nil)
	require.ErrorIs(t, err, ErrConfig)

	_, err = NewStaticCycle("Moon", []Period{{Name: "Waxing", Days: 10}}, []Deviation{
		{Period: "Waning", Days: 11, Rule: Rule{Mod: 2, Remainders: []int{0}}},
	})
	require.ErrorIs(t, err, ErrConfig)
}

// TestValidateCycles_DuplicateNames rejects cycles whose lowercase names collide.
func TestValidateCycles_DuplicateNames(t *testing.T) {
	t.Parallel()

	week := testWeek(t)
	shadow, err := NewStaticCycle("week", []Period{{Name: "Only", Days: 1}}, nil)
	require.NoError(t, err)

	_, err = NewDeviationCalendar(testMonths(), nil, []Cycle{week, shadow}, nil)
	require.ErrorIs(t, err, ErrConfig)
}
