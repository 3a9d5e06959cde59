package calendar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// testMonths is the three-month, 90-day year used across the package tests.
func testMonths() []Period {
	return []Period{
		{Name: "First", Days: 29},
		{Name: "Second", Days: 30},
		{Name: "Third", Days: 31},
	}
}

// leapFirst lengthens First to 30 days every third year.
func leapFirst() []Deviation {
	return []Deviation{
		{
			Period: "First",
			Days:   30,
			Rule:   Rule{Mod: 3, Remainders: []int{0}},
		},
	}
}

// TestDeviationCalendar_YearLength checks deviations change only matching years.
func TestDeviationCalendar_YearLength(t *testing.T) {
	t.Parallel()

	cal, err := NewDeviationCalendar(testMonths(), leapFirst(), nil, nil)
	require.NoError(t, err)

	for year := 1; year <= 9; year++ {
		want := 90
		if year%3 == 0 {
			want = 91
		}

		require.Equal(t, want, cal.YearLength(year), "year %d", year)
	}
}

// TestDeviationCalendar_DaysToYear checks the cumulative sums, including
// calls out of order against the monotone cache.
func TestDeviationCalendar_DaysToYear(t *testing.T) {
	t.Parallel()

	cal, err := NewDeviationCalendar(testMonths(), leapFirst(), nil, nil)
	require.NoError(t, err)

	require.Equal(t, 271, cal.DaysToYear(4))
	require.Equal(t, 0, cal.DaysToYear(1))
	require.Equal(t, 90, cal.DaysToYear(2))
	require.Equal(t, 180, cal.DaysToYear(3))
	require.Equal(t, 271+90+90+91, cal.DaysToYear(7))
}

// TestDeviationCalendar_Partition checks years tile the day line: the days
// before year y plus the length of year y equal the days before year y+1.
func TestDeviationCalendar_Partition(t *testing.T) {
	t.Parallel()

	cal, err := NewDeviationCalendar(testMonths(), leapFirst(), nil, nil)
	require.NoError(t, err)

	for year := 1; year <= 30; year++ {
		require.Equal(t, cal.DaysToYear(year+1), cal.DaysToYear(year)+cal.YearLength(year))
	}
}

// TestDeviationCalendar_Materialize checks the month layout shifts in a
// deviated year.
func TestDeviationCalendar_Materialize(t *testing.T) {
	t.Parallel()

	cal, err := NewDeviationCalendar(testMonths(), leapFirst(), nil, nil)
	require.NoError(t, err)

	plain := cal.Materialize(1)
	require.Equal(t, 90, plain.Length)
	require.Equal(t, DayInfo{DayOfYear: 30, DayOfMonth: 1, Month: "Second", MonthNumber: 2,
		Cycles: map[string]Stamp{}}, plain.At(30))
	require.Equal(t, "Third", plain.At(90).Month)
	require.Equal(t, 31, plain.At(90).DayOfMonth)

	leap := cal.Materialize(3)
	require.Equal(t, 91, leap.Length)
	require.Equal(t, "First", leap.At(30).Month)
	require.Equal(t, 30, leap.At(30).DayOfMonth)
	require.Equal(t, "Second", leap.At(31).Month)
}

// TestNewDeviationCalendar_Rejects covers specification errors.
func TestNewDeviationCalendar_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		months     []Period
		deviations []Deviation
	}{
		{
			name:   "no months",
			months: nil,
		},
		{
			name:   "unnamed month",
			months: []Period{{Name: "", Days: 10}},
		},
		{
			name:   "duplicate month",
			months: []Period{{Name: "First", Days: 10}, {Name: "First", Days: 11}},
		},
		{
			name:   "non-positive month",
			months: []Period{{Name: "First", Days: 0}},
		},
		{
			name:   "deviation targets unknown month",
			months: testMonths(),
			deviations: []Deviation{
				{Period: "Thirteenth", Days: 30, Rule: Rule{Mod: 4, Remainders: []int{0}}},
			},
		},
		{
			name:   "deviation with zero length",
			months: testMonths(),
			deviations: []Deviation{
				{Period: "First", Days: 0, Rule: Rule{Mod: 4, Remainders: []int{0}}},
			},
		},
		{
			name:   "rule modulus zero",
			months: testMonths(),
			deviations: []Deviation{
				{Period: "First", Days: 30, Rule: Rule{Mod: 0, Remainders: []int{0}}},
			},
		},
		{
			name:   "rule remainder out of range",
			months: testMonths(),
			deviations: []Deviation{
				{Period: "First", Days: 30, Rule: Rule{Mod: 4, Remainders: []int{4}}},
			},
		},
		{
			name:   "rule without remainders",
			months: testMonths(),
			deviations: []Deviation{
				{Period: "First", Days: 30, Rule: Rule{Mod: 4}},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewDeviationCalendar(tt.months, tt.deviations, nil, nil)
			require.ErrorIs(t, err, ErrConfig)
		})
	}
}

// TestApplyDeviations_LaterWins checks registration order decides among
// deviations hitting the same month.
func TestApplyDeviations_LaterWins(t *testing.T) {
	t.Parallel()

	deviations := []Deviation{
		{Period: "First", Days: 30, Rule: Rule{Mod: 2, Remainders: []int{0}}},
		{Period: "First", Days: 35, Rule: Rule{Mod: 4, Remainders: []int{0}}},
	}

	months := applyDeviations(testMonths(), deviations, RuleContext{Year: 4})
	require.Equal(t, 35, months[0].Days)

	months = applyDeviations(testMonths(), deviations, RuleContext{Year: 2})
	require.Equal(t, 30, months[0].Days)

	months = applyDeviations(testMonths(), deviations, RuleContext{Year: 1})
	require.Equal(t, 29, months[0].Days)
}

// TestRule_Matches_CycleContext checks a nonzero cycle number takes over
// from the year.
func TestRule_Matches_CycleContext(t *testing.T) {
	t.Parallel()

	rule := Rule{Mod: 2, Remainders: []int{0}}

	require.True(t, rule.Matches(RuleContext{Year: 4}))
	require.False(t, rule.Matches(RuleContext{Year: 4, Cycle: 3}))
	require.True(t, rule.Matches(RuleContext{Year: 3, Cycle: 4}))
}

// TestRequireYear panics on pre-epoch years.
func TestRequireYear(t *testing.T) {
	t.Parallel()

	cal, err := NewDeviationCalendar(testMonths(), nil, nil, nil)
	require.NoError(t, err)

	require.Panics(t, func() { cal.YearLength(0) })
	require.Panics(t, func() { cal.DaysToYear(-1) })
}

// TestFormat falls back to the default for unknown names.
func TestFormat(t *testing.T) {
	t.Parallel()

	cal, err := NewDeviationCalendar(testMonths(), nil, nil, map[string]string{
		"long": "{month-name} {day-of-month}, year {year}",
	})
	require.NoError(t, err)

	require.Equal(t, "{month-name} {day-of-month}, year {year}", cal.Format("long"))
	require.Equal(t, DefaultFormat, cal.Format("default"))
	require.Equal(t, DefaultFormat, cal.Format("no-such-format"))
}
