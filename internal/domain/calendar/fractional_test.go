package calendar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestFractional builds the 90.334-day calendar the tests share.
// First is the overage month, so long years run First out to 30 days.
func newTestFractional(t *testing.T) *FractionalCalendar {
	t.Helper()

	cal, err := NewFractionalCalendar(90.334, testMonths(), "First", nil, nil)
	require.NoError(t, err)

	return cal
}

// TestFractionalCalendar_YearLength checks the first years realize the
// expected 90/91 pattern.
func TestFractionalCalendar_YearLength(t *testing.T) {
	t.Parallel()

	cal := newTestFractional(t)

	// round(y*90.334): 90, 181, 271, 361, 452, ...
	wants := []int{90, 91, 90, 90, 91, 90, 90, 91, 90, 90}
	for i, want := range wants {
		require.Equal(t, want, cal.YearLength(i+1), "year %d", i+1)
	}
}

// TestFractionalCalendar_Drift checks the running total never strays more
// than half a day from the ideal over a century.
func TestFractionalCalendar_Drift(t *testing.T) {
	t.Parallel()

	cal := newTestFractional(t)

	for year := 1; year <= 100; year++ {
		drift := math.Abs(float64(cal.DaysToYear(year+1)) - float64(year)*90.334)
		require.LessOrEqual(t, drift, 0.5, "year %d", year)
	}
}

// TestFractionalCalendar_Partition checks years tile the day line.
func TestFractionalCalendar_Partition(t *testing.T) {
	t.Parallel()

	cal := newTestFractional(t)

	for year := 1; year <= 100; year++ {
		require.Equal(t, cal.DaysToYear(year+1), cal.DaysToYear(year)+cal.YearLength(year))
	}
}

// TestFractionalCalendar_OverageMonth checks long years credit the extra
// day to the designated month and short years stay untouched.
func TestFractionalCalendar_OverageMonth(t *testing.T) {
	t.Parallel()

	cal := newTestFractional(t)

	short := cal.Materialize(1)
	require.Equal(t, 90, short.Length)
	require.Equal(t, "Second", short.At(30).Month)

	long := cal.Materialize(2)
	require.Equal(t, 91, long.Length)
	require.Equal(t, "First", long.At(30).Month)
	require.Equal(t, 30, long.At(30).DayOfMonth)
	require.Equal(t, "Second", long.At(31).Month)
	require.Equal(t, 31, long.At(91).DayOfMonth)
	require.Equal(t, "Third", long.At(91).Month)
}

// TestNewFractionalCalendar_Rejects covers specification errors.
func TestNewFractionalCalendar_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ideal   float64
		months  []Period
		overage string
	}{
		{
			name:    "months do not sum to whole part",
			ideal:   91.5,
			months:  testMonths(),
			overage: "First",
		},
		{
			name:    "overage month unknown",
			ideal:   90.334,
			months:  testMonths(),
			overage: "Fourth",
		},
		{
			name:    "year length below one day",
			ideal:   0.5,
			months:  []Period{{Name: "Only", Days: 1}},
			overage: "Only",
		},
		{
			name:    "no months",
			ideal:   90.334,
			months:  nil,
			overage: "First",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewFractionalCalendar(tt.ideal, tt.months, tt.overage, nil, nil)
			require.ErrorIs(t, err, ErrConfig)
		})
	}
}
