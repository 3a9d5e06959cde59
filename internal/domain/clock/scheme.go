package clock

import "fmt"

// Scheme carries the year length used for the day-to-year carry in time
// arithmetic. The active calendar's realized year length is threaded in
// explicitly instead of living in a mutable package variable, keeping Time
// values and their arithmetic free of hidden state.
type Scheme struct {
	// DaysPerYear is the number of days a year rolls over at. Must be >= 1.
	DaysPerYear int
}

// Standard is the default 365-day scheme used when no calendar is active.
var Standard = Scheme{DaysPerYear: 365}

// NewScheme builds a scheme for the given year length.
// A year length below one day is a programmer error.
func NewScheme(daysPerYear int) Scheme {
	if daysPerYear < 1 {
		panic(fmt.Sprintf("clock: invalid days per year %d", daysPerYear))
	}

	return Scheme{DaysPerYear: daysPerYear}
}

// Add returns t advanced by the offset. The offset may be a full time, a
// partial (only some components set), or a Minutes/Hours/Days value.
func (s Scheme) Add(t, offset Time) Time {
	return s.normalize(Time{
		Year:   t.Year + offset.Year,
		Day:    t.Day + offset.Day,
		Hour:   t.Hour + offset.Hour,
		Minute: t.Minute + offset.Minute,
	})
}

// Sub returns t moved back by the offset.
func (s Scheme) Sub(t, offset Time) Time {
	return s.normalize(Time{
		Year:   t.Year - offset.Year,
		Day:    t.Day - offset.Day,
		Hour:   t.Hour - offset.Hour,
		Minute: t.Minute - offset.Minute,
	})
}

// normalize applies successive carries: minutes into hours, hours into
// days, days into years. Days are one-based, so the day carry works on
// Day-1 to keep the result within 1..DaysPerYear.
func (s Scheme) normalize(t Time) Time {
	if s.DaysPerYear < 1 {
		panic(fmt.Sprintf("clock: invalid days per year %d", s.DaysPerYear))
	}

	extra, minute := floorDivMod(t.Minute, 60)
	hour := t.Hour + extra

	extra, hour = floorDivMod(hour, 24)
	day := t.Day + extra

	extra, day = floorDivMod(day-1, s.DaysPerYear)

	return Time{
		Year:   t.Year + extra,
		Day:    day + 1,
		Hour:   hour,
		Minute: minute,
	}
}
