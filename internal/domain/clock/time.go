package clock

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Time is a point in campaign time, precise to the minute.
//
// A fully normalized value satisfies 0 <= Minute < 60, 0 <= Hour < 24 and
// 1 <= Day <= the scheme's days-per-year. Partially filled values (zero
// year or day) are used as offsets for Scheme.Add and Scheme.Sub.
type Time struct {
	// Year is the campaign year, counted from 1.
	Year int
	// Day is the day within the year, counted from 1.
	Day int
	// Hour is the hour within the day.
	Hour int
	// Minute is the minute within the hour.
	Minute int
}

// ErrFormat is returned when a time string matches none of the accepted grammars.
var ErrFormat = errors.New("invalid time format")

// fullPattern matches the complete "Y/D H:MM" form.
var fullPattern = regexp.MustCompile(`^(\d+)/(\d+) (\d+):(\d\d?)$`)

// Minutes returns an offset of n minutes.
func Minutes(n int) Time {
	return Time{Minute: n}
}

// Hours returns an offset of n hours.
func Hours(n int) Time {
	return Time{Hour: n}
}

// Days returns an offset of n days.
func Days(n int) Time {
	return Time{Day: n}
}

// Compare orders two times lexicographically by (year, day, hour, minute).
// It returns -1 when a < b, 0 when equal, and 1 when a > b.
func Compare(a, b Time) int {
	pairs := [4][2]int{
		{a.Year, b.Year},
		{a.Day, b.Day},
		{a.Hour, b.Hour},
		{a.Minute, b.Minute},
	}

	for _, p := range pairs {
		switch {
		case p[0] < p[1]:
			return -1
		case p[0] > p[1]:
			return 1
		}
	}

	return 0
}

// Before reports whether t is strictly earlier than other.
func (t Time) Before(other Time) bool {
	return Compare(t, other) < 0
}

// After reports whether t is strictly later than other.
func (t Time) After(other Time) bool {
	return Compare(t, other) > 0
}

// IsZero reports whether every component is zero.
// The zero value doubles as "no time" for optional fields such as alarm repeats.
func (t Time) IsZero() bool {
	return t == Time{}
}

// Short renders the compact "Y/D H:MM" form.
// The result round-trips through Parse for any normalized value.
func (t Time) Short() string {
	return fmt.Sprintf("%d/%d %d:%02d", t.Year, t.Day, t.Hour, t.Minute)
}

// String renders the long human-readable form.
func (t Time) String() string {
	return fmt.Sprintf("Year %d, Day %d, %d:%02d", t.Year, t.Day, t.Hour, t.Minute)
}

// Parse reads a time from text, trying grammars in order:
// a bare integer (an offset in minutes), "Y/D H:MM", "H:MM", and "Y/D".
// The first grammar that matches wins; no match returns ErrFormat.
// Minute and hour overflow carries into hours and days, the day and year
// components are taken as written.
func Parse(text string) (Time, error) {
	text = strings.TrimSpace(text)

	if n, err := strconv.Atoi(text); err == nil && !strings.HasPrefix(text, "-") {
		return carry(Time{Minute: n}), nil
	}

	if m := fullPattern.FindStringSubmatch(text); m != nil {
		return carry(Time{
			Year:   mustAtoi(m[1]),
			Day:    mustAtoi(m[2]),
			Hour:   mustAtoi(m[3]),
			Minute: mustAtoi(m[4]),
		}), nil
	}

	if hour, minute, ok := splitPair(text, ":"); ok {
		return carry(Time{Hour: hour, Minute: minute}), nil
	}

	if year, day, ok := splitPair(text, "/"); ok {
		return Time{Year: year, Day: day}, nil
	}

	return Time{}, fmt.Errorf("%w: %q", ErrFormat, text)
}

// mustAtoi converts digits already matched by a \d+ group.
func mustAtoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		panic(err)
	}

	return n
}

// splitPair parses "<int><sep><int>" and reports whether the text had that shape.
func splitPair(text, sep string) (int, int, bool) {
	left, right, found := strings.Cut(text, sep)
	if !found {
		return 0, 0, false
	}

	a, err := strconv.Atoi(strings.TrimSpace(left))
	if err != nil || a < 0 {
		return 0, 0, false
	}

	b, err := strconv.Atoi(strings.TrimSpace(right))
	if err != nil || b < 0 {
		return 0, 0, false
	}

	return a, b, true
}

// carry normalizes minute and hour overflow without touching the year,
// since the day-to-year carry needs a Scheme.
func carry(t Time) Time {
	extra, minute := floorDivMod(t.Minute, 60)
	hour := t.Hour + extra

	extra, hour = floorDivMod(hour, 24)

	return Time{Year: t.Year, Day: t.Day + extra, Hour: hour, Minute: minute}
}

// floorDivMod returns floor division and a non-negative remainder.
func floorDivMod(a, b int) (int, int) {
	q := a / b
	r := a % b

	if r < 0 {
		q--
		r += b
	}

	return q, r
}
