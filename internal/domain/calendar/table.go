package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

// Period is a named stretch of days: a month within a year or a period
// within a cycle.
type Period struct {
	// Name is the display name of the period.
	Name string `yaml:"name"`
	// Days is the base length in days.
	Days int `yaml:"days"`
}

// Stamp is one cycle's position on a single day.
type Stamp struct {
	// Cycle is the cycle number, counted from 1 at the epoch.
	Cycle int
	// Day is the day within the cycle, counted from 1.
	Day int
	// Period is the name of the current cycle period.
	Period string
	// PeriodDay is the day within the period, counted from 1.
	PeriodDay int
}

// DayInfo is the full metadata for a single day of a materialized year.
type DayInfo struct {
	// DayOfYear is the day's sequence within the year, counted from 1.
	DayOfYear int
	// DayOfMonth is the day's sequence within its month, counted from 1.
	DayOfMonth int
	// Month is the name of the month the day falls in.
	Month string
	// MonthNumber is the month's sequence within the year, counted from 1.
	MonthNumber int
	// Cycles holds each attached cycle's stamp, keyed by cycle name.
	Cycles map[string]Stamp
}

// YearTable is the per-day metadata for one calendar year.
type YearTable struct {
	// Year the table was materialized for.
	Year int
	// Length is the realized number of days in the year.
	Length int
	// Days holds one entry per day; index 0 is day 1.
	Days []DayInfo
}

// At returns the metadata for a one-based day of the year.
// Asking for a day outside the year is a programmer error.
func (t *YearTable) At(day int) DayInfo {
	if day < 1 || day > t.Length {
		panic(fmt.Sprintf("calendar: day %d outside year of %d days", day, t.Length))
	}

	return t.Days[day-1]
}

// Render substitutes year-table fields into a date format string.
// Recognized placeholders are {year}, {year-length}, {day-of-year},
// {day-of-month}, {month-name}, {month-number} and, per attached cycle,
// {<cycle>-number}, {<cycle>-day}, {<cycle>-period}, {<cycle>-period-day}.
func (t *YearTable) Render(day int, format string) string {
	info := t.At(day)

	pairs := []string{
		"{year}", strconv.Itoa(t.Year),
		"{year-length}", strconv.Itoa(t.Length),
		"{day-of-year}", strconv.Itoa(info.DayOfYear),
		"{day-of-month}", strconv.Itoa(info.DayOfMonth),
		"{month-name}", info.Month,
		"{month-number}", strconv.Itoa(info.MonthNumber),
	}

	for name, stamp := range info.Cycles {
		key := strings.ToLower(name)
		pairs = append(pairs,
			"{"+key+"-number}", strconv.Itoa(stamp.Cycle),
			"{"+key+"-day}", strconv.Itoa(stamp.Day),
			"{"+key+"-period}", stamp.Period,
			"{"+key+"-period-day}", strconv.Itoa(stamp.PeriodDay),
		)
	}

	return strings.NewReplacer(pairs...).Replace(format)
}

// layoutYear builds a table by dealing days out to months sequentially.
// The caller guarantees the month lengths sum to length.
func layoutYear(year int, months []Period, length int) *YearTable {
	table := &YearTable{
		Year:   year,
		Length: length,
		Days:   make([]DayInfo, 0, length),
	}

	dayOfYear := 0

	for number, month := range months {
		for day := 1; day <= month.Days; day++ {
			dayOfYear++
			table.Days = append(table.Days, DayInfo{
				DayOfYear:   dayOfYear,
				DayOfMonth:  day,
				Month:       month.Name,
				MonthNumber: number + 1,
				Cycles:      make(map[string]Stamp),
			})
		}
	}

	return table
}
