package alarm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oshokin/campaign-clock/internal/domain/clock"
)

// ErrFormat is returned for malformed alarm lines and specifications.
var ErrFormat = errors.New("invalid alarm data")

// noRepeat marks a one-shot time alarm in the journal line.
const noRepeat = "none"

// Data renders the tagged journal line. Spaces inside times are encoded as
// dashes so the line splits on whitespace into exactly four fields.
func (a *TimeAlarm) Data() string {
	repeat := noRepeat
	if !a.Repeat.IsZero() {
		repeat = packTime(a.Repeat)
	}

	return fmt.Sprintf("time %s %s %s", packTime(a.Trigger), repeat, a.Note)
}

// Data renders the tagged journal line.
func (a *EventAlarm) Data() string {
	return fmt.Sprintf("event %s %t %s", a.Event, a.Repeat, a.Note)
}

// FromData parses a tagged journal line back into an alarm.
func FromData(line string) (Alarm, error) {
	fields := strings.SplitN(strings.TrimSpace(line), " ", 4)
	if len(fields) < 4 {
		return nil, fmt.Errorf("%w: %q", ErrFormat, line)
	}

	tag, trigger, repeat, note := fields[0], fields[1], fields[2], fields[3]

	switch tag {
	case "time":
		triggerTime, err := unpackTime(trigger)
		if err != nil {
			return nil, fmt.Errorf("%w: trigger in %q: %w", ErrFormat, line, err)
		}

		var repeatTime clock.Time

		if repeat != noRepeat {
			if repeatTime, err = unpackTime(repeat); err != nil {
				return nil, fmt.Errorf("%w: repeat in %q: %w", ErrFormat, line, err)
			}
		}

		return NewTimeAlarm(triggerTime, note, repeatTime), nil
	case "event":
		switch repeat {
		case "true", "false":
			return NewEventAlarm(trigger, note, repeat == "true"), nil
		default:
			return nil, fmt.Errorf("%w: repeat flag %q in %q", ErrFormat, repeat, line)
		}
	default:
		return nil, fmt.Errorf("%w: unknown tag %q in %q", ErrFormat, tag, line)
	}
}

// New parses the user-facing alarm specification: a symbol, a time spec,
// and a note. "+" sets a one-shot alarm relative to now, "@" a repeating
// one (relative interval, or an event name), and "=" an absolute alarm
// whose unspecified year and day default to now's. A time spec naming a
// known event creates an event alarm.
func New(spec string, now clock.Time, scheme clock.Scheme, events map[string]string) (Alarm, error) {
	fields := strings.SplitN(strings.TrimSpace(spec), " ", 3)
	if len(fields) < 3 {
		return nil, fmt.Errorf("%w: alarm spec %q needs a symbol, a time, and a note", ErrFormat, spec)
	}

	symbol, timeSpec, note := fields[0], fields[1], fields[2]

	if _, known := events[strings.ToLower(timeSpec)]; known {
		return NewEventAlarm(strings.ToLower(timeSpec), note, symbol == "@"), nil
	}

	// A bare day-time pair like "1-6:00" is a day offset within some year.
	raw := timeSpec
	if strings.Contains(timeSpec, "-") && !strings.Contains(timeSpec, "/") {
		timeSpec = "0/" + timeSpec
	}

	offset, err := unpackTime(timeSpec)
	if err != nil {
		return nil, fmt.Errorf("%w: time spec in %q: %w", ErrFormat, spec, err)
	}

	switch symbol {
	case "+":
		return NewTimeAlarm(scheme.Add(now, offset), note, clock.Time{}), nil
	case "@":
		return NewTimeAlarm(scheme.Add(now, offset), note, offset), nil
	case "=":
		if !strings.Contains(raw, "/") {
			offset.Year = now.Year
		}

		if !strings.Contains(raw, "-") {
			offset.Day = now.Day
		}

		return NewTimeAlarm(offset, note, clock.Time{}), nil
	default:
		return nil, fmt.Errorf("%w: unknown alarm symbol %q", ErrFormat, symbol)
	}
}

// packTime encodes a time for a whitespace-delimited journal line.
func packTime(t clock.Time) string {
	return strings.ReplaceAll(t.Short(), " ", "-")
}

// unpackTime decodes a dash-packed time.
func unpackTime(s string) (clock.Time, error) {
	return clock.Parse(strings.ReplaceAll(s, "-", " "))
}
