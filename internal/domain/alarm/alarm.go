package alarm

import (
	"fmt"
	"strings"

	"github.com/oshokin/campaign-clock/internal/domain/clock"
)

// Alarm is a one-shot or repeating trigger owned and enumerated by the
// tracker. Check never blocks and never prints; it reports the notes that
// fired so the caller decides how to surface them.
type Alarm interface {
	// Check fires the alarm zero or more times against the event that just
	// happened and the current time. The scheme carries the active
	// calendar's year length for repeat arithmetic.
	Check(event string, now clock.Time, scheme clock.Scheme) []string
	// Done reports whether the alarm is spent and can be discarded.
	Done() bool
	// Data renders the single tagged journal line for the alarm.
	Data() string
	// String renders the human-readable description.
	String() string
}

// TimeAlarm fires when the campaign clock reaches its trigger time.
type TimeAlarm struct {
	// Trigger is the time the alarm next fires at.
	Trigger clock.Time
	// Note is the message delivered on firing.
	Note string
	// Repeat is the interval added to the trigger after each firing.
	// The zero value means one-shot.
	Repeat clock.Time

	done bool
}

// NewTimeAlarm creates a time-anchored alarm. A zero repeat means one-shot.
func NewTimeAlarm(trigger clock.Time, note string, repeat clock.Time) *TimeAlarm {
	return &TimeAlarm{Trigger: trigger, Note: note, Repeat: repeat}
}

// Check fires while the trigger is at or before now. A repeating alarm
// advances its trigger each firing, so a now far past several intervals
// fires once per missed interval and always terminates: every iteration
// strictly advances the trigger.
func (a *TimeAlarm) Check(_ string, now clock.Time, scheme clock.Scheme) []string {
	var fired []string

	for !a.done && !now.Before(a.Trigger) {
		fired = append(fired, a.Note)

		if a.Repeat.IsZero() {
			a.done = true

			break
		}

		a.Trigger = scheme.Add(a.Trigger, a.Repeat)
	}

	return fired
}

// Done reports whether the alarm is spent.
func (a *TimeAlarm) Done() bool {
	return a.done
}

// String renders the human-readable description.
func (a *TimeAlarm) String() string {
	if !a.Repeat.IsZero() {
		return fmt.Sprintf("Repeating alarm at %s; %s", a.Trigger, a.Note)
	}

	return fmt.Sprintf("Alarm at %s; %s", a.Trigger, a.Note)
}

// EventAlarm fires when a named recurring event happens.
type EventAlarm struct {
	// Event is the event name the alarm listens for, case-insensitively.
	Event string
	// Note is the message delivered on firing.
	Note string
	// Repeat keeps the alarm alive after a firing.
	Repeat bool

	done bool
}

// NewEventAlarm creates an event-anchored alarm.
func NewEventAlarm(event, note string, repeat bool) *EventAlarm {
	return &EventAlarm{Event: event, Note: note, Repeat: repeat}
}

// Check fires when the event matches, ignoring case. A spent alarm stays
// done and never re-fires, even if the caller forgets to filter it out.
func (a *EventAlarm) Check(event string, _ clock.Time, _ clock.Scheme) []string {
	if a.done || !strings.EqualFold(a.Event, event) {
		return nil
	}

	a.done = !a.Repeat

	return []string{a.Note}
}

// Done reports whether the alarm is spent.
func (a *EventAlarm) Done() bool {
	return a.done
}

// String renders the human-readable description.
func (a *EventAlarm) String() string {
	if a.Repeat {
		return fmt.Sprintf("Repeating alarm at %s; %s", a.Event, a.Note)
	}

	return fmt.Sprintf("Alarm at %s; %s", a.Event, a.Note)
}
