package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oshokin/campaign-clock/internal/config"
	"github.com/oshokin/campaign-clock/internal/domain/alarm"
	"github.com/oshokin/campaign-clock/internal/domain/calendar"
	"github.com/oshokin/campaign-clock/internal/domain/clock"
	"github.com/oshokin/campaign-clock/internal/logger"
	repo "github.com/oshokin/campaign-clock/internal/repository/journal"
)

var (
	// ErrUnknownEvent is returned when a triggered event is not defined by
	// the calendar or the journal.
	ErrUnknownEvent = errors.New("unknown event")
	// ErrNoSuchAlarm is returned when an alarm index is out of range.
	ErrNoSuchAlarm = errors.New("no such alarm")
	// ErrPastYear is returned when a days-until query targets the current
	// year or an earlier one.
	ErrPastYear = errors.New("year is not in the future")
)

// dayEvent is the implicit event fired by every whole-day advance.
const dayEvent = "day"

// Tracker owns the campaign clock: the current time, the active calendar,
// the live alarms, and the named events alarms may anchor to. It is fully
// synchronous; persistence is explicit through Save.
type Tracker struct {
	// cfg carries the morning hour and file locations.
	cfg *config.Config
	// cal is the active calendar realization.
	cal calendar.Calendar
	// repo persists the journal; nil disables persistence.
	repo repo.Repository

	// scheme mirrors the realized length of the current year, so clock
	// arithmetic rolls over exactly where the calendar does.
	scheme clock.Scheme

	now    clock.Time
	alarms []alarm.Alarm
	events map[string]string
	notes  []string
}

// New builds a tracker from settings, a realized calendar, and the events
// its definition declares. An existing journal restores the clock, alarms,
// and notes; a missing one starts the campaign at the morning of day 1 of
// year 1.
func New(
	ctx context.Context,
	cfg *config.Config,
	cal calendar.Calendar,
	events map[string]string,
	repository repo.Repository,
) (*Tracker, error) {
	t := &Tracker{
		cfg:    cfg,
		cal:    cal,
		repo:   repository,
		now:    clock.Time{Year: 1, Day: 1, Hour: cfg.MorningHour},
		events: make(map[string]string, len(events)+1),
	}

	// The day event always exists; whole-day advances fire it.
	t.events[dayEvent] = "every whole-day advance"

	for name, offset := range events {
		t.events[strings.ToLower(name)] = offset
	}

	if repository != nil {
		snapshot, err := repository.Load(ctx)

		switch {
		case err == nil:
			t.now = snapshot.Now
			t.alarms = snapshot.Alarms
			t.notes = snapshot.Notes

			// Journal events overlay the calendar's.
			for name, offset := range snapshot.Events {
				t.events[name] = offset
			}
		case errors.Is(err, repo.ErrNotFound):
			logger.Infof(ctx, "No journal at %s, starting a new campaign", cfg.JournalFile)
		default:
			return nil, fmt.Errorf("load journal: %w", err)
		}
	}

	t.scheme = t.schemeFor(t.now.Year)

	return t, nil
}

// schemeFor derives the clock scheme from the realized year length.
func (t *Tracker) schemeFor(year int) clock.Scheme {
	return clock.NewScheme(t.cal.YearLength(year))
}

// Now returns the current campaign time.
func (t *Tracker) Now() clock.Time {
	return t.now
}

// Scheme returns the clock scheme of the current year.
func (t *Tracker) Scheme() clock.Scheme {
	return t.scheme
}

// Advance moves the clock forward by a sub-day offset and returns the
// notes of every alarm that fired on the way.
func (t *Tracker) Advance(ctx context.Context, offset clock.Time) []string {
	t.now = t.scheme.Add(t.now, offset)
	t.rollScheme(ctx)

	return t.checkAlarms(ctx, "")
}

// AdvanceDays moves the clock forward by whole days. Each day lands on the
// configured morning hour and fires the day event, so alarms anchored to
// mornings go off once per day even across a long jump.
func (t *Tracker) AdvanceDays(ctx context.Context, days int) []string {
	var fired []string

	for day := 0; day < days; day++ {
		t.now = t.scheme.Add(t.now, clock.Days(1))
		t.now.Hour = t.cfg.MorningHour
		t.now.Minute = 0

		t.rollScheme(ctx)

		fired = append(fired, t.checkAlarms(ctx, dayEvent)...)
	}

	return fired
}

// rollScheme re-derives the clock scheme after a move, since the new year
// may realize a different length.
func (t *Tracker) rollScheme(ctx context.Context) {
	scheme := t.schemeFor(t.now.Year)
	if scheme != t.scheme {
		logger.Infof(ctx, "Year %d runs %d days", t.now.Year, scheme.DaysPerYear)
	}

	t.scheme = scheme
}

// checkAlarms fires every alarm against the event and the current time,
// drops the spent ones, and returns the fired notes.
func (t *Tracker) checkAlarms(ctx context.Context, event string) []string {
	var fired []string

	live := t.alarms[:0]

	for _, a := range t.alarms {
		for _, note := range a.Check(event, t.now, t.scheme) {
			logger.InfoKV(ctx, "Alarm fired", "note", note, "time", t.now.Short())
			fired = append(fired, note)
		}

		if !a.Done() {
			live = append(live, a)
		}
	}

	t.alarms = live

	return fired
}

// SetAlarm parses an alarm specification against the current time and
// registers the alarm.
func (t *Tracker) SetAlarm(ctx context.Context, spec string) (alarm.Alarm, error) {
	a, err := alarm.New(spec, t.now, t.scheme, t.events)
	if err != nil {
		return nil, fmt.Errorf("set alarm: %w", err)
	}

	t.alarms = append(t.alarms, a)

	logger.InfoKV(ctx, "Alarm set", "alarm", a.String())

	return a, nil
}

// KillAlarm removes the alarm at the one-based index Alarms lists it under.
func (t *Tracker) KillAlarm(ctx context.Context, index int) error {
	if index < 1 || index > len(t.alarms) {
		return fmt.Errorf("%w: index %d of %d", ErrNoSuchAlarm, index, len(t.alarms))
	}

	logger.InfoKV(ctx, "Alarm killed", "alarm", t.alarms[index-1].String())

	t.alarms = append(t.alarms[:index-1], t.alarms[index:]...)

	return nil
}

// Alarms returns the live alarms in registration order.
func (t *Tracker) Alarms() []alarm.Alarm {
	result := make([]alarm.Alarm, len(t.alarms))
	copy(result, t.alarms)

	return result
}

// Events returns the known event names mapped to their descriptions.
func (t *Tracker) Events() map[string]string {
	result := make(map[string]string, len(t.events))
	for name, offset := range t.events {
		result[name] = offset
	}

	return result
}

// Trigger fires a named event by hand and returns the notes of the alarms
// listening to it.
func (t *Tracker) Trigger(ctx context.Context, event string) ([]string, error) {
	event = strings.ToLower(event)

	if _, known := t.events[event]; !known {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}

	logger.InfoKV(ctx, "Event triggered", "event", event)

	return t.checkAlarms(ctx, event), nil
}

// Date renders the current date in the named calendar format.
func (t *Tracker) Date(name string) string {
	table := t.cal.Materialize(t.now.Year)

	return table.Render(t.now.Day, t.cal.Format(name))
}

// DaysUntilYear counts the days from the current day to day 1 of a future
// year.
func (t *Tracker) DaysUntilYear(year int) (int, error) {
	if year <= t.now.Year {
		return 0, fmt.Errorf("%w: %d, now is %d", ErrPastYear, year, t.now.Year)
	}

	elapsed := t.cal.DaysToYear(t.now.Year) + t.now.Day - 1

	return t.cal.DaysToYear(year) - elapsed, nil
}

// Save persists the journal. A tracker without a repository is a no-op.
func (t *Tracker) Save(ctx context.Context) error {
	if t.repo == nil {
		return nil
	}

	snapshot := &repo.Snapshot{
		Now:    t.now,
		Alarms: t.alarms,
		Events: t.events,
		Notes:  t.notes,
	}

	if err := t.repo.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("save journal: %w", err)
	}

	logger.Infof(ctx, "Journal saved to %s", t.cfg.JournalFile)

	return nil
}
