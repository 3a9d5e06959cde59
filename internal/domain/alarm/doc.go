// Package alarm contains the trigger types fired by the time tracker.
//
// A TimeAlarm fires once its trigger time is reached, catching up over
// every missed interval when it repeats. An EventAlarm fires on a named
// recurring event (a rest, a dawn, a festival) regardless of clock time.
// Both serialize to a single tagged text line for the journal, and both
// can be built from the user-facing alarm specification grammar via New.
package alarm
