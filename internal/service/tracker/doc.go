// Package tracker implements the campaign clock service: it owns the
// current time, the active calendar, and the alarms, advances time by
// minutes or whole days, fires alarms, and persists everything through the
// journal repository.
package tracker
