// Package clock defines the game-time value used across the engine.
//
// Time is an immutable point in campaign time (year, day-of-year, hour,
// minute) with lexicographic ordering, a compact text form, and arithmetic.
// Arithmetic is parameterized by a Scheme carrying the days-per-year used
// for the day-to-year carry, so no global year length is ever mutated; the
// tracker derives a Scheme from the active calendar. Time itself stays
// calendar-agnostic: it knows nothing about months or cycles.
package clock
