// Package calendar models fictional campaign calendars.
//
// A Calendar lays months out into a year table, one entry per day, and
// delegates to its attached cycles to annotate every day with cycle fields
// (weekday-like or moon-phase-like). Two calendar realizations exist:
// DeviationCalendar (integer month lengths with rule-driven overrides for
// matching years) and FractionalCalendar (a real-valued year length whose
// remainder is distributed by rounding cumulative days). Two cycle
// realizations exist: StaticCycle (fixed integer period lengths) and
// FractionalCycle (a shared fractional period length with a carried
// remainder).
//
// Cycle positions for any year are reconstructed in closed form from the
// cumulative day count before that year and must agree exactly with
// day-by-day simulation from the epoch (day 1 of year 1); the property
// tests cross-check both paths.
package calendar
