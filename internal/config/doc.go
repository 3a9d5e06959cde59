// Package config defines the campaign settings and the declarative YAML
// calendar definition, with helpers to load, validate and save them.
//
// The Config type holds file paths and tracker preferences. The
// CalendarDefinition type describes a calendar (months, deviations,
// cycles, formats, events) and builds the matching calendar realization,
// failing fast on any inconsistent specification.
package config
