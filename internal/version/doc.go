// Package version exposes build metadata and the journal schema version.
//
// Variables Version, Commit, and BuildTime are injected at build time via
// Go ldflags and default to sensible values for local builds. Schema is the
// journal file format version; CompatibleSchema gates loading of journals
// written by other builds.
package version
