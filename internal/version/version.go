package version

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"
)

var (
	// Version is the semantic version of the build. It can be overridden via ldflags.
	Version = "1.0.0"
	// Commit is the short git SHA embedded at build time (or "none").
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"
)

// Schema is the journal file schema version written to every journal header.
// Bump the major part when a change breaks older readers.
const Schema = "1.0.0"

// Short returns only the semantic version string.
func Short() string {
	return Version
}

// Full returns a human-readable version string with commit and build time.
func Full() string {
	return fmt.Sprintf("version: %s, commit: %s, built at: %s", Version, Commit, BuildTime)
}

// CompatibleSchema reports whether a journal written with schema s can be
// read by this build. Compatibility is major-version equality.
func CompatibleSchema(s string) (bool, error) {
	theirs, err := goversion.NewVersion(s)
	if err != nil {
		return false, fmt.Errorf("parse schema version: %w", err)
	}

	ours, err := goversion.NewVersion(Schema)
	if err != nil {
		return false, fmt.Errorf("parse built-in schema version: %w", err)
	}

	return theirs.Segments()[0] == ours.Segments()[0], nil
}
