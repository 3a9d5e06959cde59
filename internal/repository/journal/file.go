package journal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/oshokin/campaign-clock/internal/config"
	"github.com/oshokin/campaign-clock/internal/domain/alarm"
	"github.com/oshokin/campaign-clock/internal/domain/clock"
	"github.com/oshokin/campaign-clock/internal/version"
)

// Snapshot is the campaign time state a journal holds: the current time,
// the live alarms, the named recurring events, and free-form notes.
type Snapshot struct {
	// Now is the current campaign time.
	Now clock.Time
	// Alarms are the alarms still waiting to fire.
	Alarms []alarm.Alarm
	// Events maps recurring event names to the offset text they stand for.
	Events map[string]string
	// Notes are free-form campaign notes, kept verbatim.
	Notes []string
}

// Repository defines persistence operations for the time journal.
type Repository interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snapshot *Snapshot) error
}

// FileRepository persists the journal as flat text: a version header, then
// one tagged line per record.
type FileRepository struct {
	// path is the filesystem location of the journal file.
	path string
	// mu protects concurrent access to the journal file.
	mu sync.Mutex
}

var (
	// ErrNotFound is returned when the journal file does not exist yet.
	ErrNotFound = errors.New("journal not found")
	// ErrSchema is returned when the journal was written by an
	// incompatible schema version.
	ErrSchema = errors.New("incompatible journal schema")
)

// NewFileRepository creates a repository that reads and writes the journal
// at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads the journal from disk.
func (r *FileRepository) Load(_ context.Context) (*Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read journal: %w", err)
	}

	snapshot := &Snapshot{Events: make(map[string]string)}
	sawVersion := false

	for _, line := range strings.Split(string(contents), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		tag, rest, found := strings.Cut(line, ": ")
		if !found {
			return nil, fmt.Errorf("untagged journal line %q", line)
		}

		if !sawVersion {
			if tag != "version" {
				return nil, fmt.Errorf("journal must start with a version line, got %q", line)
			}

			compatible, err := version.CompatibleSchema(rest)
			if err != nil {
				return nil, fmt.Errorf("journal version line: %w", err)
			}

			if !compatible {
				return nil, fmt.Errorf("%w: journal has %s, this build reads %s", ErrSchema, rest, version.Schema)
			}

			sawVersion = true

			continue
		}

		if err := snapshot.apply(tag, rest); err != nil {
			return nil, err
		}
	}

	if !sawVersion {
		return nil, fmt.Errorf("journal %s is empty", r.path)
	}

	return snapshot, nil
}

// apply folds one tagged record into the snapshot.
func (s *Snapshot) apply(tag, rest string) error {
	switch tag {
	case "time":
		now, err := clock.Parse(rest)
		if err != nil {
			return fmt.Errorf("journal time record: %w", err)
		}

		s.Now = now
	case "alarm":
		parsed, err := alarm.FromData(rest)
		if err != nil {
			return fmt.Errorf("journal alarm record: %w", err)
		}

		s.Alarms = append(s.Alarms, parsed)
	case "event":
		name, offset, found := strings.Cut(rest, " ")
		if !found {
			return fmt.Errorf("journal event record %q needs a name and an offset", rest)
		}

		s.Events[strings.ToLower(name)] = offset
	case "note":
		s.Notes = append(s.Notes, rest)
	default:
		return fmt.Errorf("unknown journal tag %q", tag)
	}

	return nil
}

// Save writes the journal to disk, one tagged line per record.
func (r *FileRepository) Save(_ context.Context, snapshot *Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var b strings.Builder

	fmt.Fprintf(&b, "version: %s\n", version.Schema)
	fmt.Fprintf(&b, "time: %s\n", snapshot.Now.Short())

	// Deterministic output keeps journals diffable.
	names := make([]string, 0, len(snapshot.Events))
	for name := range snapshot.Events {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(&b, "event: %s %s\n", name, snapshot.Events[name])
	}

	for _, a := range snapshot.Alarms {
		fmt.Fprintf(&b, "alarm: %s\n", a.Data())
	}

	for _, note := range snapshot.Notes {
		fmt.Fprintf(&b, "note: %s\n", note)
	}

	if err := os.WriteFile(r.path, []byte(b.String()), config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}

	return nil
}
