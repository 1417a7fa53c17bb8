package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"worktime/session"
)

// ErrUnknownBoot is returned for a boot id the snapshot does not hold.
var ErrUnknownBoot = errors.New("boot not in snapshot")

// Event is one power transition as stored on disk.
type Event struct {
	At   time.Time `yaml:"at"`
	Kind string    `yaml:"kind"`
}

// Boot is one boot with its events as stored on disk.
type Boot struct {
	ID     string    `yaml:"id"`
	Start  time.Time `yaml:"start"`
	End    time.Time `yaml:"end"`
	Events []Event   `yaml:"events,omitempty"`
}

// Snapshot is a closed batch of boots and their power events. It serves as
// both the boot list and the event source for offline runs.
type Snapshot struct {
	Boots []Boot `yaml:"boots"`

	// Malformed counts events dropped on read for an unknown kind.
	Malformed int `yaml:"-"`
}

// DefaultSnapshotPath returns ~/.worktime/snapshot.yaml.
func DefaultSnapshotPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".worktime", "snapshot.yaml")
	}
	return filepath.Join(home, ".worktime", "snapshot.yaml")
}

// FromCollection builds a snapshot from collected sessions. Failed boots are
// left out, since their events are unknown.
func FromCollection(c session.Collection) Snapshot {
	var snap Snapshot
	for _, s := range c.Sessions {
		b := Boot{ID: s.ID, Start: s.Start, End: s.End}
		for _, at := range s.Suspends {
			b.Events = append(b.Events, Event{At: at, Kind: session.SuspendStart.String()})
		}
		for _, at := range s.Wakes {
			b.Events = append(b.Events, Event{At: at, Kind: session.WakeEnd.String()})
		}
		snap.Boots = append(snap.Boots, b)
	}
	return snap
}

// ReadSnapshot loads a snapshot file. Events with an unknown kind are
// skipped and counted in Malformed.
func ReadSnapshot(path string) (*Snapshot, error) {
	if path == "" {
		path = DefaultSnapshotPath()
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap Snapshot
	if err := yaml.Unmarshal(content, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}

	for i := range snap.Boots {
		kept := snap.Boots[i].Events[:0]
		for _, ev := range snap.Boots[i].Events {
			if _, err := session.ParseEventKind(ev.Kind); err != nil {
				snap.Malformed++
				continue
			}
			kept = append(kept, ev)
		}
		snap.Boots[i].Events = kept
	}
	return &snap, nil
}

// WriteSnapshot writes snap to path, creating the directory if needed.
func WriteSnapshot(snap Snapshot, path string) error {
	if path == "" {
		path = DefaultSnapshotPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	content, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return os.WriteFile(path, content, 0644)
}

// ListBoots returns the last limit boots (0 for all), oldest first.
func (s *Snapshot) ListBoots(_ context.Context, limit int) ([]session.BootRecord, error) {
	var records []session.BootRecord
	for _, b := range s.Boots {
		records = append(records, session.BootRecord{ID: b.ID, Start: b.Start, End: b.End})
	}
	if len(records) == 0 {
		return nil, errors.New("snapshot holds no boots")
	}
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}
	return records, nil
}

// PowerEvents returns the stored events of bootID.
func (s *Snapshot) PowerEvents(_ context.Context, bootID string) ([]session.PowerEvent, error) {
	for _, b := range s.Boots {
		if b.ID != bootID {
			continue
		}
		events := make([]session.PowerEvent, 0, len(b.Events))
		for _, ev := range b.Events {
			kind, err := session.ParseEventKind(ev.Kind)
			if err != nil {
				continue
			}
			events = append(events, session.PowerEvent{At: ev.At, Kind: kind})
		}
		return events, nil
	}
	return nil, fmt.Errorf("%s: %w", bootID, ErrUnknownBoot)
}
