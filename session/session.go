package session

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrOutsideBoot is returned when an event does not fall strictly inside a boot window.
var ErrOutsideBoot = errors.New("event outside boot window")

// EventKind tags a power transition.
type EventKind int

const (
	// SuspendStart marks entry into sleep or hibernation.
	SuspendStart EventKind = iota
	// WakeEnd marks the return from sleep or hibernation.
	WakeEnd
)

func (k EventKind) String() string {
	switch k {
	case SuspendStart:
		return "suspend"
	case WakeEnd:
		return "wake"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// ParseEventKind is the inverse of EventKind.String.
func ParseEventKind(s string) (EventKind, error) {
	switch s {
	case "suspend":
		return SuspendStart, nil
	case "wake":
		return WakeEnd, nil
	default:
		return 0, fmt.Errorf("unknown event kind %q", s)
	}
}

// PowerEvent is one classified journal entry.
type PowerEvent struct {
	At   time.Time
	Kind EventKind
}

// BootRecord is one row of the boot list.
type BootRecord struct {
	ID    string
	Start time.Time
	End   time.Time
}

// Interval is a half-open span of wall-clock time.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration returns the length of the interval.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// BootSession holds one boot's boundaries and the power events logged during it.
// Suspends and wakes are kept in arrival order and sorted on Compute.
type BootSession struct {
	ID       string
	Start    time.Time
	End      time.Time
	Suspends []time.Time
	Wakes    []time.Time
}

// New creates a session from a boot-list record. Boundaries are truncated to whole seconds.
func New(rec BootRecord) (*BootSession, error) {
	start := Truncate(rec.Start)
	end := Truncate(rec.End)
	if !start.Before(end) {
		return nil, fmt.Errorf("boot %s: start %s is not before end %s", rec.ID, start.Format(time.DateTime), end.Format(time.DateTime))
	}
	return &BootSession{
		ID:    rec.ID,
		Start: start,
		End:   end,
	}, nil
}

// Add appends a power event. Events that do not lie strictly within
// (Start, End) after truncation are rejected with ErrOutsideBoot.
func (b *BootSession) Add(ev PowerEvent) error {
	at := Truncate(ev.At)
	if !at.After(b.Start) || !at.Before(b.End) {
		return fmt.Errorf("%s at %s for boot %s: %w", ev.Kind, at.Format(time.DateTime), b.ID, ErrOutsideBoot)
	}
	switch ev.Kind {
	case SuspendStart:
		b.Suspends = append(b.Suspends, at)
	case WakeEnd:
		b.Wakes = append(b.Wakes, at)
	default:
		return fmt.Errorf("boot %s: unknown event kind %d", b.ID, int(ev.Kind))
	}
	return nil
}

// Span returns the full boot window.
func (b *BootSession) Span() Interval {
	return Interval{Start: b.Start, End: b.End}
}

// Result is the outcome of computing one boot's active time.
type Result struct {
	ID        string
	Span      Interval
	Intervals []Interval
	Skipped   []Skipped
	Total     time.Duration
}

// Gaps returns the suspended stretches between consecutive active intervals.
func (r Result) Gaps() []Interval {
	var gaps []Interval
	for i := 1; i < len(r.Intervals); i++ {
		gaps = append(gaps, Interval{Start: r.Intervals[i-1].End, End: r.Intervals[i].Start})
	}
	return gaps
}

// Compute sorts the event lists, pairs them into active intervals and sums
// their lengths. It never fails: inconsistent input is resolved by the
// reconciler and reported in Result.Skipped.
func (b *BootSession) Compute() Result {
	suspends := sortedCopy(b.Suspends)
	wakes := sortedCopy(b.Wakes)

	ups := append([]time.Time{b.Start}, wakes...)
	downs := append(suspends, b.End)

	var rec Reconciliation
	if len(ups) == len(downs) && wellOrdered(ups, downs) {
		rec.Intervals = make([]Interval, len(ups))
		for i := range ups {
			rec.Intervals[i] = Interval{Start: ups[i], End: downs[i]}
		}
	} else {
		rec = Reconcile(ups, downs)
	}

	var total time.Duration
	for _, iv := range rec.Intervals {
		total += iv.Duration()
	}

	return Result{
		ID:        b.ID,
		Span:      b.Span(),
		Intervals: rec.Intervals,
		Skipped:   rec.Skipped,
		Total:     total,
	}
}

// TotalActiveDuration is shorthand for Compute().Total.
func (b *BootSession) TotalActiveDuration() time.Duration {
	return b.Compute().Total
}

func sortedCopy(ts []time.Time) []time.Time {
	out := make([]time.Time, len(ts))
	copy(out, ts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Before(out[j])
	})
	return out
}

// wellOrdered reports whether positional pairing yields strictly increasing,
// non-overlapping intervals.
func wellOrdered(ups, downs []time.Time) bool {
	for i := range ups {
		if !ups[i].Before(downs[i]) {
			return false
		}
		if i > 0 && ups[i].Before(downs[i-1]) {
			return false
		}
	}
	return true
}
