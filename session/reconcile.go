package session

import (
	"fmt"
	"time"
)

// SkipKind says why a timestamp was left out of the reconciled intervals.
type SkipKind int

const (
	// SkippedStart is a start superseded by a later start before any end.
	SkippedStart SkipKind = iota
	// SkippedEnd is an end with no open start before it.
	SkippedEnd
	// TrailingStart is a start left over after every end was consumed.
	TrailingStart
	// TrailingEnd is an end left over after every start was consumed.
	TrailingEnd
)

func (k SkipKind) String() string {
	switch k {
	case SkippedStart:
		return "skipped-start"
	case SkippedEnd:
		return "skipped-end"
	case TrailingStart:
		return "trailing-start"
	case TrailingEnd:
		return "trailing-end"
	default:
		return fmt.Sprintf("SkipKind(%d)", int(k))
	}
}

// Skipped is one advisory discard made during reconciliation.
type Skipped struct {
	Kind SkipKind
	At   time.Time
}

// Reconciliation holds matched pairs and the discards made to get them.
type Reconciliation struct {
	Intervals []Interval
	Skipped   []Skipped
}

// Reconcile pairs ascending interval starts (ups) with ascending interval
// ends (downs). A start followed by another start that is still earlier than
// the next end is dropped; an end that is not after the current start is
// dropped. Equal timestamps count as the end having happened first, so an
// empty interval is never produced. Leftovers once either side runs out are
// dropped too. Every discard is recorded in Skipped.
func Reconcile(ups, downs []time.Time) Reconciliation {
	var rec Reconciliation
	i, j := 0, 0
	for i < len(ups) && j < len(downs) {
		if ups[i].Before(downs[j]) {
			if i+1 < len(ups) && ups[i+1].Before(downs[j]) {
				rec.Skipped = append(rec.Skipped, Skipped{Kind: SkippedStart, At: ups[i]})
				i++
				continue
			}
			rec.Intervals = append(rec.Intervals, Interval{Start: ups[i], End: downs[j]})
			i++
			j++
			continue
		}
		rec.Skipped = append(rec.Skipped, Skipped{Kind: SkippedEnd, At: downs[j]})
		j++
	}
	for ; i < len(ups); i++ {
		rec.Skipped = append(rec.Skipped, Skipped{Kind: TrailingStart, At: ups[i]})
	}
	for ; j < len(downs); j++ {
		rec.Skipped = append(rec.Skipped, Skipped{Kind: TrailingEnd, At: downs[j]})
	}
	return rec
}
