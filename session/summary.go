package session

import "time"

// Summary aggregates per-boot results.
type Summary struct {
	Boots   int
	Total   time.Duration
	Span    time.Duration
	Skipped map[SkipKind]int
}

// Summarize sums the totals of independently computed boots. The order of
// results does not affect the outcome.
func Summarize(results []Result) Summary {
	s := Summary{Skipped: make(map[SkipKind]int)}
	for _, r := range results {
		s.Boots++
		s.Total += r.Total
		s.Span += r.Span.Duration()
		for _, sk := range r.Skipped {
			s.Skipped[sk.Kind]++
		}
	}
	return s
}

// Suspended returns the part of the boot spans not counted as active.
func (s Summary) Suspended() time.Duration {
	return s.Span - s.Total
}
