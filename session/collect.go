package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// BootLister returns the most recent limit boots (0 for all), oldest first.
type BootLister interface {
	ListBoots(ctx context.Context, limit int) ([]BootRecord, error)
}

// EventSource returns the classified power events logged during one boot.
type EventSource interface {
	PowerEvents(ctx context.Context, bootID string) ([]PowerEvent, error)
}

// CollectOptions controls Collect.
type CollectOptions struct {
	Limit   int
	Workers int
	// Since and Until filter boots by start time, [Since, Until). Zero means unbounded.
	Since   time.Time
	Until   time.Time
	Timeout time.Duration
}

// BootFailure records a boot whose events could not be fetched. Such a boot
// has an unknown active time, which is not the same as zero suspends.
type BootFailure struct {
	Record BootRecord
	Err    error
}

// Collection is a closed batch of populated boot sessions.
type Collection struct {
	Sessions []*BootSession
	Failures []BootFailure
	// Rejected counts events dropped for lying outside their boot window.
	Rejected int
}

// Results computes every session in order.
func (c Collection) Results() []Result {
	results := make([]Result, len(c.Sessions))
	for i, s := range c.Sessions {
		results[i] = s.Compute()
	}
	return results
}

// Collect fetches the boot list and then every boot's events. A boot-list
// failure is returned as an error. Per-boot failures end up in
// Collection.Failures. Event fetches run concurrently, and the output keeps
// the boot list order.
func Collect(ctx context.Context, boots BootLister, events EventSource, opts CollectOptions) (Collection, error) {
	records, err := call(ctx, opts.Timeout, func(ctx context.Context) ([]BootRecord, error) {
		return boots.ListBoots(ctx, opts.Limit)
	})
	if err != nil {
		return Collection{}, fmt.Errorf("failed to list boots: %w", err)
	}
	records = filterRecords(records, opts.Since, opts.Until)

	type slot struct {
		session  *BootSession
		rejected int
		err      error
	}
	slots := make([]slot, len(records))

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for i, rec := range records {
		g.Go(func() error {
			s, err := New(rec)
			if err != nil {
				slots[i].err = err
				return nil
			}
			evs, err := call(ctx, opts.Timeout, func(ctx context.Context) ([]PowerEvent, error) {
				return events.PowerEvents(ctx, rec.ID)
			})
			if err != nil {
				slots[i].err = fmt.Errorf("failed to read events for boot %s: %w", rec.ID, err)
				return nil
			}
			for _, ev := range evs {
				if err := s.Add(ev); err != nil {
					if errors.Is(err, ErrOutsideBoot) {
						slots[i].rejected++
						continue
					}
					slots[i].err = err
					return nil
				}
			}
			slots[i].session = s
			return nil
		})
	}
	_ = g.Wait()

	var c Collection
	for i, sl := range slots {
		c.Rejected += sl.rejected
		if sl.err != nil {
			c.Failures = append(c.Failures, BootFailure{Record: records[i], Err: sl.err})
			continue
		}
		c.Sessions = append(c.Sessions, sl.session)
	}
	return c, nil
}

func call[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return fn(ctx)
}

func filterRecords(records []BootRecord, since, until time.Time) []BootRecord {
	if since.IsZero() && until.IsZero() {
		return records
	}
	var out []BootRecord
	for _, r := range records {
		if !since.IsZero() && r.Start.Before(since) {
			continue
		}
		if !until.IsZero() && !r.Start.Before(until) {
			continue
		}
		out = append(out, r)
	}
	return out
}
