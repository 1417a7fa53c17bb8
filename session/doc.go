// Package session turns a boot's start/end boundary and its logged suspend
// and wake timestamps into non-overlapping active intervals.
//
// The two event streams come from independent log sources and are not
// trusted: wakes may be missing, suspends may be duplicated. Compute pairs
// them positionally when they line up and falls back to Reconcile otherwise.
// Nothing here logs or fails on inconsistent input; discards are returned to
// the caller for reporting.
package session
