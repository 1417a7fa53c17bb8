package session

import (
	"fmt"
	"time"
)

// Truncate drops sub-second precision. Two events within the same second
// compare equal afterwards. It works on the instant, so the zone offset of an
// ambiguous wall-clock hour is preserved.
func Truncate(t time.Time) time.Time {
	return t.Truncate(time.Second)
}

// FromMicros converts a journal realtime stamp (microseconds since the epoch)
// to a second-precision local time.
func FromMicros(usec int64) time.Time {
	return Truncate(time.UnixMicro(usec).Local())
}

// ParseDate parses a date string in YYYY-MM-DD format in the given location.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}

// ParseWhen accepts either a YYYY-MM-DD date or a full "YYYY-MM-DD HH:MM:SS"
// timestamp, both in loc. An empty value yields the zero time.
func ParseWhen(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation(time.DateTime, value, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return Truncate(t.In(loc)), nil
	}
	return ParseDate(value, loc)
}
