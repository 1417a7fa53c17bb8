package cli

import (
	"fmt"
	"strconv"
	"time"
)

// FormatDuration formats a duration as "H:MM:SS", prefixed with
// "N day(s), " once it reaches 24 hours.
func FormatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	totalSeconds := int64(d / time.Second)
	days := totalSeconds / 86400
	rest := totalSeconds % 86400
	hours := rest / 3600
	minutes := (rest % 3600) / 60
	seconds := rest % 60

	clock := fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	switch days {
	case 0:
		return sign + clock
	case 1:
		return sign + "1 day, " + clock
	default:
		return fmt.Sprintf("%s%d days, %s", sign, days, clock)
	}
}

// FormatSeconds formats a duration as a whole number of seconds.
func FormatSeconds(d time.Duration) string {
	return strconv.FormatInt(int64(d/time.Second), 10)
}

func formatTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(time.DateTime)
}
