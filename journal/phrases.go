package journal

import (
	"strings"

	"worktime/session"
)

// DefaultSuspendPhrases are the kernel messages logged on entry into sleep states.
var DefaultSuspendPhrases = []string{
	"PM: suspend entry",
	"PM: hibernation entry",
}

// DefaultWakePhrases are the kernel messages logged by ACPI on return from S3 and S4.
var DefaultWakePhrases = []string{
	"Waking up from system sleep state S3",
	"Waking up from system sleep state S4",
}

// Matcher classifies free-text journal messages by substring.
type Matcher struct {
	Suspend []string
	Wake    []string
}

// DefaultMatcher uses the built-in phrase sets.
func DefaultMatcher() Matcher {
	return Matcher{Suspend: DefaultSuspendPhrases, Wake: DefaultWakePhrases}
}

// Classify returns the event kind for msg, or false if it matches neither set.
// Suspend phrases are checked first.
func (m Matcher) Classify(msg string) (session.EventKind, bool) {
	for _, p := range m.Suspend {
		if p != "" && strings.Contains(msg, p) {
			return session.SuspendStart, true
		}
	}
	for _, p := range m.Wake {
		if p != "" && strings.Contains(msg, p) {
			return session.WakeEnd, true
		}
	}
	return 0, false
}
