package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"worktime/session"
)

// New returns a console logger writing to w at the named level.
func New(w io.Writer, level string) (zerolog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	lvl := zerolog.WarnLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}

	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// Advisories writes one warning per reconciliation discard of r.
func Advisories(log zerolog.Logger, r session.Result) {
	for _, sk := range r.Skipped {
		log.Warn().
			Str("boot", r.ID).
			Str("kind", sk.Kind.String()).
			Time("at", sk.At).
			Msg(advisoryMessage(sk.Kind))
	}
}

func advisoryMessage(k session.SkipKind) string {
	switch k {
	case session.SkippedStart:
		return "dropped start superseded by a later start"
	case session.SkippedEnd:
		return "dropped end with no open start"
	case session.TrailingStart:
		return "dropped unmatched trailing start"
	case session.TrailingEnd:
		return "dropped unmatched trailing end"
	default:
		return "dropped event"
	}
}
