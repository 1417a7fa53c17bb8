package journal

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"worktime/session"
)

// PowerEvents returns the suspend and wake events logged by the kernel during bootID.
func (j *Journal) PowerEvents(ctx context.Context, bootID string) ([]session.PowerEvent, error) {
	out, err := j.Runner.Run(ctx, j.Binary, "--boot="+bootID, "--dmesg", "--output=json", "--no-pager")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrJournal, err)
	}

	log := j.Log.With().Str("boot", bootID).Logger()
	events, stats, err := ParseEvents(out, j.Matcher, log)
	if err != nil {
		return nil, err
	}
	if stats.Malformed > 0 {
		log.Warn().Int("malformed", stats.Malformed).Msg("skipped malformed journal entries")
	}
	log.Debug().
		Int("events", stats.Parsed).
		Int("unmatched", stats.Unmatched).
		Msg("read power events")
	return events, nil
}

type jsonEntry struct {
	Realtime string          `json:"__REALTIME_TIMESTAMP"`
	Message  json.RawMessage `json:"MESSAGE"`
}

// ParseEvents reads journalctl JSON output, one entry per line, and keeps the
// entries whose message matches m. Entries without a usable timestamp or
// message are counted as malformed. Messages matching neither phrase set are
// passed to log at trace level.
func ParseEvents(data []byte, m Matcher, log zerolog.Logger) ([]session.PowerEvent, ParseStats, error) {
	var (
		events []session.PowerEvent
		stats  ParseStats
	)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var entry jsonEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			stats.Malformed++
			continue
		}
		usec, err := strconv.ParseInt(entry.Realtime, 10, 64)
		if err != nil {
			stats.Malformed++
			continue
		}
		msg, ok := decodeMessage(entry.Message)
		if !ok {
			stats.Malformed++
			continue
		}

		kind, ok := m.Classify(msg)
		if !ok {
			stats.Unmatched++
			log.Trace().Str("message", msg).Msg("unmatched journal entry")
			continue
		}
		events = append(events, session.PowerEvent{At: session.FromMicros(usec), Kind: kind})
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("%w: reading events: %w", ErrJournal, err)
	}

	stats.Parsed = len(events)
	return events, stats, nil
}

// decodeMessage handles both encodings journalctl uses for MESSAGE: a JSON
// string, or an array of byte values when the payload is not valid UTF-8.
func decodeMessage(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	var b []int
	if err := json.Unmarshal(raw, &b); err != nil {
		return "", false
	}
	buf := make([]byte, 0, len(b))
	for _, v := range b {
		if v < 0 || v > 255 {
			return "", false
		}
		buf = append(buf, byte(v))
	}
	return string(buf), true
}
