package journal

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"worktime/session"
)

// ErrNoBoots is returned when the boot listing holds no usable rows.
var ErrNoBoots = errors.New("no boots listed")

// ParseStats counts what a parser kept and dropped.
type ParseStats struct {
	Parsed    int
	Malformed int
	Unmatched int
}

// Journal reads boots and power events through journalctl.
type Journal struct {
	Runner  Runner
	Binary  string
	Matcher Matcher
	Log     zerolog.Logger
}

// New creates a Journal using binary (DefaultBinary when empty).
func New(binary string, matcher Matcher, log zerolog.Logger) *Journal {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Journal{
		Runner:  ExecRunner{},
		Binary:  binary,
		Matcher: matcher,
		Log:     log,
	}
}

// ListBoots returns the most recent limit boots (0 for all), oldest first.
func (j *Journal) ListBoots(ctx context.Context, limit int) ([]session.BootRecord, error) {
	out, err := j.Runner.Run(ctx, j.Binary, "--list-boots", "--output=json", "--no-pager")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrJournal, err)
	}

	records, stats, err := ParseBootList(out, time.Local)
	if err != nil {
		return nil, err
	}
	if stats.Malformed > 0 {
		j.Log.Warn().Int("malformed", stats.Malformed).Int("parsed", stats.Parsed).Msg("skipped malformed boot list rows")
	}
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}
	return records, nil
}

type jsonBoot struct {
	Index      int    `json:"index"`
	BootID     string `json:"boot_id"`
	FirstEntry int64  `json:"first_entry"`
	LastEntry  int64  `json:"last_entry"`
}

var textBootRow = regexp.MustCompile(`^\s*-?\d+\s+([0-9a-fA-F-]{32,36})\s.*?(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}).*?(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})`)

// ParseBootList parses `journalctl --list-boots` output. JSON output (newer
// systemd) is preferred; anything else is read as the text table with
// timestamps in loc. Rows with a bad id or a non-increasing window are
// counted as malformed and skipped. No usable rows at all is an error.
func ParseBootList(data []byte, loc *time.Location) ([]session.BootRecord, ParseStats, error) {
	trimmed := bytes.TrimSpace(data)
	var (
		records []session.BootRecord
		stats   ParseStats
	)

	if bytes.HasPrefix(trimmed, []byte("[")) {
		var rows []jsonBoot
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, stats, fmt.Errorf("%w: malformed boot list: %w", ErrJournal, err)
		}
		for _, row := range rows {
			rec, ok := bootRecord(row.BootID, session.FromMicros(row.FirstEntry), session.FromMicros(row.LastEntry))
			if !ok {
				stats.Malformed++
				continue
			}
			records = append(records, rec)
		}
	} else {
		scanner := bufio.NewScanner(bytes.NewReader(trimmed))
		for scanner.Scan() {
			line := scanner.Text()
			if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "IDX") {
				continue
			}
			m := textBootRow.FindStringSubmatch(line)
			if m == nil {
				stats.Malformed++
				continue
			}
			start, err1 := time.ParseInLocation(time.DateTime, m[2], loc)
			end, err2 := time.ParseInLocation(time.DateTime, m[3], loc)
			if err1 != nil || err2 != nil {
				stats.Malformed++
				continue
			}
			rec, ok := bootRecord(m[1], start, end)
			if !ok {
				stats.Malformed++
				continue
			}
			records = append(records, rec)
		}
		if err := scanner.Err(); err != nil {
			return nil, stats, fmt.Errorf("%w: reading boot list: %w", ErrJournal, err)
		}
	}

	stats.Parsed = len(records)
	if len(records) == 0 {
		return nil, stats, ErrNoBoots
	}
	return records, stats, nil
}

func bootRecord(id string, start, end time.Time) (session.BootRecord, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return session.BootRecord{}, false
	}
	start = session.Truncate(start)
	end = session.Truncate(end)
	if !start.Before(end) {
		return session.BootRecord{}, false
	}
	return session.BootRecord{
		ID:    strings.ReplaceAll(parsed.String(), "-", ""),
		Start: start,
		End:   end,
	}, true
}
