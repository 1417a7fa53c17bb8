package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worktime/session"
)

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(nil, "loud")
	assert.Error(t, err)
}

func TestAdvisoriesOneLinePerDiscard(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "warn")
	require.NoError(t, err)

	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	s, err := session.New(session.BootRecord{ID: "b1", Start: start, End: start.Add(10 * time.Hour)})
	require.NoError(t, err)
	require.NoError(t, s.Add(session.PowerEvent{At: start.Add(2 * time.Hour), Kind: session.SuspendStart}))
	require.NoError(t, s.Add(session.PowerEvent{At: start.Add(2 * time.Hour), Kind: session.SuspendStart}))
	require.NoError(t, s.Add(session.PowerEvent{At: start.Add(3 * time.Hour), Kind: session.WakeEnd}))

	Advisories(log, s.Compute())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "dropped end with no open start")
	assert.Contains(t, lines[0], "b1")
}

func TestAdvisoriesSilencedByLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "error")
	require.NoError(t, err)

	Advisories(log, session.Result{ID: "b", Skipped: []session.Skipped{{Kind: session.TrailingEnd}}})
	assert.Empty(t, buf.String())
}
