package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worktime/session"
)

const sample = `boots:
  - id: aaaa
    start: 2024-01-15T00:00:00Z
    end: 2024-01-15T10:00:00Z
    events:
      - at: 2024-01-15T02:00:00Z
        kind: suspend
      - at: 2024-01-15T02:00:00Z
        kind: suspend
      - at: 2024-01-15T03:00:00Z
        kind: wake
      - at: 2024-01-15T04:00:00Z
        kind: reboot
  - id: bbbb
    start: 2024-01-16T00:00:00Z
    end: 2024-01-16T10:00:00Z
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))
	return path
}

func TestReadSnapshotSkipsUnknownKinds(t *testing.T) {
	snap, err := ReadSnapshot(writeSample(t))
	require.NoError(t, err)

	require.Len(t, snap.Boots, 2)
	assert.Len(t, snap.Boots[0].Events, 3)
	assert.Equal(t, 1, snap.Malformed)
}

func TestSnapshotServesCollect(t *testing.T) {
	snap, err := ReadSnapshot(writeSample(t))
	require.NoError(t, err)

	c, err := session.Collect(context.Background(), snap, snap, session.CollectOptions{Workers: 2})
	require.NoError(t, err)
	results := c.Results()
	require.Len(t, results, 2)
	assert.Equal(t, 9*time.Hour, results[0].Total)
	assert.Equal(t, 10*time.Hour, results[1].Total)
}

func TestSnapshotLimitAndUnknownBoot(t *testing.T) {
	snap, err := ReadSnapshot(writeSample(t))
	require.NoError(t, err)

	records, err := snap.ListBoots(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "bbbb", records[0].ID)

	_, err = snap.PowerEvents(context.Background(), "cccc")
	assert.ErrorIs(t, err, ErrUnknownBoot)
}

func TestWriteSnapshotFromCollection(t *testing.T) {
	s, err := session.New(session.BootRecord{
		ID:    "cccc",
		Start: time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 2, 1, 16, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NoError(t, s.Add(session.PowerEvent{At: time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC), Kind: session.SuspendStart}))
	require.NoError(t, s.Add(session.PowerEvent{At: time.Date(2024, 2, 1, 13, 0, 0, 0, time.UTC), Kind: session.WakeEnd}))

	path := filepath.Join(t.TempDir(), "nested", "out.yaml")
	require.NoError(t, WriteSnapshot(FromCollection(session.Collection{Sessions: []*session.BootSession{s}}), path))

	back, err := ReadSnapshot(path)
	require.NoError(t, err)
	require.Len(t, back.Boots, 1)

	c, err := session.Collect(context.Background(), back, back, session.CollectOptions{})
	require.NoError(t, err)
	assert.Equal(t, 7*time.Hour, c.Results()[0].Total)
}

func TestReadSnapshotMissingFile(t *testing.T) {
	_, err := ReadSnapshot(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
