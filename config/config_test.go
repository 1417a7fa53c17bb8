package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worktime/journal"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	return dir
}

func load(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	fs := NewFlagSet("test")
	require.NoError(t, fs.Parse(args))
	return Load(fs)
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := load(t)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Boots)
	assert.Equal(t, Normal, cfg.Verbosity)
	assert.Equal(t, journal.DefaultBinary, cfg.Journalctl)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, journal.DefaultMatcher(), cfg.Matcher())
}

func TestLoadFlags(t *testing.T) {
	isolate(t)

	cfg, err := load(t, "-b", "3", "-q", "--seconds", "--since", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Boots)
	assert.Equal(t, Quiet, cfg.Verbosity)
	assert.True(t, cfg.Seconds)
	assert.Equal(t, "2024-01-01", cfg.Since)
}

func TestLoadRejectsVerboseAndQuiet(t *testing.T) {
	isolate(t)

	_, err := load(t, "-v", "-q")
	assert.ErrorIs(t, err, ErrConflictingVerbosity)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	cfgDir := filepath.Join(dir, "xdg", "worktime")
	require.NoError(t, os.MkdirAll(cfgDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(`
boots: 5
workers: 2
timeout: 5s
wake_phrases:
  - "PM: Finishing wakeup."
`), 0644))
	t.Setenv("WORKTIME_BOOTS", "7")

	cfg, err := load(t)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Boots)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"PM: Finishing wakeup."}, cfg.Wake)

	cfg, err = load(t, "-b", "1")
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Boots)
}

func TestLoadExplicitConfigMissing(t *testing.T) {
	dir := isolate(t)

	_, err := load(t, "--config", filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadValidation(t *testing.T) {
	isolate(t)

	_, err := load(t, "-b", "-2")
	assert.Error(t, err)

	t.Setenv("WORKTIME_WORKERS", "0")
	_, err = load(t)
	assert.Error(t, err)
}
