package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"worktime/journal"
)

// ErrConflictingVerbosity is returned when both verbose and quiet are set.
var ErrConflictingVerbosity = errors.New("choose only one of --verbose or --quiet")

// EnvPrefix prefixes every environment override, e.g. WORKTIME_BOOTS.
const EnvPrefix = "WORKTIME"

// Verbosity selects how much of the per-boot report is printed.
type Verbosity int

const (
	// Normal prints each boot with its duration and the total.
	Normal Verbosity = iota
	// Verbose adds the active intervals of each boot.
	Verbose
	// Quiet prints only the total.
	Quiet
)

// Config holds the resolved settings for one run.
type Config struct {
	Boots       int
	Verbosity   Verbosity
	Seconds     bool
	Since       string
	Until       string
	Journalctl  string
	Timeout     time.Duration
	Workers     int
	Input       string
	Output      string
	MetricsFile string
	LogLevel    string
	Suspend     []string
	Wake        []string
}

// Matcher returns the phrase matcher for the configured phrase sets.
func (c *Config) Matcher() journal.Matcher {
	return journal.Matcher{Suspend: c.Suspend, Wake: c.Wake}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("boots", 0)
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("seconds", false)
	v.SetDefault("since", "")
	v.SetDefault("until", "")
	v.SetDefault("journalctl", journal.DefaultBinary)
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("workers", 4)
	v.SetDefault("input", "")
	v.SetDefault("output", "")
	v.SetDefault("metrics_file", "")
	v.SetDefault("log_level", "warn")
	v.SetDefault("suspend_phrases", journal.DefaultSuspendPhrases)
	v.SetDefault("wake_phrases", journal.DefaultWakePhrases)
}

// NewFlagSet declares the command-line flags for a subcommand.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.IntP("boot", "b", 0, "number of most recent boots to process (0 for all)")
	fs.BoolP("verbose", "v", false, "print every active interval")
	fs.BoolP("quiet", "q", false, "print only the total")
	fs.BoolP("seconds", "s", false, "print durations as whole seconds")
	fs.String("since", "", "only boots starting on or after this date (YYYY-MM-DD)")
	fs.String("until", "", "only boots starting before the end of this date (YYYY-MM-DD)")
	fs.StringP("input", "i", "", "read boots from a snapshot file instead of the journal")
	fs.StringP("output", "o", "", "snapshot file to write (export)")
	fs.String("metrics-file", "", "write Prometheus textfile metrics to this path")
	fs.String("config", "", "config file (default $XDG_CONFIG_HOME/worktime/config.yaml)")
	fs.String("log-level", "", "log level: trace, debug, info, warn, error")
	return fs
}

// Load resolves settings from defaults, the config file, WORKTIME_* env and
// the already parsed flags, in increasing priority.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if fs != nil {
		binds := map[string]string{
			"boots":        "boot",
			"verbose":      "verbose",
			"quiet":        "quiet",
			"seconds":      "seconds",
			"since":        "since",
			"until":        "until",
			"input":        "input",
			"output":       "output",
			"metrics_file": "metrics-file",
			"log_level":    "log-level",
		}
		for key, flag := range binds {
			if f := fs.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
				}
			}
		}
	}

	configFile := ""
	if fs != nil {
		if f := fs.Lookup("config"); f != nil {
			configFile = f.Value.String()
		}
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, dir := range configDirs() {
			v.AddConfigPath(dir)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Boots:       v.GetInt("boots"),
		Seconds:     v.GetBool("seconds"),
		Since:       v.GetString("since"),
		Until:       v.GetString("until"),
		Journalctl:  v.GetString("journalctl"),
		Timeout:     v.GetDuration("timeout"),
		Workers:     v.GetInt("workers"),
		Input:       v.GetString("input"),
		Output:      v.GetString("output"),
		MetricsFile: v.GetString("metrics_file"),
		LogLevel:    v.GetString("log_level"),
		Suspend:     v.GetStringSlice("suspend_phrases"),
		Wake:        v.GetStringSlice("wake_phrases"),
	}

	verbose, quiet := v.GetBool("verbose"), v.GetBool("quiet")
	switch {
	case verbose && quiet:
		return nil, ErrConflictingVerbosity
	case verbose:
		cfg.Verbosity = Verbose
	case quiet:
		cfg.Verbosity = Quiet
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Boots < 0 {
		return fmt.Errorf("boot count must not be negative, got %d", c.Boots)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if len(c.Suspend) == 0 || len(c.Wake) == 0 {
		return errors.New("suspend_phrases and wake_phrases must not be empty")
	}
	return nil
}

func configDirs() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "worktime"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "worktime"))
	}
	return dirs
}
