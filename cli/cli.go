package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"worktime/config"
	"worktime/journal"
	"worktime/logging"
	"worktime/metrics"
	"worktime/session"
	"worktime/storage"
)

// ErrIncomplete is returned when some boots could not be read. Whatever could
// be computed has been printed by then.
var ErrIncomplete = errors.New("some boots could not be read")

// App carries the resolved configuration and collaborators of one run.
type App struct {
	Cfg      *config.Config
	Log      zerolog.Logger
	Out      io.Writer
	Boots    session.BootLister
	Events   session.EventSource
	Location *time.Location
}

// Prepare parses flags for a subcommand, loads configuration and picks the
// data source: a snapshot file when one is configured, the journal otherwise.
func Prepare(name string, args []string) (*App, error) {
	fs := config.NewFlagSet(name)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	cfg, err := config.Load(fs)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	app := &App{
		Cfg:      cfg,
		Log:      log,
		Out:      os.Stdout,
		Location: time.Local,
	}

	if cfg.Input != "" {
		snap, err := storage.ReadSnapshot(cfg.Input)
		if err != nil {
			return nil, err
		}
		if snap.Malformed > 0 {
			log.Warn().Int("malformed", snap.Malformed).Str("file", cfg.Input).Msg("skipped malformed snapshot events")
		}
		app.Boots, app.Events = snap, snap
	} else {
		j := journal.New(cfg.Journalctl, cfg.Matcher(), log)
		app.Boots, app.Events = j, j
	}
	return app, nil
}

// Collect gathers the configured boots and their events.
func (a *App) Collect(ctx context.Context) (session.Collection, error) {
	since, until, err := a.window()
	if err != nil {
		return session.Collection{}, err
	}

	c, err := session.Collect(ctx, a.Boots, a.Events, session.CollectOptions{
		Limit:   a.Cfg.Boots,
		Workers: a.Cfg.Workers,
		Since:   since,
		Until:   until,
		Timeout: a.Cfg.Timeout,
	})
	if err != nil {
		return session.Collection{}, err
	}

	if c.Rejected > 0 {
		a.Log.Debug().Int("events", c.Rejected).Msg("ignored events outside their boot window")
	}
	for _, f := range c.Failures {
		a.Log.Error().Err(f.Err).Str("boot", f.Record.ID).Msg("boot events unavailable")
	}
	return c, nil
}

func (a *App) window() (time.Time, time.Time, error) {
	loc := a.loc()
	since, err := session.ParseWhen(a.Cfg.Since, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --since: %w", err)
	}
	until, err := session.ParseWhen(a.Cfg.Until, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --until: %w", err)
	}
	if len(a.Cfg.Until) == len(time.DateOnly) {
		until = until.AddDate(0, 0, 1)
	}
	if !since.IsZero() && !until.IsZero() && !since.Before(until) {
		return time.Time{}, time.Time{}, fmt.Errorf("--until must be after --since")
	}
	return since, until, nil
}

func (a *App) loc() *time.Location {
	if a.Location == nil {
		return time.Local
	}
	return a.Location
}

func (a *App) reportOptions() ReportOptions {
	return ReportOptions{
		Verbosity: a.Cfg.Verbosity,
		Seconds:   a.Cfg.Seconds,
		Location:  a.loc(),
	}
}

// CommandReport prints active time per boot and in total.
func (a *App) CommandReport(ctx context.Context) error {
	c, err := a.Collect(ctx)
	if err != nil {
		return err
	}

	results := c.Results()
	for _, r := range results {
		logging.Advisories(a.Log, r)
	}
	WriteReport(a.Out, results, c.Failures, a.reportOptions())

	if a.Cfg.MetricsFile != "" {
		e := metrics.NewExporter()
		e.Observe(results, len(c.Failures))
		if err := e.WriteFile(a.Cfg.MetricsFile); err != nil {
			return err
		}
	}

	if len(c.Failures) > 0 {
		return fmt.Errorf("%w: %d of %d", ErrIncomplete, len(c.Failures), len(c.Failures)+len(results))
	}
	return nil
}

// CommandList prints every boot with its suspended stretches.
func (a *App) CommandList(ctx context.Context) error {
	c, err := a.Collect(ctx)
	if err != nil {
		return err
	}

	results := c.Results()
	for _, r := range results {
		logging.Advisories(a.Log, r)
	}
	WriteListing(a.Out, results, c.Failures, a.reportOptions())

	if len(c.Failures) > 0 {
		return fmt.Errorf("%w: %d of %d", ErrIncomplete, len(c.Failures), len(c.Failures)+len(results))
	}
	return nil
}

// CommandExport writes the collected boots to a snapshot file.
func (a *App) CommandExport(ctx context.Context) error {
	c, err := a.Collect(ctx)
	if err != nil {
		return err
	}

	path := a.Cfg.Output
	if path == "" {
		path = storage.DefaultSnapshotPath()
	}
	if err := storage.WriteSnapshot(storage.FromCollection(c), path); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "Exported %d boots to %s\n", len(c.Sessions), path)

	if len(c.Failures) > 0 {
		return fmt.Errorf("%w: %d boots not exported", ErrIncomplete, len(c.Failures))
	}
	return nil
}

// PrintDefaults writes the flag help shared by every command.
func PrintDefaults(w io.Writer) {
	fs := config.NewFlagSet("worktime")
	fs.SetOutput(w)
	fs.PrintDefaults()
}

// RunCLI parses command-line arguments and executes the appropriate command.
// With no command, or a leading flag, the report is printed.
func RunCLI(args []string) error {
	command := "report"
	if len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' {
		command = args[0]
		args = args[1:]
	}

	var run func(*App, context.Context) error
	switch command {
	case "report":
		run = (*App).CommandReport
	case "list":
		run = (*App).CommandList
	case "export":
		run = (*App).CommandExport
	default:
		return fmt.Errorf("unknown command: %s", command)
	}

	app, err := Prepare(command, args)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return run(app, ctx)
}
