package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"worktime/cli"
	"worktime/tui"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: worktime [command] [flags]\n")
	fmt.Fprintf(os.Stderr, "Commands: report (default), list, export, tui\n")
	cli.PrintDefaults(os.Stderr)
}

func main() {
	args := os.Args[1:]

	if len(args) > 0 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		usage()
		return
	}

	// Handle TUI separately to avoid importing tui in cli package
	if len(args) > 0 && args[0] == "tui" {
		if err := runTUI(args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Handle all other commands through CLI
	if err := cli.RunCLI(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(args []string) error {
	app, err := cli.Prepare("tui", args)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	c, err := app.Collect(context.Background())
	if err != nil {
		return err
	}
	return tui.LaunchTUI(c.Results(), c.Failures, app.Location, app.Cfg.Seconds)
}
