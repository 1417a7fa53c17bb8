package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"worktime/config"
	"worktime/session"
)

// ReportOptions controls how results are printed. It is independent of the
// computation.
type ReportOptions struct {
	Verbosity config.Verbosity
	Seconds   bool
	Location  *time.Location
}

func (o ReportOptions) duration(d time.Duration) string {
	if o.Seconds {
		return FormatSeconds(d)
	}
	return FormatDuration(d)
}

func (o ReportOptions) loc() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

type styles struct {
	boot    lipgloss.Style
	detail  lipgloss.Style
	total   lipgloss.Style
	failure lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		boot:    r.NewStyle().Bold(true),
		detail:  r.NewStyle().Faint(true),
		total:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#00AF5F")),
		failure: r.NewStyle().Foreground(lipgloss.Color("#D70000")),
	}
}

// WriteReport prints per-boot durations followed by the aggregate. Boots
// whose events could not be read are listed as unavailable and left out of
// the total.
func WriteReport(w io.Writer, results []session.Result, failures []session.BootFailure, opts ReportOptions) session.Summary {
	st := newStyles(w)
	loc := opts.loc()
	sum := session.Summarize(results)

	if opts.Verbosity == config.Quiet {
		fmt.Fprintln(w, opts.duration(sum.Total))
		return sum
	}

	for _, r := range results {
		fmt.Fprintln(w, st.boot.Render(fmt.Sprintf("Boot: %s -> %s", formatTime(r.Span.Start, loc), formatTime(r.Span.End, loc))))
		if opts.Verbosity == config.Verbose {
			for _, iv := range r.Intervals {
				fmt.Fprintln(w, st.detail.Render(fmt.Sprintf("  Work: %s -> %s", formatTime(iv.Start, loc), formatTime(iv.End, loc))))
			}
		}
		fmt.Fprintln(w, opts.duration(r.Total))
		fmt.Fprintln(w)
	}

	for _, f := range failures {
		fmt.Fprintln(w, st.boot.Render(fmt.Sprintf("Boot: %s -> %s", formatTime(f.Record.Start, loc), formatTime(f.Record.End, loc))))
		fmt.Fprintln(w, st.failure.Render("  unavailable: "+f.Err.Error()))
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, st.total.Render("Sum together: "+opts.duration(sum.Total)))
	return sum
}

// WriteListing prints every boot with the suspended gaps between its active intervals.
func WriteListing(w io.Writer, results []session.Result, failures []session.BootFailure, opts ReportOptions) {
	st := newStyles(w)
	loc := opts.loc()

	for _, r := range results {
		fmt.Fprintln(w, st.boot.Render(fmt.Sprintf("Boot: %s -> %s", formatTime(r.Span.Start, loc), formatTime(r.Span.End, loc))))
		for _, gap := range r.Gaps() {
			line := fmt.Sprintf("  Sleep: %s -> %s", formatTime(gap.Start, loc), formatTime(gap.End, loc))
			if opts.Verbosity == config.Verbose {
				line += " (" + opts.duration(gap.Duration()) + ")"
			}
			fmt.Fprintln(w, st.detail.Render(line))
		}
		fmt.Fprintln(w)
	}
	for _, f := range failures {
		fmt.Fprintln(w, st.boot.Render(fmt.Sprintf("Boot: %s -> %s", formatTime(f.Record.Start, loc), formatTime(f.Record.End, loc))))
		fmt.Fprintln(w, st.failure.Render("  unavailable: "+f.Err.Error()))
		fmt.Fprintln(w)
	}
}
