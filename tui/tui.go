package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"worktime/cli"
	"worktime/session"
)

// row is either a computed boot or one whose events could not be read.
type row struct {
	result  session.Result
	failure *session.BootFailure
}

func (r row) start() time.Time {
	if r.failure != nil {
		return r.failure.Record.Start
	}
	return r.result.Span.Start
}

// Model is the bubbletea model for browsing boots.
type Model struct {
	rows    []row
	summary session.Summary
	failed  int
	cursor  int
	width   int
	height  int
	loc     *time.Location
	format  func(time.Duration) string
}

// NewModel builds the model from computed results and failed boots, ordered by boot start.
func NewModel(results []session.Result, failures []session.BootFailure, loc *time.Location, seconds bool) Model {
	if loc == nil {
		loc = time.Local
	}
	m := Model{
		summary: session.Summarize(results),
		failed:  len(failures),
		loc:     loc,
		format:  cli.FormatDuration,
		width:   80,
		height:  24,
	}
	if seconds {
		m.format = func(d time.Duration) string { return cli.FormatSeconds(d) + "s" }
	}

	for _, r := range results {
		m.rows = append(m.rows, row{result: r})
	}
	for i := range failures {
		f := failures[i]
		pos := len(m.rows)
		for j, existing := range m.rows {
			if f.Record.Start.Before(existing.start()) {
				pos = j
				break
			}
		}
		m.rows = append(m.rows, row{})
		copy(m.rows[pos+1:], m.rows[pos:])
		m.rows[pos] = row{failure: &f}
	}
	if len(m.rows) > 0 {
		m.cursor = len(m.rows) - 1
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "g", "home":
			m.cursor = 0
		case "G", "end":
			if len(m.rows) > 0 {
				m.cursor = len(m.rows) - 1
			}
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	return renderMainView(m)
}

// LaunchTUI runs the boot browser until the user quits.
func LaunchTUI(results []session.Result, failures []session.BootFailure, loc *time.Location, seconds bool) error {
	m := NewModel(results, failures, loc, seconds)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
