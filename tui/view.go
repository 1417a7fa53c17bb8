package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"worktime/tui/components"
)

// renderMainView renders the header, the boot list and the selected boot.
func renderMainView(m Model) string {
	width := m.width
	height := m.height
	if width < 80 {
		width = 80
	}
	if height < 24 {
		height = 24
	}

	hero := components.RenderHero(m.summary, m.failed, width, BorderStyle, HeroTimerStyle, HeroLabelStyle, m.format)
	heroHeight := lipgloss.Height(hero)
	footerHeight := 1
	mainHeight := height - heroHeight - footerHeight
	if mainHeight < 5 {
		mainHeight = 5
	}

	leftWidth := int(float64(width) * 0.45)
	rightWidth := width - leftWidth - 1

	items := make([]components.BootItem, len(m.rows))
	for i, r := range m.rows {
		items[i] = components.BootItem{
			Label:    r.start().In(m.loc).Format("2006-01-02 15:04"),
			Duration: r.result.Total,
			Failed:   r.failure != nil,
		}
	}
	list := components.RenderBootList(items, m.cursor, leftWidth, mainHeight, SelectedStyle, DurationStyle, FailedStyle, BoxStyle, m.format)
	detail := renderDetail(m, rightWidth, mainHeight)

	content := lipgloss.JoinHorizontal(lipgloss.Top, list, " ", detail)
	return lipgloss.JoinVertical(lipgloss.Left, hero, content, renderFooter(width))
}

// renderDetail renders the timeline, active intervals and discards of the selected boot.
func renderDetail(m Model, width, height int) string {
	if len(m.rows) == 0 {
		return BoxStyle.Width(width).Height(height).Render("")
	}
	r := m.rows[m.cursor]
	if r.failure != nil {
		lines := []string{
			TitleStyle.Render("Boot " + r.failure.Record.ID),
			"",
			FailedStyle.Render("Events unavailable:"),
			FailedStyle.Render(r.failure.Err.Error()),
		}
		return BoxStyle.Width(width).Height(height).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	}

	res := r.result
	clock := func(t time.Time) string { return t.In(m.loc).Format("01-02 15:04:05") }

	lines := []string{
		TitleStyle.Render("Boot " + res.ID),
		DetailStyle.Render(fmt.Sprintf("%s -> %s", clock(res.Span.Start), clock(res.Span.End))),
		"",
		components.RenderTimeline(res, width-2, ActiveBarStyle, SleepBarStyle),
		"",
		fmt.Sprintf("Active %s of %s", m.format(res.Total), m.format(res.Span.Duration())),
	}

	maxLines := height - 2
	for _, iv := range res.Intervals {
		if len(lines) >= maxLines {
			break
		}
		lines = append(lines, DetailStyle.Render(fmt.Sprintf("  Work: %s -> %s  %s", clock(iv.Start), clock(iv.End), m.format(iv.Duration()))))
	}
	for _, sk := range res.Skipped {
		if len(lines) >= maxLines {
			break
		}
		lines = append(lines, AdvisoryStyle.Render(fmt.Sprintf("  %s at %s", sk.Kind, clock(sk.At))))
	}

	return BoxStyle.Width(width).Height(height).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderFooter renders the footer with help text.
func renderFooter(width int) string {
	helpLine := "[j/k] Move  [g/G] First/Last  [q] Quit"
	return FooterStyle.Width(width).Render(helpLine)
}
