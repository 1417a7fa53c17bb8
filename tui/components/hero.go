package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"worktime/session"
)

// RenderHero renders the header with the aggregate active time.
func RenderHero(sum session.Summary, failures, width int, borderStyle, timerStyle, labelStyle lipgloss.Style, formatDuration func(time.Duration) string) string {
	timer := timerStyle.Render(formatDuration(sum.Total))
	label := labelStyle.Render(fmt.Sprintf("active over %d boots, %s suspended", sum.Boots, formatDuration(sum.Suspended())))
	if failures > 0 {
		label += labelStyle.Render(fmt.Sprintf(", %d unavailable", failures))
	}

	content := timer + "  " + label
	if lipgloss.Width(content) > width-4 {
		content = timer
	}
	return borderStyle.Width(width - 2).Render(content)
}
