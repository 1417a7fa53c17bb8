package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// BootItem is one row of the boot list.
type BootItem struct {
	Label    string
	Duration time.Duration
	Failed   bool
}

// RenderBootList renders the boot list with the selected row highlighted.
// Rows scroll so the cursor stays visible.
func RenderBootList(items []BootItem, cursor, width, height int, selectedStyle, durationStyle, failedStyle, boxStyle lipgloss.Style, formatDuration func(time.Duration) string) string {
	if len(items) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render("No boots found."))
	}

	maxLines := height - 2
	if maxLines < 1 {
		maxLines = 1
	}
	first := 0
	if cursor >= maxLines {
		first = cursor - maxLines + 1
	}

	var lines []string
	for i := first; i < len(items) && i < first+maxLines; i++ {
		item := items[i]
		value := durationStyle.Render(formatDuration(item.Duration))
		if item.Failed {
			value = failedStyle.Render("unavailable")
		}

		prefix := "  "
		if i == cursor {
			prefix = "> "
		}
		dots := strings.Repeat(".", max(0, width-len(prefix)-len(item.Label)-lipgloss.Width(value)-6))
		line := prefix + item.Label + " " + dots + " " + value
		if i == cursor {
			line = selectedStyle.Render(line)
		}
		lines = append(lines, line)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return boxStyle.Width(width).Height(height).Render(content)
}
