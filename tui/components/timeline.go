package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"worktime/session"
)

// TimelineCells maps a boot onto width cells. A cell is active when most of
// the time it covers falls inside an active interval.
func TimelineCells(r session.Result, width int) []bool {
	if width <= 0 {
		return nil
	}
	cells := make([]bool, width)
	span := r.Span.Duration()
	if span <= 0 {
		return cells
	}

	step := span / time.Duration(width)
	for i := range cells {
		cellStart := r.Span.Start.Add(time.Duration(i) * span / time.Duration(width))
		cellEnd := cellStart.Add(step)
		var covered time.Duration
		for _, iv := range r.Intervals {
			lo, hi := iv.Start, iv.End
			if cellStart.After(lo) {
				lo = cellStart
			}
			if cellEnd.Before(hi) {
				hi = cellEnd
			}
			if hi.After(lo) {
				covered += hi.Sub(lo)
			}
		}
		cells[i] = step > 0 && covered*2 >= step
	}
	return cells
}

// RenderTimeline renders a bar across the boot span: active time in
// activeStyle, suspended time in sleepStyle.
func RenderTimeline(r session.Result, width int, activeStyle, sleepStyle lipgloss.Style) string {
	barWidth := width - 4
	if barWidth < 10 {
		barWidth = 10
	}

	var b strings.Builder
	cells := TimelineCells(r, barWidth)
	for i := 0; i < len(cells); {
		j := i
		for j < len(cells) && cells[j] == cells[i] {
			j++
		}
		if cells[i] {
			b.WriteString(activeStyle.Render(strings.Repeat("█", j-i)))
		} else {
			b.WriteString(sleepStyle.Render(strings.Repeat("░", j-i)))
		}
		i = j
	}
	return b.String()
}
