package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	header  lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	muted   lipgloss.Style
	err     lipgloss.Style
	running lipgloss.Style
	paused  lipgloss.Style
	panel   lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		header:  lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:   lipgloss.NewStyle().Foreground(t.Secondary),
		muted:   lipgloss.NewStyle().Foreground(t.Muted),
		err:     lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		running: lipgloss.NewStyle().Foreground(t.Found).Bold(true),
		paused:  lipgloss.NewStyle().Foreground(t.Highlight).Bold(true),
		panel:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Muted).Padding(1, 2),
	}
}

// ProgressBar renders done/total as a filled bar of the given width.
func ProgressBar(done, total, width int, t Theme) string {
	if total <= 0 || width <= 0 {
		return strings.Repeat("░", max(width, 0))
	}
	filled := min(width, max(0, done*width/total))
	bar := lipgloss.NewStyle().Foreground(t.Found).Render(strings.Repeat("█", filled))
	return bar + lipgloss.NewStyle().Foreground(t.Muted).Render(strings.Repeat("░", width-filled))
}

// Sparkline renders values as one block character per value, scaled between
// their min and max.
func Sparkline(values []float64, t Theme) string {
	if len(values) == 0 {
		return ""
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / rng * float64(len(chars)-1))
		b.WriteRune(chars[idx])
	}
	return lipgloss.NewStyle().Foreground(t.Bar).Render(b.String())
}
