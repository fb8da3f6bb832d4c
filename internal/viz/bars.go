package viz

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/arrayviz/internal/anim"
	"github.com/san-kum/arrayviz/internal/array"
	"github.com/san-kum/arrayviz/internal/steps"
)

const (
	barRows  = 10
	colWidth = 4
)

type role int

const (
	rolePlain role = iota
	roleRange
	roleHighlight
	roleCompare
	roleSwap
	roleFound
)

// marks are the annotations shown over the bars, from either a step or a frame.
type marks struct {
	highlights, compare, swap, found []int
	rng                              *steps.Range
	changed                          *int
}

func stepMarks(st steps.Step) marks {
	m := marks{highlights: st.Highlights, compare: st.Compare, swap: st.Swap, found: st.Found, rng: st.Range}
	switch {
	case st.NewElement != nil:
		m.changed = st.NewElement
	case st.UpdatedElement != nil:
		m.changed = st.UpdatedElement
	}
	return m
}

func frameMarks(f anim.Frame) marks {
	return marks{highlights: f.Highlights, compare: f.Compare, swap: f.Swap, found: f.Found, rng: f.Range}
}

func (mk marks) roleOf(i int) role {
	switch {
	case slices.Contains(mk.found, i):
		return roleFound
	case slices.Contains(mk.swap, i):
		return roleSwap
	case slices.Contains(mk.compare, i):
		return roleCompare
	case slices.Contains(mk.highlights, i), mk.changed != nil && *mk.changed == i:
		return roleHighlight
	case mk.rng != nil && i >= mk.rng.Low && i <= mk.rng.High:
		return roleRange
	}
	return rolePlain
}

func (t Theme) roleColor(r role) lipgloss.Color {
	switch r {
	case roleFound:
		return t.Found
	case roleSwap:
		return t.Swap
	case roleCompare:
		return t.Compare
	case roleHighlight:
		return t.Highlight
	case roleRange:
		return t.Secondary
	}
	return t.Bar
}

func barHeight(v int) int {
	return 1 + v*(barRows-1)/(array.MaxValue-1)
}

// renderBars draws a as vertical bars with value and index rows beneath.
func renderBars(a array.Array, mk marks, t Theme) string {
	if len(a) == 0 {
		return lipgloss.NewStyle().Foreground(t.Muted).Render("(no array: press n to create one)")
	}

	cell := lipgloss.NewStyle().Width(colWidth)
	colStyles := make([]lipgloss.Style, len(a))
	for i := range a {
		colStyles[i] = cell.Foreground(t.roleColor(mk.roleOf(i)))
	}

	var b strings.Builder
	for row := barRows; row >= 1; row-- {
		for i, v := range a {
			glyph := "  "
			if barHeight(v) >= row {
				glyph = "██"
			}
			b.WriteString(colStyles[i].Render(" " + glyph))
		}
		b.WriteByte('\n')
	}
	for i, v := range a {
		b.WriteString(colStyles[i].Render(fmt.Sprintf("%3d", v)))
	}
	b.WriteByte('\n')
	idx := cell.Foreground(t.Muted)
	for i := range a {
		b.WriteString(idx.Render(fmt.Sprintf("%3d", i)))
	}
	return b.String()
}
