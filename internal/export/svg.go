// Package export renders step traces as standalone SVG documents.
package export

import (
	"fmt"
	"slices"
	"strings"

	"github.com/san-kum/arrayviz/internal/array"
	"github.com/san-kum/arrayviz/internal/steps"
)

const svgStyle = `<style>
rect.bar{fill:#1e90ff}
rect.range{fill:#6c7a89}
rect.highlight{fill:#ffd700}
rect.compare{fill:#ff69b4}
rect.swap{fill:#ff4500}
rect.found{fill:#32cd32}
text{fill:#e0e0e0;font:12px monospace;text-anchor:middle}
</style>
`

// barClass picks the CSS class of bar i. Found wins over swap, swap over
// compare, compare over highlight, highlight over the search window.
func barClass(st steps.Step, i int) string {
	switch {
	case slices.Contains(st.Found, i):
		return "found"
	case slices.Contains(st.Swap, i):
		return "swap"
	case slices.Contains(st.Compare, i):
		return "compare"
	case slices.Contains(st.Highlights, i),
		st.NewElement != nil && *st.NewElement == i,
		st.UpdatedElement != nil && *st.UpdatedElement == i:
		return "highlight"
	case st.Range != nil && i >= st.Range.Low && i <= st.Range.High:
		return "range"
	}
	return "bar"
}

// StepToSVG draws st as a bar chart with each value and index labelled.
func StepToSVG(st steps.Step, width, height int) string {
	n := len(st.Array)
	if n == 0 || width <= 0 || height <= 0 {
		return ""
	}

	const labelH = 36.0
	slot := float64(width) / float64(n)
	barW := slot * 0.8
	plotH := float64(height) - labelH

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
`, width, height, width, height))
	sb.WriteString(svgStyle)
	sb.WriteString(`<rect width="100%" height="100%" fill="#0a0a0a"/>
`)
	if st.Description != "" {
		sb.WriteString(fmt.Sprintf(`<title>%s</title>
`, escape(st.Description)))
	}

	for i, v := range st.Array {
		h := plotH * float64(min(max(v, 0), array.MaxValue-1)+1) / float64(array.MaxValue)
		x := float64(i)*slot + (slot-barW)/2
		y := plotH - h
		sb.WriteString(fmt.Sprintf(`<rect class="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>
`, barClass(st, i), x, y, barW, h))
		cx := float64(i)*slot + slot/2
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f">%d</text>
<text x="%.1f" y="%.1f">%d</text>
`, cx, plotH+14, v, cx, plotH+30, i))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// ProfileToSVG draws a per-step series, such as the inversion profile, as a
// polyline.
func ProfileToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = min(minY, v)
		maxY = max(maxY, v)
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	stepX := float64(width) / float64(len(values)-1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range values {
		x := float64(i) * stepX
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return xmlEscaper.Replace(s) }
