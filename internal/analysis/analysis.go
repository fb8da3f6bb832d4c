package analysis

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/arrayviz/internal/array"
	"github.com/san-kum/arrayviz/internal/metrics"
	"github.com/san-kum/arrayviz/internal/steps"
)

func Inversions(a array.Array) int {
	n := 0
	for i := range a {
		for j := i + 1; j < len(a); j++ {
			if a[i] > a[j] {
				n++
			}
		}
	}
	return n
}

func Profile(seq steps.Sequence) []float64 {
	out := make([]float64, len(seq))
	for i, st := range seq {
		out[i] = float64(Inversions(st.Array))
	}
	return out
}

type Stats struct {
	Steps       int `json:"steps"`
	Comparisons int `json:"comparisons"`
	Swaps       int `json:"swaps"`
	Shifts      int `json:"shifts"`
	// Found is the index of the first found step, or -1.
	Found int `json:"found"`
}

func Summarize(seq steps.Sequence) Stats {
	m := metrics.Observe(seq, metrics.Default()...)
	return Stats{
		Steps:       len(seq),
		Comparisons: int(m["comparisons"]),
		Swaps:       int(m["swaps"]),
		Shifts:      int(m["shifts"]),
		Found:       int(m["found_index"]),
	}
}

// Metrics flattens s into the map stored with a recorded run.
func (s Stats) Metrics() map[string]float64 {
	return map[string]float64{
		"steps":       float64(s.Steps),
		"comparisons": float64(s.Comparisons),
		"swaps":       float64(s.Swaps),
		"shifts":      float64(s.Shifts),
		"found_index": float64(s.Found),
	}
}

func (s Stats) String() string {
	found := "none"
	if s.Found >= 0 {
		found = fmt.Sprintf("index %d", s.Found)
	}
	return fmt.Sprintf("steps=%d comparisons=%d swaps=%d shifts=%d found=%s",
		s.Steps, s.Comparisons, s.Swaps, s.Shifts, found)
}

// Plot charts the inversion profile of seq. It returns "" for an empty trace.
func Plot(seq steps.Sequence, opts ...asciigraph.Option) string {
	data := Profile(seq)
	if len(data) == 0 {
		return ""
	}
	if len(data) == 1 {
		data = append(data, data[0])
	}
	base := []asciigraph.Option{
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Caption("Inversions per step"),
	}
	return asciigraph.Plot(data, append(base, opts...)...)
}
