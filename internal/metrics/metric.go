package metrics

import (
	"strings"

	"github.com/san-kum/arrayviz/internal/steps"
)

// Metric accumulates a value over the steps of one trace.
type Metric interface {
	Name() string
	Observe(st steps.Step)
	Value() float64
	Reset()
}

// Counter counts the steps matching a predicate.
type Counter struct {
	name  string
	match func(steps.Step) bool
	n     int
}

func NewCounter(name string, match func(steps.Step) bool) *Counter {
	return &Counter{name: name, match: match}
}

func NewComparisons() *Counter {
	return NewCounter("comparisons", func(st steps.Step) bool { return len(st.Compare) > 0 })
}

func NewSwaps() *Counter {
	return NewCounter("swaps", func(st steps.Step) bool { return len(st.Swap) > 0 })
}

func NewShifts() *Counter {
	return NewCounter("shifts", func(st steps.Step) bool { return strings.HasPrefix(st.Description, "Shifting") })
}

func (c *Counter) Name() string { return c.name }

func (c *Counter) Observe(st steps.Step) {
	if c.match(st) {
		c.n++
	}
}

func (c *Counter) Value() float64 { return float64(c.n) }

func (c *Counter) Reset() { c.n = 0 }

// FoundIndex records the first index marked found, or -1.
type FoundIndex struct {
	index int
}

func NewFoundIndex() *FoundIndex { return &FoundIndex{index: -1} }

func (f *FoundIndex) Name() string { return "found_index" }

func (f *FoundIndex) Observe(st steps.Step) {
	if f.index < 0 && len(st.Found) > 0 {
		f.index = st.Found[0]
	}
}

func (f *FoundIndex) Value() float64 { return float64(f.index) }

func (f *FoundIndex) Reset() { f.index = -1 }

func Default() []Metric {
	return []Metric{NewComparisons(), NewSwaps(), NewShifts(), NewFoundIndex()}
}

// Observe feeds every step of seq to each metric and returns the values by name.
func Observe(seq steps.Sequence, ms ...Metric) map[string]float64 {
	for _, st := range seq {
		for _, m := range ms {
			m.Observe(st)
		}
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
