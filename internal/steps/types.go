package steps

import (
	"slices"

	"github.com/san-kum/arrayviz/internal/array"
)

// Range is the active [Low, High] window of a binary search.
type Range struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

func (r Range) Size() int {
	if r.High < r.Low {
		return 0
	}
	return r.High - r.Low + 1
}

// Step is one snapshot of an operation's execution. Steps never share their
// Array with the generator's working copy or with each other.
type Step struct {
	Array          array.Array `json:"array"`
	Description    string      `json:"description"`
	Highlights     []int       `json:"highlights"`
	Compare        []int       `json:"compare,omitempty"`
	Swap           []int       `json:"swap,omitempty"`
	Found          []int       `json:"found,omitempty"`
	Range          *Range      `json:"range,omitempty"`
	Mid            *int        `json:"mid,omitempty"`
	NewElement     *int        `json:"newElement,omitempty"`
	UpdatedElement *int        `json:"updatedElement,omitempty"`
	RemovedElement *int        `json:"removedElement,omitempty"`
}

// IsInitial reports whether s carries no annotations.
func (s Step) IsInitial() bool {
	return len(s.Highlights) == 0 && len(s.Compare) == 0 && len(s.Swap) == 0 &&
		len(s.Found) == 0 && s.Range == nil && s.Mid == nil &&
		s.NewElement == nil && s.UpdatedElement == nil && s.RemovedElement == nil
}

// Clone returns a deep copy of s; nothing in the copy aliases s.
func (s Step) Clone() Step {
	c := s
	c.Array = s.Array.Clone()
	c.Highlights = slices.Clone(s.Highlights)
	c.Compare = slices.Clone(s.Compare)
	c.Swap = slices.Clone(s.Swap)
	c.Found = slices.Clone(s.Found)
	if s.Range != nil {
		r := *s.Range
		c.Range = &r
	}
	c.Mid = clonePtr(s.Mid)
	c.NewElement = clonePtr(s.NewElement)
	c.UpdatedElement = clonePtr(s.UpdatedElement)
	c.RemovedElement = clonePtr(s.RemovedElement)
	return c
}

func clonePtr(p *int) *int {
	if p == nil {
		return nil
	}
	return intPtr(*p)
}

// Sequence is the full ordered trace of one operation.
type Sequence []Step

func (s Sequence) Last() Step {
	if len(s) == 0 {
		return Step{}
	}
	return s[len(s)-1]
}

func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	for i, st := range s {
		out[i] = st.Clone()
	}
	return out
}

// Arrays returns the array snapshot of every step.
func (s Sequence) Arrays() []array.Array {
	out := make([]array.Array, len(s))
	for i, st := range s {
		out[i] = st.Array.Clone()
	}
	return out
}

// Params carries the optional operation arguments.
type Params struct {
	Value int `json:"value"`
	Index int `json:"index"`
}

func intPtr(v int) *int { return &v }
