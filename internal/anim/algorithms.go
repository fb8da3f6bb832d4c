package anim

import (
	"fmt"

	"github.com/san-kum/arrayviz/internal/steps"
)

// Each tick function checks its completion condition first, then does one
// unit of work on r.run.Work.

func (r *Runner) linearTick() Frame {
	w := r.run.Work
	if r.run.I >= len(w) {
		return Frame{Array: w.Clone(), Done: true, Message: fmt.Sprintf("Value %d not found in the array", r.value)}
	}

	i := r.run.I
	r.run.I++
	if w[i] == r.value {
		return Frame{
			Array:   w.Clone(),
			Found:   []int{i},
			Done:    true,
			Message: fmt.Sprintf("Found value %d at index %d!", r.value, i),
		}
	}
	return Frame{
		Array:   w.Clone(),
		Compare: []int{i},
		Message: fmt.Sprintf("Checking element at index %d: %d != %d", i, w[i], r.value),
	}
}

func (r *Runner) binaryTick() Frame {
	w := r.run.Work
	left, right := r.run.Left, r.run.Right
	if left > right {
		return Frame{Array: w.Clone(), Done: true, Message: fmt.Sprintf("Value %d not found in the array", r.value)}
	}

	mid := left + (right-left)/2
	window := make([]int, 0, right-left+1)
	for i := left; i <= right; i++ {
		window = append(window, i)
	}
	f := Frame{
		Array:      w.Clone(),
		Highlights: window,
		Range:      &steps.Range{Low: left, High: right},
	}

	switch {
	case w[mid] == r.value:
		f.Found = []int{mid}
		f.Done = true
		f.Message = fmt.Sprintf("Found value %d at index %d!", r.value, mid)
	case w[mid] < r.value:
		r.run.Left = mid + 1
		f.Compare = []int{mid}
		f.Message = fmt.Sprintf("%d < %d, search in right half", w[mid], r.value)
	default:
		r.run.Right = mid - 1
		f.Compare = []int{mid}
		f.Message = fmt.Sprintf("%d > %d, search in left half", w[mid], r.value)
	}
	return f
}

// bubbleTick finishes early once a full pass makes no swaps.
func (r *Runner) bubbleTick() Frame {
	w := r.run.Work
	n := len(w)
	done := Frame{Array: w.Clone(), Done: true, Message: "Array sorting completed!"}

	if r.run.I >= n-1 {
		return done
	}
	if r.run.J >= n-r.run.I-1 {
		if !r.run.Swapped {
			return done
		}
		r.run.I++
		r.run.J = 0
		r.run.Swapped = false
		if r.run.I >= n-1 {
			return done
		}
	}

	j := r.run.J
	r.run.J++
	f := Frame{Compare: []int{j, j + 1}}
	if w[j] > w[j+1] {
		w[j], w[j+1] = w[j+1], w[j]
		r.run.Swapped = true
		f.Swap = []int{j, j + 1}
		f.Message = fmt.Sprintf("Swapped %d and %d", w[j+1], w[j])
	} else {
		f.Message = fmt.Sprintf("Compared %d and %d", w[j], w[j+1])
	}
	f.Array = w.Clone()
	return f
}
