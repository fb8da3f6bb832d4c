package steps

import (
	"fmt"
	"iter"

	"github.com/san-kum/arrayviz/internal/array"
)

// bubbleSortSteps runs every pass in full; there is no early exit, so exactly
// n(n-1)/2 comparing steps are emitted.
func bubbleSortSteps(input array.Array) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		work := input.Clone()
		if !yield(snapshot(work, "Starting bubble sort")) {
			return
		}

		n := len(work)
		for i := 0; i < n-1; i++ {
			if !yield(snapshot(work, fmt.Sprintf("Pass %d", i+1))) {
				return
			}

			for j := 0; j < n-i-1; j++ {
				cmp := snapshot(work, fmt.Sprintf("Comparing elements at indices %d and %d: %d and %d", j, j+1, work[j], work[j+1]))
				cmp.Highlights = []int{j, j + 1}
				cmp.Compare = []int{j, j + 1}
				if !yield(cmp) {
					return
				}

				if work[j] > work[j+1] {
					work[j], work[j+1] = work[j+1], work[j]
					sw := snapshot(work, fmt.Sprintf("Swapping elements: %d and %d", work[j+1], work[j]))
					sw.Highlights = []int{j, j + 1}
					sw.Swap = []int{j, j + 1}
					if !yield(sw) {
						return
					}
				}
			}
		}

		yield(snapshot(work, "Array is now sorted!"))
	}
}
