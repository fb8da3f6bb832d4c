package steps

import (
	"fmt"
	"iter"

	"github.com/san-kum/arrayviz/internal/array"
)

// linearSearchSteps stops at the first match.
func linearSearchSteps(input array.Array, value int) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		work := input.Clone()
		if !yield(snapshot(work, fmt.Sprintf("Starting linear search for value %d", value))) {
			return
		}

		for i, v := range work {
			op := "!="
			if v == value {
				op = "=="
			}
			st := snapshot(work, fmt.Sprintf("Checking element at index %d: %d %s %d", i, v, op, value))
			st.Highlights = []int{i}
			st.Compare = []int{i}
			if !yield(st) {
				return
			}

			if v == value {
				found := snapshot(work, fmt.Sprintf("Found value %d at index %d!", value, i))
				found.Highlights = []int{i}
				found.Found = []int{i}
				yield(found)
				return
			}
		}

		yield(notFound(work, value))
	}
}

// binarySearchSteps expects input sorted ascending.
func binarySearchSteps(input array.Array, value int) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		work := input.Clone()
		if !yield(snapshot(work, fmt.Sprintf("Starting binary search for value %d in sorted array", value))) {
			return
		}

		left, right := 0, len(work)-1
		for left <= right {
			mid := left + (right-left)/2

			st := snapshot(work, fmt.Sprintf("Checking middle element at index %d: %d", mid, work[mid]))
			st.Highlights = []int{mid}
			st.Compare = []int{mid}
			st.Range = &Range{Low: left, High: right}
			st.Mid = intPtr(mid)
			if !yield(st) {
				return
			}

			switch {
			case work[mid] == value:
				found := snapshot(work, fmt.Sprintf("Found value %d at index %d!", value, mid))
				found.Highlights = []int{mid}
				found.Found = []int{mid}
				yield(found)
				return
			case work[mid] < value:
				left = mid + 1
				half := snapshot(work, fmt.Sprintf("%d < %d, search in right half (indices %d to %d)", work[mid], value, left, right))
				half.Range = &Range{Low: left, High: right}
				if !yield(half) {
					return
				}
			default:
				right = mid - 1
				half := snapshot(work, fmt.Sprintf("%d > %d, search in left half (indices %d to %d)", work[mid], value, left, right))
				half.Range = &Range{Low: left, High: right}
				if !yield(half) {
					return
				}
			}
		}

		yield(notFound(work, value))
	}
}

func notFound(work array.Array, value int) Step {
	return snapshot(work, fmt.Sprintf("Value %d not found in the array", value))
}
