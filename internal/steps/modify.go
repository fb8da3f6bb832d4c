package steps

import (
	"fmt"
	"iter"

	"github.com/san-kum/arrayviz/internal/array"
)

// insertSteps shifts the tail right one slot at a time, then writes value.
// Each shifting step shows the array before its shift.
func insertSteps(input array.Array, value, index int) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		work := input.Clone()
		if !yield(snapshot(work, "Initial array")) {
			return
		}

		n := len(work)
		for i := n; i > index; i-- {
			st := snapshot(work, fmt.Sprintf("Shifting element from index %d to index %d", i-1, i))
			st.Highlights = []int{i - 1, i}
			if !yield(st) {
				return
			}
			if i == len(work) {
				work = append(work, work[i-1])
			} else {
				work[i] = work[i-1]
			}
		}

		work[index] = value
		st := snapshot(work, fmt.Sprintf("Inserted value %d at index %d", value, index))
		st.Highlights = []int{index}
		st.NewElement = intPtr(index)
		yield(st)
	}
}

func updateSteps(input array.Array, value, index int) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		work := input.Clone()
		if !yield(snapshot(work, "Initial array")) {
			return
		}

		old := work[index]
		work[index] = value
		st := snapshot(work, fmt.Sprintf("Updated value at index %d from %d to %d", index, old, value))
		st.Highlights = []int{index}
		st.UpdatedElement = intPtr(index)
		yield(st)
	}
}

// deleteSteps shifts the tail left over index, then drops the last slot.
func deleteSteps(input array.Array, index int) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		work := input.Clone()
		if !yield(snapshot(work, "Initial array")) {
			return
		}

		for i := index; i < len(work)-1; i++ {
			st := snapshot(work, fmt.Sprintf("Shifting element from index %d to index %d", i+1, i))
			st.Highlights = []int{i, i + 1}
			if !yield(st) {
				return
			}
			work[i] = work[i+1]
		}

		work = work[:len(work)-1]
		st := snapshot(work, fmt.Sprintf("Removed element at index %d", index))
		st.RemovedElement = intPtr(index)
		yield(st)
	}
}
