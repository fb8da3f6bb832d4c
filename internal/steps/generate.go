package steps

import (
	"iter"
	"slices"

	"github.com/san-kum/arrayviz/internal/array"
)

// Generate validates its inputs and returns the full step trace of op over a.
// a is never mutated.
func Generate(op Operation, a array.Array, p Params) (Sequence, error) {
	seq, err := Stream(op, a, p)
	if err != nil {
		return nil, err
	}
	return Sequence(slices.Collect(seq)), nil
}

// Stream is the lazy form of Generate. Every range over the returned sequence
// starts again from a fresh copy of a.
func Stream(op Operation, a array.Array, p Params) (iter.Seq[Step], error) {
	if err := Validate(op, a, p); err != nil {
		return nil, err
	}
	input := a.Clone()
	switch op {
	case OpInsert:
		return insertSteps(input, p.Value, p.Index), nil
	case OpUpdate:
		return updateSteps(input, p.Value, p.Index), nil
	case OpDelete:
		return deleteSteps(input, p.Index), nil
	case OpLinearSearch:
		return linearSearchSteps(input, p.Value), nil
	case OpBinarySearch:
		return binarySearchSteps(input, p.Value), nil
	default:
		return bubbleSortSteps(input), nil
	}
}

// Validate applies the pre-generation checks: a known operation, a non-empty
// array of at most MaxSize elements in [0, MaxValue), an index in [0, len) for
// index operations, and a storable value with room to grow for insert.
// Search targets are not range checked; an absent value is simply not found.
func Validate(op Operation, a array.Array, p Params) error {
	switch {
	case op == OpNone:
		return array.ErrNoOperationSelected
	case op < OpNone || op > OpBubbleSort:
		return ErrUnknownOperation
	}
	if len(a) == 0 {
		return &array.OperationError{Op: op.String(), Wrapped: array.ErrEmptyArray}
	}
	if err := array.Validate(a); err != nil {
		return &array.OperationError{Op: op.String(), Len: len(a), Wrapped: err}
	}
	if op.NeedsIndex() {
		if err := array.CheckIndex(op.String(), p.Index, len(a)); err != nil {
			return err
		}
	}
	switch op {
	case OpInsert:
		if len(a) >= array.MaxSize {
			return &array.OperationError{Op: op.String(), Index: p.Index, Len: len(a), Wrapped: array.ErrInvalidArraySize}
		}
		return array.CheckValue(op.String(), p.Value)
	case OpUpdate:
		return array.CheckValue(op.String(), p.Value)
	}
	return nil
}

// snapshot copies work into a step with no annotations.
func snapshot(work array.Array, desc string) Step {
	return Step{
		Array:       work.Clone(),
		Description: desc,
		Highlights:  []int{},
	}
}
