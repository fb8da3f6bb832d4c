package array

import (
	"errors"
	"fmt"
)

// Validation errors for array operations. All of them are detected before any
// state is touched.
var (
	// ErrInvalidArraySize indicates a requested size outside [MinSize, MaxSize].
	ErrInvalidArraySize = errors.New("array: size must be between 1 and 20")

	// ErrEmptyArray indicates an operation that needs at least one element.
	ErrEmptyArray = errors.New("array: please create an array first")

	// ErrIndexOutOfBounds indicates an index outside [0, len).
	ErrIndexOutOfBounds = errors.New("array: index out of bounds")

	// ErrNoOperationSelected indicates a dispatch without an operation.
	ErrNoOperationSelected = errors.New("array: please select an operation")

	// ErrValueOutOfRange indicates an element outside [0, MaxValue).
	ErrValueOutOfRange = errors.New("array: value must be between 0 and 99")
)

// OperationError wraps a validation error with the operation context.
type OperationError struct {
	Op      string
	Index   int
	Len     int
	Wrapped error
}

func (e *OperationError) Error() string {
	if errors.Is(e.Wrapped, ErrIndexOutOfBounds) {
		return fmt.Sprintf("%s: index %d not in [0, %d): %v", e.Op, e.Index, e.Len, e.Wrapped)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Wrapped)
}

func (e *OperationError) Unwrap() error {
	return e.Wrapped
}

// CheckIndex reports whether index addresses an element of an array of length n.
func CheckIndex(op string, index, n int) error {
	if n == 0 {
		return &OperationError{Op: op, Index: index, Len: n, Wrapped: ErrEmptyArray}
	}
	if index < 0 || index >= n {
		return &OperationError{Op: op, Index: index, Len: n, Wrapped: ErrIndexOutOfBounds}
	}
	return nil
}

// CheckSize reports whether size is a valid length for a new array.
func CheckSize(size int) error {
	if size < MinSize || size > MaxSize {
		return fmt.Errorf("create %d: %w", size, ErrInvalidArraySize)
	}
	return nil
}

// CheckValue reports whether v may be stored in an array.
func CheckValue(op string, v int) error {
	if v < 0 || v >= MaxValue {
		return fmt.Errorf("%s %d: %w", op, v, ErrValueOutOfRange)
	}
	return nil
}

// Validate checks an array coming from outside the store: its length must be
// in [MinSize, MaxSize] and every element in [0, MaxValue).
func Validate(a Array) error {
	if len(a) < MinSize || len(a) > MaxSize {
		return fmt.Errorf("%d elements: %w", len(a), ErrInvalidArraySize)
	}
	for i, v := range a {
		if v < 0 || v >= MaxValue {
			return fmt.Errorf("element %d is %d: %w", i, v, ErrValueOutOfRange)
		}
	}
	return nil
}
