package array

import (
	"slices"
	"strconv"
	"strings"
)

const (
	MinSize  = 1
	MaxSize  = 20
	MaxValue = 100
)

// Array is an ordered sequence of small integers.
type Array []int

func (a Array) Clone() Array {
	c := make(Array, len(a))
	copy(c, a)
	return c
}

func (a Array) Equal(other Array) bool {
	return slices.Equal(a, other)
}

func (a Array) IsSorted() bool {
	return slices.IsSorted(a)
}

// Sorted returns an ascending copy; a is left untouched.
func (a Array) Sorted() Array {
	c := a.Clone()
	slices.Sort(c)
	return c
}

func (a Array) String() string {
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Parse reads a comma or space separated list of integers.
func Parse(s string) (Array, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '[' || r == ']'
	})
	out := make(Array, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
