package steps

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownOperation = errors.New("steps: unknown operation")

type Operation int

const (
	OpNone Operation = iota
	OpInsert
	OpUpdate
	OpDelete
	OpLinearSearch
	OpBinarySearch
	OpBubbleSort
)

var opNames = map[Operation]string{
	OpNone:         "none",
	OpInsert:       "insert",
	OpUpdate:       "update",
	OpDelete:       "delete",
	OpLinearSearch: "linearSearch",
	OpBinarySearch: "binarySearch",
	OpBubbleSort:   "bubbleSort",
}

func (o Operation) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Operation(%d)", int(o))
}

// IsModify reports whether o edits the array by index (insert, update, delete).
func (o Operation) IsModify() bool {
	return o == OpInsert || o == OpUpdate || o == OpDelete
}

// IsAnimated reports whether o can run in direct mode as a timed animation.
func (o Operation) IsAnimated() bool {
	return o == OpLinearSearch || o == OpBinarySearch || o == OpBubbleSort
}

// NeedsIndex reports whether o takes an index parameter.
func (o Operation) NeedsIndex() bool { return o.IsModify() }

// NeedsValue reports whether o takes a value parameter.
func (o Operation) NeedsValue() bool {
	return o != OpNone && o != OpDelete && o != OpBubbleSort
}

func (o Operation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Operation) UnmarshalText(b []byte) error {
	op, err := ParseOperation(string(b))
	if err != nil {
		return err
	}
	*o = op
	return nil
}

// Registry maps operation names and aliases to operations.
type Registry struct {
	ops map[string]Operation
}

func NewRegistry() *Registry {
	r := &Registry{ops: make(map[string]Operation)}

	r.ops["insert"] = OpInsert
	r.ops["update"] = OpUpdate
	r.ops["delete"] = OpDelete
	r.ops["linear"] = OpLinearSearch
	r.ops["linearsearch"] = OpLinearSearch
	r.ops["binary"] = OpBinarySearch
	r.ops["binarysearch"] = OpBinarySearch
	r.ops["bubble"] = OpBubbleSort
	r.ops["bubblesort"] = OpBubbleSort
	r.ops["sort"] = OpBubbleSort

	return r
}

// Get resolves name case-insensitively. An empty name yields OpNone.
func (r *Registry) Get(name string) (Operation, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("-", "", "_", "").Replace(key)
	if key == "" || key == "none" {
		return OpNone, nil
	}
	op, ok := r.ops[key]
	if !ok {
		return OpNone, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
	}
	return op, nil
}

// List returns the canonical operation names in a stable order.
func (r *Registry) List() []string {
	seen := make(map[Operation]bool)
	names := make([]string, 0, len(opNames))
	for _, op := range r.ops {
		if !seen[op] {
			seen[op] = true
			names = append(names, op.String())
		}
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

func ParseOperation(name string) (Operation, error) {
	return defaultRegistry.Get(name)
}

func ListOperations() []string {
	return defaultRegistry.List()
}
