package array

import (
	"math/rand"
	"slices"
	"sync"
)

// Store holds the current array. It is the single source of truth shared by
// step playback and the animation runner.
type Store struct {
	mu  sync.RWMutex
	arr Array
	rng *rand.Rand
}

func NewStore(rng *rand.Rand) *Store {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Store{rng: rng}
}

// Create replaces the array with size uniform random values in [0, MaxValue).
func (s *Store) Create(size int) (Array, error) {
	if err := CheckSize(size); err != nil {
		return nil, err
	}
	arr := make(Array, size)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range arr {
		arr[i] = s.rng.Intn(MaxValue)
	}
	s.arr = arr
	return arr.Clone(), nil
}

// Set replaces the array wholesale with a copy of a.
func (s *Store) Set(a Array) {
	s.mu.Lock()
	s.arr = a.Clone()
	s.mu.Unlock()
}

// Get returns a copy of the current array.
func (s *Store) Get() Array {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.arr.Clone()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.arr)
}

func (s *Store) Empty() bool { return s.Len() == 0 }

func (s *Store) Reset() {
	s.mu.Lock()
	s.arr = nil
	s.mu.Unlock()
}

// Insert splices value in at index. The index must address an existing element
// and the array must have room for one more.
func (s *Store) Insert(index, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := CheckIndex("insert", index, len(s.arr)); err != nil {
		return err
	}
	if len(s.arr) >= MaxSize {
		return &OperationError{Op: "insert", Index: index, Len: len(s.arr), Wrapped: ErrInvalidArraySize}
	}
	if err := CheckValue("insert", value); err != nil {
		return err
	}
	s.arr = slices.Insert(s.arr, index, value)
	return nil
}

func (s *Store) Update(index, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := CheckIndex("update", index, len(s.arr)); err != nil {
		return err
	}
	if err := CheckValue("update", value); err != nil {
		return err
	}
	s.arr[index] = value
	return nil
}

func (s *Store) Delete(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := CheckIndex("delete", index, len(s.arr)); err != nil {
		return err
	}
	s.arr = slices.Delete(s.arr, index, index+1)
	return nil
}
