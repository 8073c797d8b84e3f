package sim

import (
	"iter"
	"slices"
)

// Store is an ordered collection of entities. Element 0 is the front.
//
// Removal during traversal goes through Filter, which compacts the backing
// slice in place, so no element is ever visited twice or skipped.
type Store[T any] struct {
	items []T
}

// PushFront inserts v before all existing elements.
func (s *Store[T]) PushFront(v T) {
	s.items = slices.Insert(s.items, 0, v)
}

// Len returns the number of elements.
func (s *Store[T]) Len() int {
	return len(s.items)
}

// At returns element i.
func (s *Store[T]) At(i int) T {
	return s.items[i]
}

// All iterates elements front to back.
func (s *Store[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range s.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Filter visits every element once, front to back, and keeps only those for
// which keep returns true. Kept elements retain their relative order. keep may
// mutate the element it is given, and may call RemoveAt on other stores, but
// must not modify s itself.
func (s *Store[T]) Filter(keep func(T) bool) {
	n := 0
	for _, v := range s.items {
		if keep(v) {
			s.items[n] = v
			n++
		}
	}
	clear(s.items[n:])
	s.items = s.items[:n]
}

// RemoveAt removes element i, preserving the order of the rest.
func (s *Store[T]) RemoveAt(i int) {
	s.items = slices.Delete(s.items, i, i+1)
}
