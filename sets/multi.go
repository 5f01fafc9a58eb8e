// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

package sets

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
)

// Multi is a sorted multiset: a sorted list that retains duplicate items.
// Equal items are kept in the order they were added.
// The zero value is an empty multiset.
// nil is treated like an empty multiset, but any attempts to add to it will panic.
type Multi[T cmp.Ordered] struct {
	elems []T
}

// NewMulti returns a new multiset with the given elements.
func NewMulti[T cmp.Ordered](elem ...T) *Multi[T] {
	s := new(Multi[T])
	s.Add(elem...)
	return s
}

// CollectMulti returns a new multiset that contains every element of the given iterator.
func CollectMulti[T cmp.Ordered](seq iter.Seq[T]) *Multi[T] {
	s := new(Multi[T])
	s.AddSeq(seq)
	return s
}

// Add adds the arguments to the multiset.
func (s *Multi[T]) Add(elem ...T) {
	s.AddSeq(slices.Values(elem))
}

// AddSeq adds the values from seq to the multiset.
func (s *Multi[T]) AddSeq(seq iter.Seq[T]) {
	for x := range seq {
		s.elems = slices.Insert(s.elems, s.upperBound(x), x)
	}
}

// upperBound returns the index of the first element greater than x.
func (s *Multi[T]) upperBound(x T) int {
	i, _ := slices.BinarySearchFunc(s.elems, x, func(elem, target T) int {
		if cmp.Compare(elem, target) <= 0 {
			return -1
		}
		return 1
	})
	return i
}

// Count returns the number of times x occurs in the multiset.
func (s *Multi[T]) Count(x T) int {
	if s == nil {
		return 0
	}
	lo, _ := slices.BinarySearch(s.elems, x)
	return s.upperBound(x) - lo
}

// Has reports whether the multiset contains x at least once.
func (s *Multi[T]) Has(x T) bool {
	return s.Count(x) > 0
}

// Len returns the number of elements in the multiset, counting duplicates.
func (s *Multi[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.elems)
}

// At returns the i'th element in ascending order of the multiset.
func (s *Multi[T]) At(i int) T {
	return s.elems[i]
}

// Values returns an iterator of the elements of s in ascending order.
func (s *Multi[T]) Values() iter.Seq[T] {
	if s == nil {
		return func(yield func(T) bool) {}
	}
	return slices.Values(s.elems)
}

// Format implements [fmt.Formatter]
// by formatting its elements according to the printer state and verb
// surrounded by braces.
func (s *Multi[T]) Format(f fmt.State, verb rune) {
	format(f, verb, s.Values())
}
