// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

// Package sets provides the set containers that split results can be collected into.
package sets

import (
	"fmt"
	"iter"
	"maps"
	"strings"
)

// Set is an unordered set with O(1) lookup and insertion.
// The zero value is an empty set, but adding to it will panic.
type Set[T comparable] map[T]struct{}

// New returns a new set that contains the arguments passed to it.
func New[T comparable](elem ...T) Set[T] {
	s := make(Set[T], len(elem))
	s.Add(elem...)
	return s
}

// Collect returns a new set that contains the elements of the given iterator.
// Duplicate elements are stored once.
func Collect[T comparable](seq iter.Seq[T]) Set[T] {
	s := make(Set[T])
	s.AddSeq(seq)
	return s
}

// Add adds the arguments to the set.
func (s Set[T]) Add(elem ...T) {
	for _, x := range elem {
		s[x] = struct{}{}
	}
}

// AddSeq adds the values from seq to the set.
func (s Set[T]) AddSeq(seq iter.Seq[T]) {
	for x := range seq {
		s[x] = struct{}{}
	}
}

// Has reports whether the set contains x.
func (s Set[T]) Has(x T) bool {
	_, present := s[x]
	return present
}

// Len returns the number of elements in the set.
func (s Set[T]) Len() int {
	return len(s)
}

// All returns an iterator of the elements of s in an unspecified order.
func (s Set[T]) All() iter.Seq[T] {
	return maps.Keys(s)
}

// Delete removes x from the set if present.
func (s Set[T]) Delete(x T) {
	delete(s, x)
}

// Format implements [fmt.Formatter]
// by formatting its elements according to the printer state and verb
// surrounded by braces.
func (s Set[T]) Format(f fmt.State, verb rune) {
	format(f, verb, s.All())
}

// format writes the elements of seq as "{a b c}",
// applying the flags, width, and precision of f to each element.
func format[T any](f fmt.State, verb rune, seq iter.Seq[T]) {
	elemFormat := fmt.FormatString(f, verb)
	sb := new(strings.Builder)
	sb.WriteString("{")
	first := true
	for x := range seq {
		if !first {
			sb.WriteString(" ")
		}
		first = false
		fmt.Fprintf(sb, elemFormat, x)
	}
	sb.WriteString("}")
	f.Write([]byte(sb.String()))
}
