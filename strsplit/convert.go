// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

package strsplit

import (
	"iter"
	"slices"
	"strings"

	"textkit.256lights.llc/pkg/internal/xiter"
	"textkit.256lights.llc/pkg/sets"
)

// Slice collects seq into a slice, keeping order and duplicates.
func Slice(seq iter.Seq[string]) []string {
	return slices.Collect(seq)
}

// Set collects the distinct elements of seq into an unordered set.
func Set(seq iter.Seq[string]) sets.Set[string] {
	return sets.Collect(seq)
}

// SortedSet collects the distinct elements of seq in byte-wise ascending order.
func SortedSet(seq iter.Seq[string]) *sets.Sorted[string] {
	return sets.CollectSorted(seq)
}

// Multiset collects the elements of seq in byte-wise ascending order,
// keeping duplicates.
func Multiset(seq iter.Seq[string]) *sets.Multi[string] {
	return sets.CollectMulti(seq)
}

// Pair returns the first two elements of seq.
// Missing elements are returned as empty strings.
func Pair(seq iter.Seq[string]) (first, second string) {
	n := 0
	for x := range seq {
		switch n {
		case 0:
			first = x
		case 1:
			second = x
		}
		n++
		if n == 2 {
			break
		}
	}
	return first, second
}

// Map treats the elements of seq as alternating keys and values.
// If a key repeats, the last value wins.
// A trailing key without a value maps to the empty string.
func Map(seq iter.Seq[string]) map[string]string {
	m := make(map[string]string)
	for k, v := range xiter.Pairs(seq) {
		m[k] = v
	}
	return m
}

// MultiMap treats the elements of seq as alternating keys and values
// like [Map], but keeps every value for a key in order.
func MultiMap(seq iter.Seq[string]) map[string][]string {
	m := make(map[string][]string)
	for k, v := range xiter.Pairs(seq) {
		m[k] = append(m[k], v)
	}
	return m
}

// Owned returns an iterator that yields copies of the elements of seq,
// so that collected results do not keep the input text alive.
func Owned(seq iter.Seq[string]) iter.Seq[string] {
	return xiter.Map(seq, strings.Clone)
}
