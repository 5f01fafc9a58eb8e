// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

// Package xiter provides various functions useful with iterators of any type.
package xiter

import "iter"

// Chain2 returns an [iter.Seq2] that is the logical concatenation of the provided iterators.
func Chain2[K, V any](iterators ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, it := range iterators {
			for k, v := range it {
				if !yield(k, v) {
					return
				}
			}
		}
	}
}

// Map returns an iterator that yields f(x) for each x in seq.
func Map[T, U any](seq iter.Seq[T], f func(T) U) iter.Seq[U] {
	return func(yield func(U) bool) {
		for x := range seq {
			if !yield(f(x)) {
				return
			}
		}
	}
}

// Pairs groups consecutive elements of seq into pairs.
// If seq yields an odd number of elements,
// the last element is paired with the zero value of T.
func Pairs[T any](seq iter.Seq[T]) iter.Seq2[T, T] {
	return func(yield func(T, T) bool) {
		var first T
		odd := false
		for x := range seq {
			if !odd {
				first = x
				odd = true
				continue
			}
			odd = false
			if !yield(first, x) {
				return
			}
		}
		if odd {
			var zero T
			yield(first, zero)
		}
	}
}
