// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

/*
Package strsplit splits strings into segments lazily.

A [Splitter] combines a text, a [Delimiter] strategy that locates separators,
and an optional [Predicate] that filters the candidate segments.
Segments are computed on demand while iterating,
either with an explicit [Iterator] cursor from [Splitter.Begin]
or with range-over-func through [Splitter.All] and [Splitter.Spans].

	for field := range strsplit.Split("a,b,c", ",").All() {
		fmt.Println(field)
	}

Segments are substrings of the input and share its memory.
Wrap an iterator with [Owned] to copy each segment.
Results can be materialized into a slice, a set, a pair, or a map
with [Slice], [Set], [SortedSet], [Multiset], [Pair], [Map], and [MultiMap].

All matching is performed on bytes.
A text that contains k delimiter matches
yields k+1 candidate segments,
so an empty text yields a single empty segment.
A null text (see [NewNullable]) yields no segments.
*/
package strsplit
