// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

package strsplit

import (
	"iter"

	"textkit.256lights.llc/pkg"
)

// A Splitter is a lazily evaluated view of the segments of a text.
// Nothing is computed until the segments are iterated,
// and each iteration scans the text from the start.
// Segments are substrings of the original text and share its memory.
//
// Splitter is a small value that is cheap to copy
// and safe to iterate from multiple goroutines.
type Splitter struct {
	text      textkit.Nullable[string]
	delimiter Delimiter
	predicate Predicate
}

// New returns a [Splitter] that splits text by d,
// yielding only the segments accepted by p.
// If p is nil, then every segment is yielded.
// New panics if d is nil.
func New(text string, d Delimiter, p Predicate) Splitter {
	return NewNullable(textkit.NonNull(text), d, p)
}

// NewNullable returns a [Splitter] like [New].
// If text is null, the Splitter yields no segments,
// whereas an empty text yields a single empty segment.
func NewNullable(text textkit.Nullable[string], d Delimiter, p Predicate) Splitter {
	if d == nil {
		panic("strsplit: nil delimiter")
	}
	return Splitter{
		text:      text,
		delimiter: d,
		predicate: p,
	}
}

// Split returns a [Splitter] that splits text around each occurrence of sep
// and yields every segment.
func Split(text, sep string) Splitter {
	return New(text, ByString(sep), nil)
}

// Text returns the text being split.
func (s Splitter) Text() textkit.Nullable[string] {
	return s.text
}

// Delimiter returns the splitter's delimiter.
func (s Splitter) Delimiter() Delimiter {
	return s.delimiter
}

// Begin returns a cursor positioned at the first accepted segment.
func (s Splitter) Begin() Iterator {
	if !s.text.Valid {
		return Iterator{}
	}
	it := Iterator{
		text:      s.text.X,
		predicate: s.predicate,
		state:     statePositioned,
	}
	it.delimiter, it.limit = unwrapLimit(s.delimiter)
	it.advance()
	return it
}

// All returns an iterator over the accepted segments.
func (s Splitter) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for it := s.Begin(); !it.Done(); it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// Spans returns an iterator over the positions of the accepted segments
// within the text.
func (s Splitter) Spans() iter.Seq[Span] {
	return func(yield func(Span) bool) {
		for it := s.Begin(); !it.Done(); it.Next() {
			if !yield(it.Span()) {
				return
			}
		}
	}
}

// Slice returns the accepted segments in order.
func (s Splitter) Slice() []string {
	return Slice(s.All())
}

// Pair returns the first two accepted segments.
// See [Pair] for details.
func (s Splitter) Pair() (first, second string) {
	return Pair(s.All())
}

// Map treats the accepted segments as alternating keys and values.
// See [Map] for details.
func (s Splitter) Map() map[string]string {
	return Map(s.All())
}

// MultiMap treats the accepted segments as alternating keys and values.
// See [MultiMap] for details.
func (s Splitter) MultiMap() map[string][]string {
	return MultiMap(s.All())
}
