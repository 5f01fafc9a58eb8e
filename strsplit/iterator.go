// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

package strsplit

type iteratorState int8

const (
	stateDone iteratorState = iota
	statePositioned
	// stateLast means the current segment is the final candidate in the text.
	stateLast
)

// An Iterator is a cursor over the segments of a [Splitter].
// The zero value is a done cursor.
//
// Iterators are values: copying an Iterator produces
// an independent cursor at the same position.
//
//	for it := s.Begin(); !it.Done(); it.Next() {
//		fmt.Println(it.Value())
//	}
type Iterator struct {
	text      string
	delimiter Delimiter
	predicate Predicate
	// limit is the maximum number of delimiter matches. Negative means unlimited.
	limit   int
	matches int

	// pos is the offset at which the next delimiter search starts.
	pos   int
	curr  Span
	state iteratorState
}

// Done reports whether the cursor has moved past the last segment.
func (it *Iterator) Done() bool {
	return it.state == stateDone
}

// Value returns the current segment.
// Value panics if the cursor is done.
func (it *Iterator) Value() string {
	if it.Done() {
		panic("strsplit: Value called on done Iterator")
	}
	return it.text[it.curr.Start:it.curr.End]
}

// Span returns the position of the current segment in the text.
// Span panics if the cursor is done.
func (it *Iterator) Span() Span {
	if it.Done() {
		panic("strsplit: Span called on done Iterator")
	}
	return it.curr
}

// Next advances the cursor to the next accepted segment.
// Calling Next on a done cursor has no effect.
func (it *Iterator) Next() {
	if it.Done() {
		return
	}
	it.advance()
}

// Equal reports whether it and other are positioned on the same segment
// of the same text, or are both done.
func (it *Iterator) Equal(other *Iterator) bool {
	if it.Done() || other.Done() {
		return it.Done() && other.Done()
	}
	return it.curr == other.curr &&
		it.pos == other.pos &&
		it.state == other.state &&
		it.text == other.text
}

func (it *Iterator) advance() {
	for {
		if it.state == stateLast {
			it.state = stateDone
			return
		}
		var m Span
		found := false
		if it.limit < 0 || it.matches < it.limit {
			m, found = it.delimiter.Find(it.text, it.pos)
		}
		if found {
			it.matches++
		} else {
			m = Span{len(it.text), len(it.text)}
			it.state = stateLast
		}
		it.curr = Span{it.pos, m.Start}
		it.pos = m.End
		if it.predicate == nil || it.predicate(it.text[it.curr.Start:it.curr.End]) {
			return
		}
	}
}
