// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

package strsplit

import (
	"fmt"
	"strings"
)

// Span is a half-open range of byte offsets [Start, End) into a text.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes in the span.
func (span Span) Len() int {
	return span.End - span.Start
}

// In returns the substring of text that span covers.
func (span Span) In(text string) string {
	return text[span.Start:span.End]
}

func (span Span) String() string {
	return fmt.Sprintf("[%d,%d)", span.Start, span.End)
}

// A Delimiter locates the separators between segments of a text.
//
// Find reports the first delimiter occurrence that begins at or after pos,
// where 0 <= pos <= len(text).
// A Delimiter must never report a zero-length match at pos itself,
// otherwise a [Splitter] would not make progress.
// Delimiters are immutable and safe for concurrent use.
type Delimiter interface {
	Find(text string, pos int) (Span, bool)
}

// ByString returns a [Delimiter] that matches the literal string sep.
// An empty sep splits the text into single bytes.
func ByString(sep string) Delimiter {
	if len(sep) == 1 {
		return byChar(sep[0])
	}
	return byString(sep)
}

type byString string

func (sep byString) Find(text string, pos int) (Span, bool) {
	if sep == "" {
		return findEmpty(text, pos)
	}
	i := strings.Index(text[pos:], string(sep))
	if i < 0 {
		return Span{}, false
	}
	start := pos + i
	return Span{start, start + len(sep)}, true
}

// findEmpty implements the empty pattern:
// a zero-length match one byte past pos, as long as that is before the end of text.
func findEmpty(text string, pos int) (Span, bool) {
	if pos+1 >= len(text) {
		return Span{}, false
	}
	return Span{pos + 1, pos + 1}, true
}

// ByChar returns a [Delimiter] that matches the single byte c.
func ByChar(c byte) Delimiter {
	return byChar(c)
}

type byChar byte

func (c byChar) Find(text string, pos int) (Span, bool) {
	i := strings.IndexByte(text[pos:], byte(c))
	if i < 0 {
		return Span{}, false
	}
	start := pos + i
	return Span{start, start + 1}, true
}

// ByAnyChar returns a [Delimiter] that matches any single byte in set.
// An empty set behaves like an empty [ByString].
func ByAnyChar(set string) Delimiter {
	return byAnyChar(set)
}

type byAnyChar string

func (set byAnyChar) Find(text string, pos int) (Span, bool) {
	if set == "" {
		return findEmpty(text, pos)
	}
	// strings.IndexAny decodes UTF-8; matching is byte-wise.
	rest := text[pos:]
	for i := range len(rest) {
		if strings.IndexByte(string(set), rest[i]) >= 0 {
			return Span{pos + i, pos + i + 1}, true
		}
	}
	return Span{}, false
}

// ByLength returns a [Delimiter] that cuts the text into chunks of n bytes.
// The last chunk may be shorter.
// ByLength panics if n <= 0.
func ByLength(n int) Delimiter {
	if n <= 0 {
		panic(fmt.Sprintf("strsplit: ByLength(%d): length must be positive", n))
	}
	return byLength(n)
}

type byLength int

func (n byLength) Find(text string, pos int) (Span, bool) {
	if len(text)-pos <= int(n) {
		return Span{}, false
	}
	end := pos + int(n)
	return Span{end, end}, true
}

// MaxSplits returns a [Delimiter] that behaves like d
// for the first limit matches in a text and then matches nothing,
// so the rest of the text becomes the final segment.
// MaxSplits panics if limit < 0.
//
// The match count belongs to the iteration over a [Splitter],
// not to the returned Delimiter,
// so the same value may be shared freely.
// Calling Find directly on the returned Delimiter is equivalent to calling d.Find.
func MaxSplits(d Delimiter, limit int) Delimiter {
	if limit < 0 {
		panic(fmt.Sprintf("strsplit: MaxSplits(..., %d): limit must be non-negative", limit))
	}
	if d == nil {
		panic("strsplit: MaxSplits(nil, ...)")
	}
	if m, ok := d.(maxSplits); ok {
		return maxSplits{m.d, min(m.limit, limit)}
	}
	return maxSplits{d, limit}
}

type maxSplits struct {
	d     Delimiter
	limit int
}

func (m maxSplits) Find(text string, pos int) (Span, bool) {
	return m.d.Find(text, pos)
}

// unwrapLimit returns the underlying delimiter and match limit of d.
// A negative limit means unlimited.
func unwrapLimit(d Delimiter) (Delimiter, int) {
	if m, ok := d.(maxSplits); ok {
		return m.d, m.limit
	}
	return d, -1
}
