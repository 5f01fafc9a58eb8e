// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

package strsplit

// A Predicate reports whether a candidate segment should be yielded.
// A nil Predicate accepts every segment.
type Predicate func(segment string) bool

// AllowEmpty accepts every segment.
func AllowEmpty(string) bool {
	return true
}

// SkipEmpty rejects empty segments.
func SkipEmpty(segment string) bool {
	return segment != ""
}

// SkipWhitespace rejects segments that are empty
// or consist entirely of ASCII whitespace.
func SkipWhitespace(segment string) bool {
	for i := range len(segment) {
		if !isASCIISpace(segment[i]) {
			return true
		}
	}
	return false
}

func isASCIISpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

// PredicateByName returns the predicate with the given name:
// "" or "none" for [AllowEmpty], "empty" for [SkipEmpty],
// or "whitespace" for [SkipWhitespace].
func PredicateByName(name string) (Predicate, bool) {
	switch name {
	case "", "none":
		return AllowEmpty, true
	case "empty":
		return SkipEmpty, true
	case "whitespace":
		return SkipWhitespace, true
	default:
		return nil, false
	}
}
