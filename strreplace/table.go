// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

package strreplace

import (
	"fmt"
	"iter"
)

// Rule is a single replacement: occurrences of Old are replaced with New.
// A Rule with an empty Old never matches.
type Rule struct {
	Old string `json:"old" yaml:"old" toml:"old"`
	New string `json:"new" yaml:"new" toml:"new"`
}

// A Table is an ordered list of replacement rules.
// When several rules have the same Old string,
// the one that appears first in the table is used.
type Table []Rule

// Pairs returns a [Table] from a list of old, new string pairs.
// Pairs panics if given an odd number of arguments.
func Pairs(oldnew ...string) Table {
	if len(oldnew)%2 == 1 {
		panic(fmt.Sprintf("strreplace: Pairs called with %d arguments; want an even number", len(oldnew)))
	}
	t := make(Table, 0, len(oldnew)/2)
	for i := 0; i < len(oldnew); i += 2 {
		t = append(t, Rule{Old: oldnew[i], New: oldnew[i+1]})
	}
	return t
}

// FromSeq returns a [Table] with a rule for each old, new pair in seq,
// in the order seq yields them.
// A map can be used as a table with FromSeq(maps.All(m)).
func FromSeq[K, V ~string](seq iter.Seq2[K, V]) Table {
	var t Table
	for old, repl := range seq {
		t = append(t, Rule{Old: string(old), New: string(repl)})
	}
	return t
}

// Add appends a rule that replaces old with repl to the table.
func (t *Table) Add(old, repl string) {
	*t = append(*t, Rule{Old: old, New: repl})
}

// All returns an iterator over the old, new pairs in the table.
func (t Table) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, r := range t {
			if !yield(r.Old, r.New) {
				return
			}
		}
	}
}

// Replace returns a copy of s with every match of a rule in t replaced
// and the number of replacements made.
// See [Replacer] for the matching rules.
// Callers that apply the same table to many strings
// should compile it once with [New].
func Replace(s string, t Table) (string, int) {
	return New(t).ReplaceCount(s)
}

// ReplaceInPlace replaces the string s points to
// with the result of [Replace] and returns the number of replacements made.
func ReplaceInPlace(t Table, s *string) int {
	return New(t).ReplaceInPlace(s)
}
