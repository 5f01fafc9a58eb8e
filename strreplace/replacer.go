// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

package strreplace

import (
	"cmp"
	"io"
	"iter"
	"slices"
)

// A Replacer applies a [Table] to strings.
//
// A Replacer scans its input once from left to right.
// At each offset, it chooses the longest rule whose Old string
// is a prefix of the remaining input,
// emits that rule's New string, and continues after the matched text.
// If no rule matches, the byte at the offset is copied unchanged.
// Replacements are not recursive: replaced text is never rescanned.
//
// A Replacer is safe for concurrent use by multiple goroutines.
type Replacer struct {
	root  *trieNode
	rules Table
}

// New compiles t into a [Replacer].
// Later changes to t do not affect the Replacer.
func New(t Table) *Replacer {
	r := &Replacer{
		root:  newTrieNode(0),
		rules: slices.Clone(t),
	}
	for i, rule := range r.rules {
		if rule.Old != "" {
			r.root.add(rule.Old, i)
		}
	}
	return r
}

// Replace returns a copy of s with all replacements performed.
// Replace has the same signature as [strings.Replacer.Replace].
func (r *Replacer) Replace(s string) string {
	result, _ := r.ReplaceCount(s)
	return result
}

// ReplaceCount returns a copy of s with all replacements performed
// and the number of replacements.
// If there are no replacements, s is returned unchanged.
func (r *Replacer) ReplaceCount(s string) (string, int) {
	var buf []byte
	n := 0
	last := 0
	for m := range r.matches(s) {
		if buf == nil {
			buf = make([]byte, 0, len(s))
		}
		buf = append(buf, s[last:m.start]...)
		buf = append(buf, r.rules[m.rule].New...)
		last = m.end
		n++
	}
	if n == 0 {
		return s, 0
	}
	buf = append(buf, s[last:]...)
	return string(buf), n
}

// ReplaceInPlace replaces the string s points to
// with the result of [Replacer.ReplaceCount]
// and returns the number of replacements made.
func (r *Replacer) ReplaceInPlace(s *string) int {
	var n int
	*s, n = r.ReplaceCount(*s)
	return n
}

// AppendReplace appends s with all replacements performed to dst
// and returns the extended buffer along with the number of replacements.
func (r *Replacer) AppendReplace(dst []byte, s string) ([]byte, int) {
	n := 0
	last := 0
	for m := range r.matches(s) {
		dst = append(dst, s[last:m.start]...)
		dst = append(dst, r.rules[m.rule].New...)
		last = m.end
		n++
	}
	return append(dst, s[last:]...), n
}

// WriteString writes s to w with all replacements performed.
func (r *Replacer) WriteString(w io.Writer, s string) (n int, err error) {
	last := 0
	for m := range r.matches(s) {
		nn, err := io.WriteString(w, s[last:m.start])
		n += nn
		if err != nil {
			return n, err
		}
		nn, err = io.WriteString(w, r.rules[m.rule].New)
		n += nn
		if err != nil {
			return n, err
		}
		last = m.end
	}
	nn, err := io.WriteString(w, s[last:])
	n += nn
	return n, err
}

type match struct {
	start int
	end   int
	rule  int
}

// matches returns an iterator over the non-overlapping rule matches in s
// in the order a left-to-right scan finds them.
func (r *Replacer) matches(s string) iter.Seq[match] {
	return func(yield func(match) bool) {
		if len(r.root.children) == 0 {
			return
		}
		for i := 0; i < len(s); {
			rule, n := r.root.longest(s[i:])
			if n == 0 {
				i++
				continue
			}
			if !yield(match{start: i, end: i + n, rule: rule}) {
				return
			}
			i += n
		}
	}
}

// trieNode is a node in a byte-wise prefix tree of rule patterns.
// Children are sorted by byte.
type trieNode struct {
	b byte
	// rule is the index of the rule whose pattern ends at this node
	// or -1 if no pattern ends here.
	rule     int
	children []*trieNode
}

func newTrieNode(b byte) *trieNode {
	return &trieNode{b: b, rule: -1}
}

func (node *trieNode) find(b byte) (i int, ok bool) {
	return slices.BinarySearchFunc(node.children, b, func(child *trieNode, b byte) int {
		return cmp.Compare(child.b, b)
	})
}

func (node *trieNode) add(pattern string, rule int) {
	for _, b := range []byte(pattern) { // Go compiler elides allocation.
		if i, ok := node.find(b); ok {
			node = node.children[i]
		} else {
			newNode := newTrieNode(b)
			node.children = slices.Insert(node.children, i, newNode)
			node = newNode
		}
	}
	if node.rule < 0 {
		node.rule = rule
	}
}

// longest returns the rule with the longest pattern that is a prefix of s
// and the pattern's length.
// If no pattern matches, longest returns (-1, 0).
func (node *trieNode) longest(s string) (rule int, n int) {
	rule = -1
	for i := range len(s) {
		j, ok := node.find(s[i])
		if !ok {
			break
		}
		node = node.children[j]
		if node.rule >= 0 {
			rule, n = node.rule, i+1
		}
	}
	return rule, n
}
