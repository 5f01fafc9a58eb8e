// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

package strsplit_test

import (
	"fmt"

	"textkit.256lights.llc/pkg/strsplit"
)

func Example() {
	for field := range strsplit.Split("a,b,c", ",").All() {
		fmt.Println(field)
	}
	// Output:
	// a
	// b
	// c
}

func ExampleNew() {
	s := strsplit.New(" a , ,b,", strsplit.ByChar(','), strsplit.SkipWhitespace)
	fmt.Printf("%q\n", s.Slice())
	// Output:
	// [" a " "b"]
}

func ExampleByLength() {
	fmt.Printf("%q\n", strsplit.New("abcdefg", strsplit.ByLength(3), nil).Slice())
	// Output:
	// ["abc" "def" "g"]
}

func ExampleMaxSplits() {
	key, value := strsplit.New("a=b=c", strsplit.MaxSplits(strsplit.ByChar('='), 1), nil).Pair()
	fmt.Println(key)
	fmt.Println(value)
	// Output:
	// a
	// b=c
}

func ExampleSplitter_Begin() {
	s := strsplit.New("a;b,c", strsplit.ByAnyChar(",;"), nil)
	for it := s.Begin(); !it.Done(); it.Next() {
		fmt.Println(it.Span(), it.Value())
	}
	// Output:
	// [0,1) a
	// [2,3) b
	// [4,5) c
}

func ExampleSortedSet() {
	fmt.Printf("%q\n", strsplit.SortedSet(strsplit.Split("b,a,c,a", ",").All()))
	// Output:
	// {"a" "b" "c"}
}
