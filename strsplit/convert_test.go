// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

package strsplit

import (
	"slices"
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestConversions(t *testing.T) {
	s := Split("a,b,c,d", ",")
	want := []string{"a", "b", "c", "d"}

	if diff := cmp.Diff(want, s.Slice()); diff != "" {
		t.Errorf("Slice (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, slices.Collect(Set(s.All()).All()), cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Errorf("Set (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, slices.Collect(SortedSet(s.All()).Values())); diff != "" {
		t.Errorf("SortedSet (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, slices.Collect(Multiset(s.All()).Values())); diff != "" {
		t.Errorf("Multiset (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"a": "b", "c": "d"}, s.Map()); diff != "" {
		t.Errorf("Map (-want +got):\n%s", diff)
	}
	if first, second := s.Pair(); first != "a" || second != "b" {
		t.Errorf("Pair() = %q, %q; want \"a\", \"b\"", first, second)
	}
}

func TestSetConversions(t *testing.T) {
	s := Split("b,a,b,c,a", ",")

	if diff := cmp.Diff([]string{"a", "b", "c"}, slices.Collect(SortedSet(s.All()).Values())); diff != "" {
		t.Errorf("SortedSet (-want +got):\n%s", diff)
	}
	if got, want := Set(s.All()).Len(), 3; got != want {
		t.Errorf("Set(...).Len() = %d; want %d", got, want)
	}
	if diff := cmp.Diff([]string{"a", "a", "b", "b", "c"}, slices.Collect(Multiset(s.All()).Values())); diff != "" {
		t.Errorf("Multiset (-want +got):\n%s", diff)
	}
}

func TestPair(t *testing.T) {
	tests := []struct {
		text   string
		first  string
		second string
	}{
		{"", "", ""},
		{"a", "a", ""},
		{",b", "", "b"},
		{"a,b", "a", "b"},
		{"a,b,c", "a", "b"},
	}
	for _, test := range tests {
		first, second := Split(test.text, ",").Pair()
		if first != test.first || second != test.second {
			t.Errorf("Split(%q, \",\").Pair() = %q, %q; want %q, %q",
				test.text, first, second, test.first, test.second)
		}
	}
}

func TestMap(t *testing.T) {
	tests := []struct {
		name string
		text string
		want map[string]string
	}{
		{
			name: "LastValueWins",
			text: "a,1,b,2,a,3",
			want: map[string]string{"a": "3", "b": "2"},
		},
		{
			name: "OddTail",
			text: "a,1,b",
			want: map[string]string{"a": "1", "b": ""},
		},
		{
			name: "Empty",
			text: "",
			want: map[string]string{"": ""},
		},
	}
	for _, test := range tests {
		got := Split(test.text, ",").Map()
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("%s: Split(%q, \",\").Map() (-want +got):\n%s", test.name, test.text, diff)
		}
	}
}

func TestMultiMap(t *testing.T) {
	got := Split("a,1,b,2,a,3", ",").MultiMap()
	want := map[string][]string{
		"a": {"1", "3"},
		"b": {"2"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MultiMap (-want +got):\n%s", diff)
	}
}

func TestMapOfKeyValuePairs(t *testing.T) {
	// Split into entries, then each entry into key and value at the first '='.
	m := make(map[string]string)
	for entry := range Split("a=b=c,d=e,f=,g", ",").All() {
		k, v := New(entry, MaxSplits(ByChar('='), 1), nil).Pair()
		m[k] = v
	}
	want := map[string]string{
		"a": "b=c",
		"d": "e",
		"f": "",
		"g": "",
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("map (-want +got):\n%s", diff)
	}
}

func TestOwned(t *testing.T) {
	text := "abc,def"
	shared := Split(text, ",").Slice()
	owned := Slice(Owned(Split(text, ",").All()))
	if diff := cmp.Diff(shared, owned); diff != "" {
		t.Fatalf("Owned changed values (-shared +owned):\n%s", diff)
	}
	if unsafe.StringData(shared[0]) != unsafe.StringData(text) {
		t.Error("segment does not share memory with text")
	}
	if unsafe.StringData(owned[0]) == unsafe.StringData(text) {
		t.Error("owned segment shares memory with text")
	}
}
