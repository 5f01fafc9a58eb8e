// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"textkit.256lights.llc/pkg/strreplace"
	"textkit.256lights.llc/pkg/strsplit"
)

// ruleFlag is the implementation of [github.com/spf13/pflag.Value]
// and [github.com/spf13/pflag.SliceValue]
// that appends OLD=NEW arguments to a replacement table.
// Only the first "=" separates the pattern from its replacement.
type ruleFlag struct {
	table *strreplace.Table
}

func (f ruleFlag) Type() string { return "stringArray" }
func (f ruleFlag) Get() any     { return *f.table }

func (f ruleFlag) GetSlice() []string {
	s := make([]string, 0, len(*f.table))
	for _, rule := range *f.table {
		s = append(s, rule.Old+"="+rule.New)
	}
	return s
}

func (f ruleFlag) String() string {
	buf := new(bytes.Buffer)
	buf.WriteString("[")
	w := csv.NewWriter(buf)
	_ = w.Write(f.GetSlice())
	w.Flush()
	b := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	b = append(b, "]"...)
	return string(b)
}

func (f ruleFlag) Set(s string) error {
	old, repl, err := parseRule(s)
	if err != nil {
		return err
	}
	f.table.Add(old, repl)
	return nil
}

func (f ruleFlag) Append(s string) error {
	return f.Set(s)
}

func (f ruleFlag) Replace(val []string) error {
	t := make(strreplace.Table, 0, len(val))
	for _, s := range val {
		old, repl, err := parseRule(s)
		if err != nil {
			return err
		}
		t.Add(old, repl)
	}
	*f.table = t
	return nil
}

var ruleSeparator = strsplit.MaxSplits(strsplit.ByChar('='), 1)

func parseRule(s string) (old, repl string, err error) {
	if !strings.Contains(s, "=") {
		return "", "", fmt.Errorf("rule %q missing '='", s)
	}
	old, repl = strsplit.New(s, ruleSeparator, strsplit.AllowEmpty).Pair()
	if old == "" {
		return "", "", fmt.Errorf("rule %q has an empty pattern", s)
	}
	return old, repl, nil
}

//go:generate go tool stringer -type=outputFormat -linecomment -output=outputformat_string.go

// outputFormat is an enumeration of the shapes "textkit split" can print.
type outputFormat int8

const (
	linesFormat    outputFormat = iota // lines
	jsonFormat                         // json
	pairFormat                         // pair
	mapFormat                          // map
	multimapFormat                     // multimap
	setFormat                          // set
	countsFormat                       // counts
)

func (f *outputFormat) Type() string { return "format" }
func (f *outputFormat) Get() any     { return *f }

func (f *outputFormat) Set(s string) error {
	for i := linesFormat; i <= countsFormat; i++ {
		if s == i.String() {
			*f = i
			return nil
		}
	}
	return fmt.Errorf("unknown format %q", s)
}
