// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"textkit.256lights.llc/pkg/internal/xmaps"
	"textkit.256lights.llc/pkg/strsplit"
	"zombiezen.com/go/log"
)

type splitOptions struct {
	sep       string
	anyOf     string
	length    int
	maxSplits int
	skip      string
	format    outputFormat
	files     []string

	// delimiterFlag is the name of the delimiter flag passed on the command line.
	// The empty string means --sep's default is used.
	delimiterFlag string
}

func newSplitCommand(g *globalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:                   "split [options] [FILE [...]]",
		Short:                 "split text into segments",
		DisableFlagsInUseLine: true,
		Args:                  cobra.ArbitraryArgs,
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	opts := &splitOptions{
		sep:       g.DefaultSeparator,
		maxSplits: -1,
		skip:      g.Skip,
	}
	c.Flags().StringVarP(&opts.sep, "sep", "s", opts.sep, "split on each occurrence of `string`")
	c.Flags().StringVar(&opts.anyOf, "any", "", "split on any byte in `set`")
	c.Flags().IntVar(&opts.length, "length", 0, "split into chunks of `n` bytes")
	c.Flags().IntVarP(&opts.maxSplits, "max-splits", "n", opts.maxSplits, "stop splitting after `n` delimiters (negative for no limit)")
	c.Flags().StringVar(&opts.skip, "skip", opts.skip, "drop segments that are `empty` or all whitespace")
	c.Flags().VarP(&opts.format, "format", "f", "output `format` (lines, json, pair, map, multimap, set, or counts)")
	c.MarkFlagsMutuallyExclusive("sep", "any", "length")
	c.RunE = func(cmd *cobra.Command, args []string) error {
		for _, name := range []string{"sep", "any", "length"} {
			if cmd.Flags().Changed(name) {
				opts.delimiterFlag = name
			}
		}
		opts.files = args
		return runSplit(cmd.Context(), opts)
	}
	return c
}

func runSplit(ctx context.Context, opts *splitOptions) error {
	d, err := opts.delimiter()
	if err != nil {
		return err
	}
	p, ok := strsplit.PredicateByName(opts.skip)
	if !ok {
		return fmt.Errorf("unknown --skip=%s", opts.skip)
	}
	files := opts.files
	if len(files) == 0 {
		files = []string{stdinName}
	}
	indent := term.IsTerminal(int(os.Stdout.Fd()))

	out := bufio.NewWriter(os.Stdout)
	for _, name := range files {
		text, err := readInput(name)
		if err != nil {
			return err
		}
		// A file's final line terminator does not start another segment.
		text = strings.TrimSuffix(text, "\n")
		log.Debugf(ctx, "Splitting %s (%d bytes) with %s", name, len(text), opts.format)
		if err := writeSegments(out, strsplit.New(text, d, p), opts.format, indent); err != nil {
			return err
		}
	}
	return out.Flush()
}

func (opts *splitOptions) delimiter() (strsplit.Delimiter, error) {
	var d strsplit.Delimiter
	switch opts.delimiterFlag {
	case "any":
		d = strsplit.ByAnyChar(opts.anyOf)
	case "length":
		if opts.length <= 0 {
			return nil, fmt.Errorf("--length must be positive (got %d)", opts.length)
		}
		d = strsplit.ByLength(opts.length)
	default:
		d = strsplit.ByString(opts.sep)
	}
	if opts.maxSplits >= 0 {
		d = strsplit.MaxSplits(d, opts.maxSplits)
	}
	return d, nil
}

// writeSegments writes the segments produced by s to w in the given format.
// If indent is true, JSON output is indented for reading.
func writeSegments(w io.Writer, s strsplit.Splitter, format outputFormat, indent bool) error {
	switch format {
	case linesFormat:
		for segment := range s.All() {
			if _, err := io.WriteString(w, segment+"\n"); err != nil {
				return err
			}
		}
		return nil
	case jsonFormat:
		return encodeJSON(w, indent, func(enc *jsontext.Encoder) error {
			if err := enc.WriteToken(jsontext.BeginArray); err != nil {
				return err
			}
			for segment := range s.All() {
				if err := enc.WriteToken(jsontext.String(segment)); err != nil {
					return err
				}
			}
			return enc.WriteToken(jsontext.EndArray)
		})
	case pairFormat:
		first, second := s.Pair()
		_, err := fmt.Fprintf(w, "%s\n%s\n", first, second)
		return err
	case mapFormat:
		m := s.Map()
		return encodeJSON(w, indent, func(enc *jsontext.Encoder) error {
			return writeSortedObject(enc, m)
		})
	case multimapFormat:
		m := s.MultiMap()
		return encodeJSON(w, indent, func(enc *jsontext.Encoder) error {
			return writeSortedObject(enc, m)
		})
	case setFormat:
		for segment := range strsplit.SortedSet(s.All()).Values() {
			if _, err := io.WriteString(w, segment+"\n"); err != nil {
				return err
			}
		}
		return nil
	case countsFormat:
		counts := strsplit.Multiset(s.All())
		for i := 0; i < counts.Len(); {
			segment := counts.At(i)
			n := counts.Count(segment)
			if _, err := fmt.Fprintf(w, "%d\t%s\n", n, segment); err != nil {
				return err
			}
			i += n
		}
		return nil
	default:
		return fmt.Errorf("unhandled format %v", format)
	}
}

func encodeJSON(w io.Writer, indent bool, f func(enc *jsontext.Encoder) error) error {
	var opts []jsontext.Options
	if indent {
		opts = append(opts, jsontext.WithIndent("  "))
	}
	enc := jsontext.NewEncoder(w, opts...)
	return f(enc)
}

// writeSortedObject writes m as a JSON object with its keys in sorted order.
func writeSortedObject[V any](enc *jsontext.Encoder, m map[string]V) error {
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}
	for k, v := range xmaps.Sorted(m) {
		if err := enc.WriteToken(jsontext.String(k)); err != nil {
			return err
		}
		if err := jsonv2.MarshalEncode(enc, v); err != nil {
			return err
		}
	}
	return enc.WriteToken(jsontext.EndObject)
}
