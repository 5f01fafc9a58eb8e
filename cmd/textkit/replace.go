// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"textkit.256lights.llc/pkg/internal/tablefile"
	"textkit.256lights.llc/pkg/internal/xiter"
	"textkit.256lights.llc/pkg/strreplace"
	"zombiezen.com/go/log"
)

type replaceOptions struct {
	rules   strreplace.Table
	tables  []string
	inPlace bool
	count   bool
	files   []string
}

func newReplaceCommand(g *globalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:                   "replace [options] [FILE [...]]",
		Short:                 "replace patterns in text",
		DisableFlagsInUseLine: true,
		Args:                  cobra.ArbitraryArgs,
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	opts := new(replaceOptions)
	c.Flags().VarP(ruleFlag{&opts.rules}, "rule", "r", "replace `OLD=NEW` (can be passed multiple times)")
	c.Flags().StringArrayVarP(&opts.tables, "table", "t", nil, "read rules from table `file` (can be passed multiple times)")
	c.Flags().BoolVarP(&opts.inPlace, "in-place", "i", false, "rewrite files instead of printing the result")
	c.Flags().BoolVarP(&opts.count, "count", "c", false, "report the number of replacements in each file")
	c.RunE = func(cmd *cobra.Command, args []string) error {
		opts.files = args
		return runReplace(cmd.Context(), g, opts)
	}
	return c
}

func runReplace(ctx context.Context, g *globalConfig, opts *replaceOptions) error {
	table, err := opts.table(g)
	if err != nil {
		return err
	}
	if len(table) == 0 {
		return fmt.Errorf("no rules given (use --rule or --table)")
	}
	log.Debugf(ctx, "Loaded %d rules", len(table))
	r := strreplace.New(table)

	files := opts.files
	if len(files) == 0 {
		if opts.inPlace {
			return fmt.Errorf("--in-place requires at least one file")
		}
		files = []string{stdinName}
	}
	if opts.inPlace {
		for _, name := range files {
			if name == stdinName || isCompressedInput(name) {
				return fmt.Errorf("cannot edit %s in place", name)
			}
		}
	}

	results := make([]replaceResult, len(files))
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(runtime.NumCPU())
	for i, name := range files {
		if grpCtx.Err() != nil {
			break
		}
		grp.Go(func() error {
			var err error
			results[i], err = replaceFile(grpCtx, r, name, opts.inPlace)
			return err
		})
	}
	if err := grp.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	countOutput := os.Stderr
	if opts.inPlace {
		countOutput = os.Stdout
	}
	for i, result := range results {
		if !opts.inPlace {
			if _, err := io.WriteString(os.Stdout, result.text); err != nil {
				return err
			}
		}
		if opts.count {
			fmt.Fprintf(countOutput, "%s\t%d\n", files[i], result.count)
		}
	}
	return nil
}

// table returns the rules from the command line
// followed by the rules of each table file in order.
func (opts *replaceOptions) table(g *globalConfig) (strreplace.Table, error) {
	sources := []iter.Seq2[string, string]{opts.rules.All()}
	for _, name := range opts.tables {
		t, err := tablefile.Load(g.tablePath(name))
		if err != nil {
			return nil, err
		}
		sources = append(sources, t.All())
	}
	return strreplace.FromSeq(xiter.Chain2(sources...)), nil
}

// tablePath resolves a table name given on the command line.
// Bare file names that do not exist in the working directory
// are looked up in the configured table directory.
func (g *globalConfig) tablePath(name string) string {
	if g.TableDirectory == "" || filepath.IsAbs(name) || strings.ContainsAny(name, `/\`) {
		return name
	}
	if _, err := os.Stat(name); err == nil {
		return name
	}
	return filepath.Join(g.TableDirectory, name)
}

type replaceResult struct {
	// text is the replaced content. It is empty for in-place edits.
	text  string
	count int
}

// replaceFile applies r to the named input.
// If inPlace is true, the file is rewritten
// when at least one replacement was made.
func replaceFile(ctx context.Context, r *strreplace.Replacer, name string, inPlace bool) (replaceResult, error) {
	text, err := readInput(name)
	if err != nil {
		return replaceResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return replaceResult{}, err
	}
	n := r.ReplaceInPlace(&text)
	log.Debugf(ctx, "%s: %d replacements", name, n)
	if !inPlace {
		return replaceResult{text: text, count: n}, nil
	}
	if n > 0 {
		if err := rewriteFile(name, text); err != nil {
			return replaceResult{}, err
		}
	}
	return replaceResult{count: n}, nil
}

// rewriteFile atomically replaces the content of the file at path,
// keeping its permission bits.
func rewriteFile(path string, content string) (err error) {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()
	if _, err := io.WriteString(f, content); err != nil {
		return err
	}
	if err := f.Chmod(info.Mode().Perm()); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("rewrite %s: %v", path, err)
	}
	return nil
}
