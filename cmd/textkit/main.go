// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

// textkit splits and rewrites text from the command line
// and serves the same operations over JSON-RPC or HTTP.
package main

import (
	"context"
	"iter"
	"os"
	"os/signal"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"
	"textkit.256lights.llc/pkg/internal/xiter"
	"textkit.256lights.llc/pkg/strsplit"
	"zombiezen.com/go/log"
)

func main() {
	rootCommand := &cobra.Command{
		Use:           "textkit",
		Short:         "split and replace text",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	g := defaultGlobalConfig()
	if err := g.mergeEnvironment(); err != nil {
		initLogging(false)
		log.Errorf(context.Background(), "%v", err)
		os.Exit(1)
	}
	if err := g.mergeFiles(configPaths()); err != nil {
		initLogging(false)
		log.Errorf(context.Background(), "%v", err)
		os.Exit(1)
	}

	rootCommand.PersistentFlags().BoolVar(&g.Debug, "debug", g.Debug, "show debugging output")
	rootCommand.PersistentFlags().StringVar(&g.TableDirectory, "table-dir", g.TableDirectory, "`dir`ectory to search for replacement tables")

	rootCommand.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		initLogging(g.Debug)
		return g.validate()
	}

	rootCommand.AddCommand(
		newSplitCommand(g),
		newReplaceCommand(g),
		newServeCommand(g),
		newVersionCommand(),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), interruptSignals...)
	err := rootCommand.ExecuteContext(ctx)
	cancel()
	if err != nil {
		initLogging(g.Debug)
		log.Errorf(context.Background(), "%v", err)
		os.Exit(1)
	}
}

// configPaths returns the configuration files to read
// in increasing order of preference.
// TEXTKIT_CONFIG replaces the search path with its list of files.
func configPaths() iter.Seq[string] {
	if list := os.Getenv("TEXTKIT_CONFIG"); list != "" {
		return strsplit.New(list, strsplit.ByChar(filepath.ListSeparator), strsplit.SkipEmpty).All()
	}
	return xiter.Map(systemConfigDirs(), func(dir string) string {
		return filepath.Join(dir, "textkit", "config.jwcc")
	})
}

var initLogOnce sync.Once

func initLogging(showDebug bool) {
	initLogOnce.Do(func() {
		minLogLevel := log.Info
		if showDebug {
			minLogLevel = log.Debug
		}
		log.SetDefault(&log.LevelFilter{
			Min:    minLogLevel,
			Output: log.New(os.Stderr, "textkit: ", log.StdFlags, nil),
		})
	})
}
