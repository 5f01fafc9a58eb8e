// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// textkitVersion is the version string filled in by the linker (e.g. "1.2.3").
var textkitVersion string

func newVersionCommand() *cobra.Command {
	c := &cobra.Command{
		Use:                   "version",
		Short:                 "show version information",
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	c.RunE = func(cmd *cobra.Command, args []string) error {
		fmt.Print(versionInfo())
		return nil
	}
	return c
}

func versionInfo() string {
	version := textkitVersion
	if version == "" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
	}
	firstLine := "textkit"
	if version == "" {
		firstLine += " (version unknown)"
	} else {
		firstLine += " version " + version
	}
	return fmt.Sprintf("%s\nGo:           %s\nSystem:       %s/%s\nCPUs:         %d\n",
		firstLine, runtime.Version(), runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
}
