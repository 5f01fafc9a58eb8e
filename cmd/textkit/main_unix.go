// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

//go:build unix

package main

import (
	"iter"
	"os"
	"path/filepath"

	"go4.org/xdgdir"
	"golang.org/x/sys/unix"
)

var interruptSignals = []os.Signal{
	unix.SIGTERM,
	unix.SIGINT,
}

// systemConfigDirs returns a sequence of configuration directory paths
// in increasing order of preference (i.e. later entries should override earlier entries).
func systemConfigDirs() iter.Seq[string] {
	return func(yield func(string) bool) {
		if !yield("/etc") {
			return
		}
		if dir := xdgdir.Config.Path(); dir != "" {
			yield(dir)
		}
	}
}

// defaultSocketPath returns the socket path in $XDG_RUNTIME_DIR,
// falling back to the temporary directory.
func defaultSocketPath() string {
	dir := xdgdir.Runtime.Path()
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "textkit.sock")
}
