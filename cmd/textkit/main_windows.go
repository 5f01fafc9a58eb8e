// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

package main

import (
	"iter"
	"os"
	"path/filepath"

	"zombiezen.com/go/bass/sigterm"
)

var interruptSignals = sigterm.Signals()

// systemConfigDirs returns a sequence of configuration directory paths
// in increasing order of preference (i.e. later entries should override earlier entries).
func systemConfigDirs() iter.Seq[string] {
	return func(yield func(string) bool) {
		if dir, err := os.UserConfigDir(); err == nil {
			yield(dir)
		}
	}
}

func defaultSocketPath() string {
	return filepath.Join(os.TempDir(), "textkit.sock")
}
