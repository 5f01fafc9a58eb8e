// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dsnet/compress/brotli"
	"github.com/dsnet/compress/bzip2"
)

// stdinName is the argument that refers to standard input.
const stdinName = "-"

// isCompressedInput reports whether openInput decompresses the named file.
func isCompressedInput(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".bz2", ".br":
		return true
	default:
		return false
	}
}

// openInput opens the named input for reading.
// Files ending in ".bz2" or ".br" are decompressed transparently.
func openInput(name string) (io.ReadCloser, error) {
	if name == stdinName {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	var zr io.ReadCloser
	switch strings.ToLower(filepath.Ext(name)) {
	case ".bz2":
		zr, err = bzip2.NewReader(f, nil)
	case ".br":
		zr, err = brotli.NewReader(f, nil)
	default:
		return f, nil
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open %s: %v", name, err)
	}
	return &decompressor{zr, f}, nil
}

// readInput reads the entire named input.
func readInput(name string) (string, error) {
	r, err := openInput(name)
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(r)
	r.Close()
	if err != nil {
		if name == stdinName {
			return "", fmt.Errorf("read stdin: %v", err)
		}
		return "", fmt.Errorf("read %s: %v", name, err)
	}
	return string(data), nil
}

type decompressor struct {
	io.ReadCloser
	f *os.File
}

func (d *decompressor) Close() error {
	err1 := d.ReadCloser.Close()
	err2 := d.f.Close()
	if err1 != nil {
		return err1
	}
	return err2
}
