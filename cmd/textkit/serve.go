// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"sync"

	"github.com/coreos/go-systemd/v22/activation"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"textkit.256lights.llc/pkg/internal/textrpc"
	"textkit.256lights.llc/pkg/sets"
	"zombiezen.com/go/log"
	"zombiezen.com/go/xcontext"
)

type serveOptions struct {
	socket   string
	stdio    bool
	httpAddr string
}

func newServeCommand(g *globalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:                   "serve [options]",
		Short:                 "run a JSON-RPC server for split and replace",
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	opts := &serveOptions{
		socket: g.Socket,
	}
	c.Flags().StringVar(&opts.socket, "socket", opts.socket, "`path` of Unix socket to listen on")
	c.Flags().BoolVar(&opts.stdio, "stdio", false, "serve a single client on stdin and stdout")
	c.Flags().StringVar(&opts.httpAddr, "http", "", "serve HTTP on `addr`ess instead of JSON-RPC")
	c.MarkFlagsMutuallyExclusive("socket", "stdio", "http")
	c.RunE = func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), opts)
	}
	return c
}

func runServe(ctx context.Context, opts *serveOptions) error {
	switch {
	case opts.stdio:
		return serveStdio(ctx)
	case opts.httpAddr != "":
		return serveHTTP(ctx, opts.httpAddr)
	}

	listeners, err := activation.Listeners()
	if err != nil {
		return fmt.Errorf("socket activation: %v", err)
	}
	if len(listeners) > 0 {
		log.Debugf(ctx, "Using %d socket-activated listeners", len(listeners))
		return serveListeners(ctx, listeners)
	}

	if err := os.MkdirAll(filepath.Dir(opts.socket), 0o755); err != nil {
		return err
	}
	l, err := listenUnix(opts.socket)
	if err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(opts.socket); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Warnf(ctx, "Failed to clean up socket: %v", err)
		}
	}()
	log.Infof(ctx, "Listening on %s", opts.socket)
	return serveListeners(ctx, []net.Listener{l})
}

func serveStdio(ctx context.Context) error {
	codec := textrpc.NewCodec(stdioConn{os.Stdin, os.Stdout})
	closer := xcontext.CloseWhenDone(ctx, codec)
	err := textrpc.Serve(ctx, codec)
	closer.Close()
	if ctx.Err() != nil || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// serveListeners accepts JSON-RPC connections on each listener
// until ctx is done.
func serveListeners(ctx context.Context, listeners []net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	conns := new(connSet)
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)

		// Once the context is Done, refuse new connections and RPCs.
		<-ctx.Done()
		log.Infof(ctx, "Shutting down...")

		for _, l := range listeners {
			if err := l.Close(); err != nil {
				log.Errorf(ctx, "Closing listener: %v", err)
			}
		}
		conns.shutdown(ctx)
	}()
	defer func() {
		cancel()
		<-shutdownDone
		conns.wait()
	}()

	errs := make(chan error, len(listeners))
	for _, l := range listeners {
		go func() {
			errs <- acceptLoop(ctx, l, func(conn net.Conn) {
				if !conns.add(conn) {
					conn.Close()
					return
				}
				go func() {
					defer conns.remove(conn)
					serveConn(ctx, conn)
				}()
			})
		}()
	}

	var firstErr error
	for range listeners {
		if err := <-errs; err != nil && firstErr == nil {
			firstErr = err
			cancel()
		}
	}
	return firstErr
}

// connSet tracks the connections that serveListeners is serving.
// The zero value is an empty set.
type connSet struct {
	wg       sync.WaitGroup
	mu       sync.Mutex
	closed   bool
	conns    sets.Set[net.Conn]
}

// add starts tracking conn.
// It reports false if shutdown has already been called,
// in which case the caller is responsible for closing conn.
func (cs *connSet) add(conn net.Conn) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.closed {
		return false
	}
	if cs.conns == nil {
		cs.conns = make(sets.Set[net.Conn])
	}
	cs.conns.Add(conn)
	cs.wg.Add(1)
	return true
}

// remove stops tracking a connection previously passed to add.
func (cs *connSet) remove(conn net.Conn) {
	cs.mu.Lock()
	cs.conns.Delete(conn)
	cs.mu.Unlock()
	cs.wg.Done()
}

// shutdown stops reading from every tracked connection
// and makes later calls to add fail.
func (cs *connSet) shutdown(ctx context.Context) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.closed = true
	for conn := range cs.conns.All() {
		if err := closeRead(conn); err != nil {
			log.Errorf(ctx, "Closing connection: %v", err)
		}
	}
}

// wait blocks until remove has been called for every added connection.
func (cs *connSet) wait() {
	cs.wg.Wait()
}

func acceptLoop(ctx context.Context, l net.Listener, handle func(net.Conn)) error {
	for {
		conn, err := l.Accept()
		if errors.Is(err, net.ErrClosed) {
			return nil
		}
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			conn.Close()
			return nil
		}
		handle(conn)
	}
}

func serveConn(ctx context.Context, conn net.Conn) {
	id := uuid.New()
	log.Debugf(ctx, "Connection %v opened (remote=%v)", id, conn.RemoteAddr())

	codec := textrpc.NewCodec(nopCloser{conn})
	err := textrpc.Serve(ctx, codec)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
		log.Debugf(ctx, "Connection %v: %v", id, err)
	}
	codec.Close()

	if err := conn.Close(); err != nil {
		log.Errorf(ctx, "Connection %v: %v", id, err)
	}
	log.Debugf(ctx, "Connection %v closed", id)
}

// closeRead shuts down the reading side of conn if possible
// so that in-flight responses can still be written.
// Otherwise it closes conn.
func closeRead(conn net.Conn) error {
	if cr, ok := conn.(interface{ CloseRead() error }); ok {
		return cr.CloseRead()
	}
	return conn.Close()
}

func listenUnix(path string) (*net.UnixListener, error) {
	laddr := &net.UnixAddr{
		Net:  "unix",
		Name: path,
	}
	l, err := net.ListenUnix(laddr.Net, laddr)
	if err != nil {
		return nil, err
	}

	if err := os.Chmod(path, 0o777); err != nil {
		l.Close()
		return nil, err
	}

	return l, nil
}

// stdioConn joins standard input and standard output into one stream.
type stdioConn struct {
	io.Reader
	io.Writer
}

func (c stdioConn) Close() error {
	if closer, ok := c.Reader.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

type nopCloser struct {
	io.ReadWriter
}

func (nopCloser) Close() error {
	return nil
}
