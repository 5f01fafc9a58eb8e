// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"context"
	"io"
	"net"
	"testing"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/google/go-cmp/cmp"
	"textkit.256lights.llc/pkg/internal/testcontext"
	"textkit.256lights.llc/pkg/internal/textrpc"
)

func TestServeListeners(t *testing.T) {
	ctx, cancel := testcontext.New(t)
	defer cancel()
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	done := make(chan error, 1)
	go func() {
		done <- serveListeners(ctx, []net.Listener{l})
	}()

	conn, err := net.Dial("tcp", l.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	request := []byte(`{"jsonrpc":"2.0","id":"a","method":"split","params":{"text":"x=1&y=2","delimiter":{"anyOf":"=&"}}}`)
	if err := textrpc.WriteMessage(conn, request); err != nil {
		t.Fatal(err)
	}
	body, err := textrpc.ReadMessage(bufio.NewReader(conn))
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		ID     string               `json:"id"`
		Result *textrpc.SplitResult `json:"result"`
	}
	if err := jsonv2.Unmarshal(body, &got, jsonv2.RejectUnknownMembers(false)); err != nil {
		t.Fatal(err)
	}
	want := &textrpc.SplitResult{
		Segments: []string{"x", "1", "y", "2"},
		Spans:    [][2]int{{0, 1}, {2, 3}, {4, 5}, {6, 7}},
	}
	if got.ID != "a" {
		t.Errorf("id = %q; want %q", got.ID, "a")
	}
	if diff := cmp.Diff(want, got.Result); diff != "" {
		t.Errorf("result (-want +got):\n%s", diff)
	}

	stop()
	if err := <-done; err != nil {
		t.Errorf("serveListeners: %v", err)
	}
	if _, err := conn.Read(make([]byte, 1)); err != io.EOF {
		t.Errorf("after shutdown, conn.Read(...) error = %v; want %v", err, io.EOF)
	}
}

func TestConnSetShutdown(t *testing.T) {
	ctx, cancel := testcontext.New(t)
	defer cancel()

	cs := new(connSet)
	served, client := net.Pipe()
	defer client.Close()
	if !cs.add(served) {
		t.Fatal("add before shutdown = false; want true")
	}

	cs.shutdown(ctx)
	// net.Pipe connections have no CloseRead, so shutdown closes them.
	if _, err := client.Read(make([]byte, 1)); err != io.EOF {
		t.Errorf("after shutdown, client.Read(...) error = %v; want %v", err, io.EOF)
	}

	late, lateClient := net.Pipe()
	defer late.Close()
	defer lateClient.Close()
	if cs.add(late) {
		t.Error("add after shutdown = true; want false")
	}

	waitDone := make(chan struct{})
	go func() {
		cs.wait()
		close(waitDone)
	}()
	cs.remove(served)
	select {
	case <-waitDone:
	case <-ctx.Done():
		t.Fatal("wait did not return after the only connection was removed")
	}
}
