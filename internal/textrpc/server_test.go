// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

package textrpc

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"testing"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"textkit.256lights.llc/pkg/internal/testcontext"
)

func TestServe(t *testing.T) {
	tests := []struct {
		name      string
		requests  []string
		responses []map[string]any
	}{
		{
			name:     "Split",
			requests: []string{`{"jsonrpc": "2.0", "id": 1, "method": "split", "params": {"text": "a,b", "delimiter": {"char": ","}}}`},
			responses: []map[string]any{{
				"jsonrpc": "2.0",
				"id":      1.0,
				"result": map[string]any{
					"segments": []any{"a", "b"},
					"spans":    []any{[]any{0.0, 1.0}, []any{2.0, 3.0}},
				},
			}},
		},
		{
			name:     "SplitNullText",
			requests: []string{`{"jsonrpc": "2.0", "id": "null-text", "method": "split", "params": {"text": null, "delimiter": {"char": ","}}}`},
			responses: []map[string]any{{
				"jsonrpc": "2.0",
				"id":      "null-text",
				"result": map[string]any{
					"segments": []any{},
					"spans":    []any{},
				},
			}},
		},
		{
			name:     "SplitMaxSplits",
			requests: []string{`{"jsonrpc": "2.0", "id": 1, "method": "split", "params": {"text": "k=v=w", "delimiter": {"string": "="}, "maxSplits": 1}}`},
			responses: []map[string]any{{
				"jsonrpc": "2.0",
				"id":      1.0,
				"result": map[string]any{
					"segments": []any{"k", "v=w"},
					"spans":    []any{[]any{0.0, 1.0}, []any{2.0, 5.0}},
				},
			}},
		},
		{
			name:     "Replace",
			requests: []string{`{"jsonrpc": "2.0", "id": 3, "method": "replace", "params": {"text": "abc", "rules": [{"old": "b", "new": "x"}]}}`},
			responses: []map[string]any{{
				"jsonrpc": "2.0",
				"id":      3.0,
				"result": map[string]any{
					"text":  "axc",
					"count": 1.0,
				},
			}},
		},
		{
			name: "Batch",
			requests: []string{
				`{"jsonrpc": "2.0", "id": 1, "method": "split", "params": {"text": "x y", "delimiter": {"anyOf": " "}}}`,
				`{"jsonrpc": "2.0", "id": 2, "method": "replace", "params": {"text": "aaa", "rules": [{"old": "aa", "new": "b"}]}}`,
				`{"jsonrpc": "2.0", "id": 3, "method": "split", "params": {"text": "abcde", "delimiter": {"length": 2}}}`,
			},
			responses: []map[string]any{
				{
					"jsonrpc": "2.0",
					"id":      1.0,
					"result": map[string]any{
						"segments": []any{"x", "y"},
						"spans":    []any{[]any{0.0, 1.0}, []any{2.0, 3.0}},
					},
				},
				{
					"jsonrpc": "2.0",
					"id":      2.0,
					"result": map[string]any{
						"text":  "ba",
						"count": 1.0,
					},
				},
				{
					"jsonrpc": "2.0",
					"id":      3.0,
					"result": map[string]any{
						"segments": []any{"ab", "cd", "e"},
						"spans":    []any{[]any{0.0, 2.0}, []any{2.0, 4.0}, []any{4.0, 5.0}},
					},
				},
			},
		},
		{
			name:     "NoDelimiter",
			requests: []string{`{"jsonrpc": "2.0", "id": 4, "method": "split", "params": {"text": "a", "delimiter": {}}}`},
			responses: []map[string]any{{
				"jsonrpc": "2.0",
				"id":      4.0,
				"error":   map[string]any{"code": -32602.0},
			}},
		},
		{
			name:     "UnknownParam",
			requests: []string{`{"jsonrpc": "2.0", "id": 5, "method": "replace", "params": {"text": "abc", "bogus": true}}`},
			responses: []map[string]any{{
				"jsonrpc": "2.0",
				"id":      5.0,
				"error":   map[string]any{"code": -32602.0},
			}},
		},
		{
			name:     "MissingParams",
			requests: []string{`{"jsonrpc": "2.0", "id": 6, "method": "split"}`},
			responses: []map[string]any{{
				"jsonrpc": "2.0",
				"id":      6.0,
				"error":   map[string]any{"code": -32602.0},
			}},
		},
		{
			name:     "MethodNotFound",
			requests: []string{`{"jsonrpc": "2.0", "id": 7, "method": "join", "params": {}}`},
			responses: []map[string]any{{
				"jsonrpc": "2.0",
				"id":      7.0,
				"error":   map[string]any{"code": -32601.0},
			}},
		},
		{
			name:     "ParseError",
			requests: []string{`{"jsonrpc": "2.0", "id": 8, "method": "split"`},
			responses: []map[string]any{{
				"jsonrpc": "2.0",
				"id":      nil,
				"error":   map[string]any{"code": -32700.0},
			}},
		},
		{
			name:     "NotAnObject",
			requests: []string{`["split"]`},
			responses: []map[string]any{{
				"jsonrpc": "2.0",
				"id":      nil,
				"error":   map[string]any{"code": -32600.0},
			}},
		},
		{
			name:     "WrongVersion",
			requests: []string{`{"jsonrpc": "1.0", "id": 9, "method": "split", "params": {"text": "a", "delimiter": {"char": ","}}}`},
			responses: []map[string]any{{
				"jsonrpc": "2.0",
				"id":      9.0,
				"error":   map[string]any{"code": -32600.0},
			}},
		},
		{
			name:     "FractionalID",
			requests: []string{`{"jsonrpc": "2.0", "id": 1.5, "method": "split", "params": {"text": "a", "delimiter": {"char": ","}}}`},
			responses: []map[string]any{{
				"jsonrpc": "2.0",
				"id":      nil,
				"error":   map[string]any{"code": -32600.0},
			}},
		},
		{
			name: "Notification",
			requests: []string{
				`{"jsonrpc": "2.0", "method": "split", "params": {"text": "a,b", "delimiter": {"char": ","}}}`,
				`{"jsonrpc": "2.0", "method": "$/cancelRequest", "params": {"id": 99}}`,
			},
		},
		{
			name:     "CancelWithID",
			requests: []string{`{"jsonrpc": "2.0", "id": 10, "method": "$/cancelRequest", "params": {"id": 99}}`},
			responses: []map[string]any{{
				"jsonrpc": "2.0",
				"id":      10.0,
				"result":  nil,
			}},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctx, cancel := testcontext.New(t)
			defer cancel()

			got := serveAll(ctx, t, test.requests)
			if diff := cmp.Diff(test.responses, got, responseOptions()); diff != "" {
				t.Errorf("responses (-want +got):\n%s", diff)
			}
		})
	}
}

func TestServeCancelledContext(t *testing.T) {
	ctx, cancel := testcontext.New(t)
	defer cancel()
	ctx, cancelServe := context.WithCancel(ctx)
	cancelServe()

	got := serveAll(ctx, t, []string{
		`{"jsonrpc": "2.0", "id": 1, "method": "split", "params": {"text": "a,b", "delimiter": {"char": ","}}}`,
	})
	want := []map[string]any{{
		"jsonrpc": "2.0",
		"id":      1.0,
		"error":   map[string]any{"code": -32800.0},
	}}
	if diff := cmp.Diff(want, got, responseOptions()); diff != "" {
		t.Errorf("responses (-want +got):\n%s", diff)
	}
}

func TestServerCancel(t *testing.T) {
	ctx, cancel := testcontext.New(t)
	defer cancel()

	callCtx, cancelCall := context.WithCancel(ctx)
	defer cancelCall()
	s := &server{
		inflight: map[RequestID]context.CancelFunc{
			NumberRequestID(5): cancelCall,
		},
	}
	s.cancel(ctx, jsontext.Value(`{"id": "5"}`))
	if err := callCtx.Err(); err != nil {
		t.Errorf("cancelling string ID \"5\" cancelled numeric ID 5: %v", err)
	}
	s.cancel(ctx, jsontext.Value(`{"id": 5}`))
	if err := callCtx.Err(); err != context.Canceled {
		t.Errorf("after cancelling ID 5, callCtx.Err() = %v; want %v", err, context.Canceled)
	}
}

func TestRequestIDJSON(t *testing.T) {
	tests := []struct {
		json string
		id   RequestID
	}{
		{`null`, RequestID{}},
		{`42`, NumberRequestID(42)},
		{`-7`, NumberRequestID(-7)},
		{`"abc"`, StringRequestID("abc")},
	}
	for _, test := range tests {
		var got RequestID
		if err := jsonv2.Unmarshal([]byte(test.json), &got); err != nil {
			t.Errorf("Unmarshal(%s): %v", test.json, err)
			continue
		}
		if got != test.id {
			t.Errorf("Unmarshal(%s) = %v; want %v", test.json, got, test.id)
		}
		data, err := jsonv2.Marshal(test.id)
		if err != nil {
			t.Errorf("Marshal(%v): %v", test.id, err)
			continue
		}
		if string(data) != test.json {
			t.Errorf("Marshal(%v) = %s; want %s", test.id, data, test.json)
		}
	}

	for _, bad := range []string{`1.5`, `true`, `{}`} {
		var id RequestID
		if err := jsonv2.Unmarshal([]byte(bad), &id); err == nil {
			t.Errorf("Unmarshal(%s) = %v, <nil>; want error", bad, id)
		}
	}
}

// serveAll runs [Serve] over the given requests
// and returns the decoded responses.
func serveAll(ctx context.Context, tb testing.TB, requests []string) []map[string]any {
	tb.Helper()
	codec := &testCodec{requests: requests}
	if err := Serve(ctx, codec); err != io.EOF {
		tb.Errorf("Serve(...) = %v; want %v", err, io.EOF)
	}
	var got []map[string]any
	for _, data := range codec.responses {
		var resp map[string]any
		if err := jsonv2.Unmarshal(data, &resp); err != nil {
			tb.Errorf("Invalid response %s: %v", data, err)
			continue
		}
		got = append(got, resp)
	}
	return got
}

// responseOptions ignores error messages
// and the order in which concurrent responses were written.
func responseOptions() cmp.Option {
	return cmp.Options{
		cmpopts.SortSlices(func(a, b map[string]any) bool {
			return fmt.Sprint(a["id"]) < fmt.Sprint(b["id"])
		}),
		cmpopts.IgnoreMapEntries(func(k string, v any) bool {
			return k == "message"
		}),
		cmpopts.EquateEmpty(),
	}
}

type testCodec struct {
	requests []string

	mu        sync.Mutex
	responses []jsontext.Value
}

func (c *testCodec) ReadRequest() (jsontext.Value, error) {
	if len(c.requests) == 0 {
		return nil, io.EOF
	}
	req := c.requests[0]
	c.requests = c.requests[1:]
	return jsontext.Value(req), nil
}

func (c *testCodec) WriteResponse(response jsontext.Value) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses = append(c.responses, slices.Clone(response))
	return nil
}
