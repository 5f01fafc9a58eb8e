// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/google/go-cmp/cmp"
	"textkit.256lights.llc/pkg/internal/testcontext"
	"textkit.256lights.llc/pkg/internal/textrpc"
)

func TestHTTPHandler(t *testing.T) {
	ctx, cancel := testcontext.New(t)
	defer cancel()
	h := newHTTPHandler(ctx)

	t.Run("Split", func(t *testing.T) {
		body := `{"text": "a, b,,c", "delimiter": {"char": ","}, "maxSplits": 2, "skip": "whitespace"}`
		rec := serveTestRequest(h, http.MethodPost, "/split", "application/json", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d; want %d. Body:\n%s", rec.Code, http.StatusOK, rec.Body)
		}
		got := new(textrpc.SplitResult)
		if err := jsonv2.Unmarshal(rec.Body.Bytes(), got); err != nil {
			t.Fatal(err)
		}
		want := &textrpc.SplitResult{
			Segments: []string{"a", " b", ",c"},
			Spans:    [][2]int{{0, 1}, {2, 4}, {5, 7}},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("result (-want +got):\n%s", diff)
		}
	})

	t.Run("SplitNull", func(t *testing.T) {
		body := `{"text": null, "delimiter": {"string": ","}}`
		rec := serveTestRequest(h, http.MethodPost, "/split", "application/json", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d; want %d. Body:\n%s", rec.Code, http.StatusOK, rec.Body)
		}
		if got, want := strings.TrimSpace(rec.Body.String()), `{"segments":[],"spans":[]}`; got != want {
			t.Errorf("body = %s; want %s", got, want)
		}
	})

	t.Run("Replace", func(t *testing.T) {
		body := `{"text": "ab abc", "rules": [{"old": "ab", "new": "x"}, {"old": "abc", "new": "y"}]}`
		rec := serveTestRequest(h, http.MethodPost, "/replace", "application/json; charset=utf-8", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d; want %d. Body:\n%s", rec.Code, http.StatusOK, rec.Body)
		}
		got := new(textrpc.ReplaceResult)
		if err := jsonv2.Unmarshal(rec.Body.Bytes(), got); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(&textrpc.ReplaceResult{Text: "x y", Count: 2}, got); diff != "" {
			t.Errorf("result (-want +got):\n%s", diff)
		}
	})

	errorTests := []struct {
		name        string
		method      string
		path        string
		contentType string
		body        string
		wantStatus  int
	}{
		{
			name:        "WrongMethod",
			method:      http.MethodGet,
			path:        "/split",
			contentType: "application/json",
			wantStatus:  http.StatusMethodNotAllowed,
		},
		{
			name:        "WrongContentType",
			method:      http.MethodPost,
			path:        "/split",
			contentType: "text/plain",
			body:        `{}`,
			wantStatus:  http.StatusUnsupportedMediaType,
		},
		{
			name:        "MalformedJSON",
			method:      http.MethodPost,
			path:        "/replace",
			contentType: "application/json",
			body:        `{"text": `,
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "UnknownField",
			method:      http.MethodPost,
			path:        "/replace",
			contentType: "application/json",
			body:        `{"text": "x", "rules": [], "extra": true}`,
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "MissingDelimiter",
			method:      http.MethodPost,
			path:        "/split",
			contentType: "application/json",
			body:        `{"text": "x", "delimiter": {}}`,
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "NotFound",
			method:      http.MethodPost,
			path:        "/join",
			contentType: "application/json",
			body:        `{}`,
			wantStatus:  http.StatusNotFound,
		},
	}
	for _, test := range errorTests {
		t.Run(test.name, func(t *testing.T) {
			rec := serveTestRequest(h, test.method, test.path, test.contentType, test.body)
			if rec.Code != test.wantStatus {
				t.Errorf("status = %d; want %d. Body:\n%s", rec.Code, test.wantStatus, rec.Body)
			}
		})
	}
}

func serveTestRequest(h http.Handler, method, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
