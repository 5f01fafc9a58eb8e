// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/gorilla/handlers"
	"textkit.256lights.llc/pkg/internal/textrpc"
	"textkit.256lights.llc/pkg/strsplit"
	"zombiezen.com/go/log"
)

const maxHTTPRequestSize = 4 << 20

func serveHTTP(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           newHTTPHandler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}
	log.Infof(ctx, "Listening on http://%v", l.Addr())

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		log.Infof(ctx, "Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf(ctx, "HTTP shutdown: %v", err)
		}
	}()

	err = srv.Serve(l)
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-shutdownDone
	return nil
}

// newHTTPHandler returns the HTTP front of the server.
// Each route accepts a POST with the same JSON parameters
// as the JSON-RPC method of the same name.
func newHTTPHandler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/split", handlers.MethodHandler{
		http.MethodPost: http.HandlerFunc(serveSplitHTTP),
	})
	mux.Handle("/replace", handlers.MethodHandler{
		http.MethodPost: http.HandlerFunc(serveReplaceHTTP),
	})
	h := handlers.ContentTypeHandler(mux, "application/json")
	h = handlers.CompressHandler(h)
	return handlers.LoggingHandler(&logWriter{ctx: ctx}, h)
}

func serveSplitHTTP(w http.ResponseWriter, r *http.Request) {
	params := new(textrpc.SplitParams)
	if !readJSONRequest(w, r, params) {
		return
	}
	result, err := textrpc.Split(params)
	if err != nil {
		writeJSONError(w, r, err)
		return
	}
	writeJSONResponse(w, r, result)
}

func serveReplaceHTTP(w http.ResponseWriter, r *http.Request) {
	params := new(textrpc.ReplaceParams)
	if !readJSONRequest(w, r, params) {
		return
	}
	writeJSONResponse(w, r, textrpc.Replace(params))
}

func readJSONRequest(w http.ResponseWriter, r *http.Request, params any) bool {
	body := http.MaxBytesReader(w, r.Body, maxHTTPRequestSize)
	if err := jsonv2.UnmarshalRead(body, params, jsonv2.RejectUnknownMembers(true)); err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			http.Error(w, "Request too large", http.StatusRequestEntityTooLarge)
			return false
		}
		http.Error(w, "Invalid request: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSONResponse(w http.ResponseWriter, r *http.Request, result any) {
	data, err := jsonv2.Marshal(result)
	if err != nil {
		log.Errorf(r.Context(), "Marshal %s response: %v", r.URL.Path, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	data = append(data, '\n')
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if _, err := w.Write(data); err != nil {
		log.Debugf(r.Context(), "Write %s response: %v", r.URL.Path, err)
	}
}

func writeJSONError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if code, ok := textrpc.CodeFromError(err); ok && code == textrpc.InvalidParams {
		status = http.StatusBadRequest
	} else {
		log.Errorf(r.Context(), "%s: %v", r.URL.Path, err)
	}
	var body struct {
		Error string `json:"error"`
	}
	body.Error = err.Error()
	data, marshalErr := jsonv2.Marshal(body)
	if marshalErr != nil {
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}

// logWriter is an [io.Writer] that sends each line
// written to it to the logger as an informational message.
type logWriter struct {
	ctx context.Context
}

func (lw *logWriter) Write(p []byte) (int, error) {
	for line := range strsplit.New(string(p), strsplit.ByChar('\n'), strsplit.SkipEmpty).All() {
		log.Infof(lw.ctx, "%s", line)
	}
	return len(p), nil
}
