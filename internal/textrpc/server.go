// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

package textrpc

import (
	"context"
	"errors"
	"fmt"
	"sync"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"zombiezen.com/go/log"
)

// cancelMethod is the notification a client sends
// to cancel one of its in-flight requests.
const cancelMethod = "$/cancelRequest"

type request struct {
	Version string `json:"jsonrpc"`
	// ID is empty for notifications.
	ID     jsontext.Value `json:"id"`
	Method string         `json:"method"`
	Params jsontext.Value `json:"params"`
}

type response struct {
	Version string         `json:"jsonrpc"`
	ID      RequestID      `json:"id"`
	Result  jsontext.Value `json:"result,omitzero"`
	Error   *errorObject   `json:"error,omitzero"`
}

type errorObject struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

type server struct {
	codec   ServerCodec
	writeMu sync.Mutex

	mu       sync.Mutex
	inflight map[RequestID]context.CancelFunc
}

// Serve answers [SplitMethod] and [ReplaceMethod] requests read from codec
// until ReadRequest returns an error.
// Requests are run concurrently.
// A "$/cancelRequest" notification cancels the in-flight request with the given ID.
// Other notifications are ignored.
//
// Serve waits for in-flight requests to finish
// and then returns the error from ReadRequest.
func Serve(ctx context.Context, codec ServerCodec) error {
	s := &server{
		codec:    codec,
		inflight: make(map[RequestID]context.CancelFunc),
	}
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		msg, err := codec.ReadRequest()
		if err != nil {
			return err
		}
		if !jsontext.Value(msg).IsValid() {
			s.writeError(ctx, RequestID{}, Error(ParseError, errors.New("request is not valid JSON")))
			continue
		}
		req := new(request)
		if err := jsonv2.Unmarshal(msg, req); err != nil {
			s.writeError(ctx, RequestID{}, Error(InvalidRequest, err))
			continue
		}
		notification := len(req.ID) == 0
		var id RequestID
		if !notification {
			if err := jsonv2.Unmarshal(req.ID, &id); err != nil {
				s.writeError(ctx, RequestID{}, Error(InvalidRequest, err))
				continue
			}
		}
		if req.Version != "2.0" {
			if !notification {
				s.writeError(ctx, id, Error(InvalidRequest, fmt.Errorf("unsupported jsonrpc version %q", req.Version)))
			}
			continue
		}

		switch {
		case req.Method == cancelMethod:
			s.cancel(ctx, req.Params)
			if !notification {
				s.write(ctx, &response{ID: id, Result: jsontext.Value("null")})
			}
			continue
		case notification:
			log.Debugf(ctx, "Ignoring %q notification", req.Method)
			continue
		}

		callCtx, cancel := context.WithCancel(ctx)
		s.mu.Lock()
		_, dup := s.inflight[id]
		if !dup {
			s.inflight[id] = cancel
		}
		s.mu.Unlock()
		if dup {
			cancel()
			s.writeError(ctx, id, Error(InvalidRequest, fmt.Errorf("request %v already in progress", id)))
			continue
		}

		wg.Go(func() {
			defer func() {
				s.mu.Lock()
				delete(s.inflight, id)
				s.mu.Unlock()
				cancel()
			}()

			result, err := call(callCtx, req.Method, req.Params)
			if err != nil {
				s.writeError(ctx, id, err)
				return
			}
			s.write(ctx, &response{ID: id, Result: result})
		})
	}
}

func (s *server) cancel(ctx context.Context, params jsontext.Value) {
	var p struct {
		ID RequestID `json:"id"`
	}
	if err := jsonv2.Unmarshal(params, &p); err != nil {
		log.Debugf(ctx, "Invalid %s params: %v", cancelMethod, err)
		return
	}
	s.mu.Lock()
	cancel := s.inflight[p.ID]
	s.mu.Unlock()
	if cancel == nil {
		log.Debugf(ctx, "Cancel for %v ignored: no such request in progress", p.ID)
		return
	}
	log.Debugf(ctx, "Cancelling request %v", p.ID)
	cancel()
}

func (s *server) writeError(ctx context.Context, id RequestID, err error) {
	code, ok := CodeFromError(err)
	if !ok {
		code = InternalError
	}
	if code == InternalError {
		log.Errorf(ctx, "Request %v: %v", id, err)
	}
	s.write(ctx, &response{
		ID: id,
		Error: &errorObject{
			Code:    code,
			Message: err.Error(),
		},
	})
}

func (s *server) write(ctx context.Context, resp *response) {
	resp.Version = "2.0"
	data, err := jsonv2.Marshal(resp)
	if err != nil {
		log.Errorf(ctx, "Marshal response for %v: %v", resp.ID, err)
		return
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.codec.WriteResponse(data); err != nil {
		log.Debugf(ctx, "Write response for %v: %v", resp.ID, err)
	}
}
