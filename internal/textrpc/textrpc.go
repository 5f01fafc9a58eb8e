// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

// Package textrpc serves the splitting and replacement engines
// over [JSON-RPC 2.0] using the Language Server Protocol (LSP) framing format.
//
// [JSON-RPC 2.0]: https://www.jsonrpc.org/specification
package textrpc

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-json-experiment/json/jsontext"
)

// ErrorCode is a number that indicates the type of error
// that occurred during a JSON-RPC.
type ErrorCode int

// Error codes defined in JSON-RPC 2.0.
const (
	ParseError     ErrorCode = -32700
	InvalidRequest ErrorCode = -32600
	MethodNotFound ErrorCode = -32601
	InvalidParams  ErrorCode = -32602
	InternalError  ErrorCode = -32603
)

// RequestCancelled is the Language Server Protocol error code
// for a request whose context was cancelled.
const RequestCancelled ErrorCode = -32800

// CodeFromError returns the error's [ErrorCode],
// if one has been assigned using [Error].
//
// As a special case, if there is a [context.Canceled] or [context.DeadlineExceeded] error
// in the error's Unwrap() chain,
// then CodeFromError returns [RequestCancelled].
func CodeFromError(err error) (_ ErrorCode, ok bool) {
	if err == nil {
		return 0, false
	}
	if e := (*codeError)(nil); errors.As(err, &e) {
		return e.code, true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return RequestCancelled, true
	}
	return 0, false
}

type codeError struct {
	code ErrorCode
	err  error
}

// Error returns a new error that wraps the given error
// and will return the given code from [CodeFromError].
// Error panics if it is given a nil error.
func Error(code ErrorCode, err error) error {
	if err == nil {
		panic("textrpc.Error called with nil error")
	}
	return &codeError{code, err}
}

func (e *codeError) Error() string { return e.err.Error() }
func (e *codeError) Unwrap() error { return e.err }

type requestIDType int8

const (
	nullID requestIDType = iota
	numberID
	stringID
)

// RequestID is an opaque JSON-RPC request ID.
// IDs can be integers, strings, or null
// (although nulls are discouraged).
// The zero value is null.
type RequestID struct {
	n   int64
	s   string
	typ requestIDType
}

// NumberRequestID returns a [RequestID] that holds an integer.
func NumberRequestID(n int64) RequestID {
	return RequestID{n: n, typ: numberID}
}

// StringRequestID returns a [RequestID] that holds a string.
func StringRequestID(s string) RequestID {
	return RequestID{s: s, typ: stringID}
}

func (id RequestID) String() string {
	switch id.typ {
	case nullID:
		return "null"
	case numberID:
		return strconv.FormatInt(id.n, 10)
	case stringID:
		return strconv.Quote(id.s)
	default:
		return "<invalid request id>"
	}
}

// MarshalJSONTo writes the ID as a JSON number, string, or null.
func (id RequestID) MarshalJSONTo(enc *jsontext.Encoder) error {
	switch id.typ {
	case nullID:
		return enc.WriteToken(jsontext.Null)
	case numberID:
		return enc.WriteToken(jsontext.Int(id.n))
	case stringID:
		return enc.WriteToken(jsontext.String(id.s))
	default:
		return fmt.Errorf("invalid request id type %d (internal error)", id.typ)
	}
}

// UnmarshalJSONFrom reads a JSON number, string, or null into id.
func (id *RequestID) UnmarshalJSONFrom(dec *jsontext.Decoder) error {
	tok, err := dec.ReadToken()
	if err != nil {
		return err
	}
	switch kind := tok.Kind(); kind {
	case 'n':
		*id = RequestID{}
	case '"':
		*id = StringRequestID(tok.String())
	case '0':
		n, err := strconv.ParseInt(tok.String(), 10, 64)
		if err != nil {
			return fmt.Errorf("request id %s is not an integer", tok.String())
		}
		*id = NumberRequestID(n)
	default:
		return fmt.Errorf("request id cannot be %v", kind)
	}
	return nil
}
