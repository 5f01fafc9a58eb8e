// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

package textrpc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/textproto"
	"strconv"

	"github.com/go-json-experiment/json/jsontext"
)

// maxMessageSize is the largest message body that [ReadMessage] accepts.
const maxMessageSize = 64 << 20 // 64 MiB

// ServerCodec represents a single connection from a server to a client.
// ReadRequest and WriteResponse must be safe to call concurrently with each other,
// but [Serve] guarantees that it will never make multiple concurrent ReadRequest calls
// nor multiple concurrent WriteResponse calls.
//
// WriteResponse must not retain response after it returns.
type ServerCodec interface {
	ReadRequest() (jsontext.Value, error)
	WriteResponse(response jsontext.Value) error
}

// Codec is a [ServerCodec] that exchanges Content-Length framed messages
// over a byte stream.
type Codec struct {
	r *bufio.Reader
	w io.Writer
	c io.Closer
}

// NewCodec returns a new [Codec] that uses the given connection.
func NewCodec(rwc io.ReadWriteCloser) *Codec {
	return &Codec{
		r: bufio.NewReader(rwc),
		w: rwc,
		c: rwc,
	}
}

// ReadRequest implements [ServerCodec].
func (c *Codec) ReadRequest() (jsontext.Value, error) {
	return ReadMessage(c.r)
}

// WriteResponse implements [ServerCodec].
func (c *Codec) WriteResponse(response jsontext.Value) error {
	return WriteMessage(c.w, response)
}

// Close closes the underlying connection.
func (c *Codec) Close() error {
	return c.c.Close()
}

// ReadMessage reads a message header and body from r.
// The header must contain a Content-Length field.
// Other header fields are ignored.
// ReadMessage returns [io.EOF] if r has no more messages.
func ReadMessage(r *bufio.Reader) ([]byte, error) {
	header, err := textproto.NewReader(r).ReadMIMEHeader()
	if err != nil {
		if errors.Is(err, io.EOF) && len(header) > 0 {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	v := header.Get("Content-Length")
	if v == "" {
		return nil, errors.New("message missing Content-Length")
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("invalid Content-Length %q", v)
	}
	if n > maxMessageSize {
		return nil, fmt.Errorf("message too large (%d bytes)", n)
	}
	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("read message body: %w", err)
	}
	return body, nil
}

// WriteMessage writes body to w preceded by a Content-Length header.
// The header and body are sent in a single Write call.
func WriteMessage(w io.Writer, body []byte) error {
	buf := make([]byte, 0, len(body)+len("Content-Length: \r\n\r\n")+20)
	buf = fmt.Appendf(buf, "Content-Length: %d\r\n\r\n", len(body))
	buf = append(buf, body...)
	_, err := w.Write(buf)
	return err
}
