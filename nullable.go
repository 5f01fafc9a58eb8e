// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

// Package textkit holds types shared by the textkit packages.
// The splitting engine lives in [textkit.256lights.llc/pkg/strsplit]
// and the multi-pattern replacer in [textkit.256lights.llc/pkg/strreplace].
package textkit

import (
	"fmt"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Nullable wraps a type to distinguish an absent value from a zero value.
// The zero value is null.
//
// The splitting engine uses Nullable[string] to tell a null input,
// which produces no segments,
// apart from an empty input, which produces a single empty segment.
type Nullable[T any] struct {
	X     T
	Valid bool
}

// NonNull returns a [Nullable] that wraps the given value.
func NonNull[T any](x T) Nullable[T] {
	return Nullable[T]{x, true}
}

// Get returns n.X and n.Valid.
func (n Nullable[T]) Get() (T, bool) {
	return n.X, n.Valid
}

// String converts n.X to a string or returns "null" if n is not valid.
func (n Nullable[T]) String() string {
	if !n.Valid {
		return "null"
	}
	return fmt.Sprint(n.X)
}

// MarshalJSONTo encodes n.X if n.Valid is true.
// Otherwise, MarshalJSONTo writes a null token.
func (n Nullable[T]) MarshalJSONTo(enc *jsontext.Encoder) error {
	if !n.Valid {
		return enc.WriteToken(jsontext.Null)
	}
	return jsonv2.MarshalEncode(enc, n.X)
}

// UnmarshalJSONFrom unmarshals the next value from the JSON decoder into n.X
// unless it receives a JSON null, in which case n is zeroed out.
func (n *Nullable[T]) UnmarshalJSONFrom(dec *jsontext.Decoder) error {
	if dec.PeekKind() == 'n' {
		if _, err := dec.ReadToken(); err != nil {
			return err
		}
		*n = Nullable[T]{}
		return nil
	}
	err := jsonv2.UnmarshalDecode(dec, &n.X)
	n.Valid = err == nil
	return err
}
