// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

package textrpc

import (
	"context"
	"errors"
	"fmt"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"textkit.256lights.llc/pkg"
	"textkit.256lights.llc/pkg/strreplace"
	"textkit.256lights.llc/pkg/strsplit"
	"zombiezen.com/go/log"
)

// Method names.
const (
	SplitMethod   = "split"
	ReplaceMethod = "replace"
)

// SplitParams is the set of parameters for a [SplitMethod] request.
type SplitParams struct {
	// Text is the text to split.
	// A null or missing text produces no segments.
	Text      textkit.Nullable[string] `json:"text"`
	Delimiter DelimiterSpec            `json:"delimiter"`
	// MaxSplits limits the number of delimiter matches if set.
	MaxSplits *int `json:"maxSplits,omitempty"`
	// Skip names a segment filter: "empty" or "whitespace".
	Skip string `json:"skip,omitempty"`
}

// DelimiterSpec is the JSON description of a [strsplit.Delimiter].
// Exactly one field must be set.
type DelimiterSpec struct {
	String *string `json:"string,omitempty"`
	Char   *string `json:"char,omitempty"`
	AnyOf  *string `json:"anyOf,omitempty"`
	Length *int    `json:"length,omitempty"`
}

// Delimiter returns the [strsplit.Delimiter] named by the set field.
func (spec *DelimiterSpec) Delimiter() (strsplit.Delimiter, error) {
	var d strsplit.Delimiter
	n := 0
	if spec.String != nil {
		d = strsplit.ByString(*spec.String)
		n++
	}
	if spec.Char != nil {
		if len(*spec.Char) != 1 {
			return nil, fmt.Errorf("delimiter char %q is not a single byte", *spec.Char)
		}
		d = strsplit.ByChar((*spec.Char)[0])
		n++
	}
	if spec.AnyOf != nil {
		d = strsplit.ByAnyChar(*spec.AnyOf)
		n++
	}
	if spec.Length != nil {
		if *spec.Length <= 0 {
			return nil, fmt.Errorf("delimiter length %d is not positive", *spec.Length)
		}
		d = strsplit.ByLength(*spec.Length)
		n++
	}
	switch n {
	case 0:
		return nil, errors.New("delimiter not specified")
	case 1:
		return d, nil
	default:
		return nil, errors.New("delimiter has multiple kinds")
	}
}

// SplitResult is the result of a [SplitMethod] request.
type SplitResult struct {
	Segments []string `json:"segments"`
	// Spans holds the [start, end) byte offsets of each segment.
	Spans [][2]int `json:"spans"`
}

// Split runs a split request.
// Invalid parameters return an [InvalidParams] error.
func Split(params *SplitParams) (*SplitResult, error) {
	d, err := params.Delimiter.Delimiter()
	if err != nil {
		return nil, Error(InvalidParams, err)
	}
	if params.MaxSplits != nil {
		if *params.MaxSplits < 0 {
			return nil, Error(InvalidParams, fmt.Errorf("maxSplits %d is negative", *params.MaxSplits))
		}
		d = strsplit.MaxSplits(d, *params.MaxSplits)
	}
	p, ok := strsplit.PredicateByName(params.Skip)
	if !ok {
		return nil, Error(InvalidParams, fmt.Errorf("unknown skip %q", params.Skip))
	}

	s := strsplit.NewNullable(params.Text, d, p)
	result := &SplitResult{
		Segments: []string{},
		Spans:    [][2]int{},
	}
	for it := s.Begin(); !it.Done(); it.Next() {
		span := it.Span()
		result.Segments = append(result.Segments, it.Value())
		result.Spans = append(result.Spans, [2]int{span.Start, span.End})
	}
	return result, nil
}

// ReplaceParams is the set of parameters for a [ReplaceMethod] request.
type ReplaceParams struct {
	Text  string           `json:"text"`
	Rules strreplace.Table `json:"rules"`
}

// ReplaceResult is the result of a [ReplaceMethod] request.
type ReplaceResult struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// Replace runs a replace request.
func Replace(params *ReplaceParams) *ReplaceResult {
	text, n := strreplace.Replace(params.Text, params.Rules)
	return &ReplaceResult{Text: text, Count: n}
}

// call runs the named method and returns its JSON-encoded result.
func call(ctx context.Context, method string, params jsontext.Value) (jsontext.Value, error) {
	var result any
	switch method {
	case SplitMethod:
		p := new(SplitParams)
		if err := unmarshalParams(method, params, p); err != nil {
			return nil, err
		}
		r, err := Split(p)
		if err != nil {
			return nil, err
		}
		log.Debugf(ctx, "Split into %d segments", len(r.Segments))
		result = r
	case ReplaceMethod:
		p := new(ReplaceParams)
		if err := unmarshalParams(method, params, p); err != nil {
			return nil, err
		}
		r := Replace(p)
		log.Debugf(ctx, "Made %d replacements with %d rules", r.Count, len(p.Rules))
		result = r
	default:
		return nil, Error(MethodNotFound, fmt.Errorf("method %q not found", method))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := jsonv2.Marshal(result)
	if err != nil {
		return nil, Error(InternalError, err)
	}
	return data, nil
}

func unmarshalParams(method string, params jsontext.Value, dst any) error {
	if len(params) == 0 {
		return Error(InvalidParams, fmt.Errorf("%s: missing params", method))
	}
	if err := jsonv2.Unmarshal(params, dst, jsonv2.RejectUnknownMembers(true)); err != nil {
		return Error(InvalidParams, fmt.Errorf("%s: %v", method, err))
	}
	return nil
}
