// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

//go:generate go tool stringer -type=Format -linecomment -output=format_string.go

// Package tablefile reads replacement tables from configuration files.
//
// Every format holds its rules under a "rules" key,
// either as a list of {old, new} objects
// or as a mapping from old string to new string.
// Rule order is preserved in both forms.
// TOML files may also use an array of [[rule]] tables.
package tablefile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	jsonv2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
	"textkit.256lights.llc/pkg/strreplace"
)

// Format is an enumeration of table file formats.
type Format int8

// Supported formats.
const (
	JSON Format = 1 + iota // json
	TOML                   // toml
	YAML                   // yaml
)

// FormatFromPath returns the format implied by the path's extension.
// JSON With Commas and Comments (.jwcc) files are treated as JSON.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jwcc":
		return JSON, true
	case ".toml":
		return TOML, true
	case ".yaml", ".yml":
		return YAML, true
	default:
		return 0, false
	}
}

// Load reads the replacement table in the file at path.
func Load(path string) (strreplace.Table, error) {
	format, ok := FormatFromPath(path)
	if !ok {
		return nil, fmt.Errorf("load %s: unknown table format", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %v", path, err)
	}
	return t, nil
}

// Parse parses a replacement table in the given format.
func Parse(data []byte, format Format) (strreplace.Table, error) {
	switch format {
	case JSON:
		return parseJSON(data)
	case TOML:
		return parseTOML(data)
	case YAML:
		return parseYAML(data)
	default:
		return nil, fmt.Errorf("parse table: unsupported format %v", format)
	}
}

func parseJSON(data []byte) (strreplace.Table, error) {
	data, err := hujson.Standardize(data)
	if err != nil {
		return nil, err
	}
	dec := jsontext.NewDecoder(bytes.NewReader(data))
	tok, err := dec.ReadToken()
	if err != nil {
		return nil, err
	}
	if got := tok.Kind(); got != '{' {
		return nil, fmt.Errorf("table must be an object not a %v", got)
	}

	var t strreplace.Table
	for {
		keyToken, err := dec.ReadToken()
		if err != nil {
			return nil, err
		}
		switch kind := keyToken.Kind(); kind {
		case '}':
			return t, nil
		case '"':
			// Keep going.
		default:
			return nil, fmt.Errorf("unexpected non-string key (%v) in object", kind)
		}
		if keyToken.String() != "rules" {
			if err := dec.SkipValue(); err != nil {
				return nil, err
			}
			continue
		}

		switch kind := dec.PeekKind(); kind {
		case '[':
			if err := jsonv2.UnmarshalDecode(dec, &t, jsonv2.RejectUnknownMembers(true)); err != nil {
				return nil, fmt.Errorf("rules: %v", err)
			}
		case '{':
			if t, err = readJSONRuleObject(dec); err != nil {
				return nil, fmt.Errorf("rules: %v", err)
			}
		default:
			return nil, fmt.Errorf("rules must be an array or object not a %v", kind)
		}
	}
}

// readJSONRuleObject reads an object of old to new strings
// in the order the members appear.
func readJSONRuleObject(dec *jsontext.Decoder) (strreplace.Table, error) {
	if _, err := dec.ReadToken(); err != nil {
		return nil, err
	}
	var t strreplace.Table
	for {
		keyToken, err := dec.ReadToken()
		if err != nil {
			return nil, err
		}
		if keyToken.Kind() == '}' {
			return t, nil
		}
		old := keyToken.String()
		valueToken, err := dec.ReadToken()
		if err != nil {
			return nil, err
		}
		if kind := valueToken.Kind(); kind != '"' {
			return nil, fmt.Errorf("replacement for %q must be a string not a %v", old, kind)
		}
		t.Add(old, valueToken.String())
	}
}

func parseTOML(data []byte) (strreplace.Table, error) {
	var doc struct {
		Rule  []strreplace.Rule `toml:"rule"`
		Rules map[string]string `toml:"rules"`
	}
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
	}

	t := strreplace.Table(doc.Rule)
	// Map iteration order is random, so use the order of the keys in the document.
	for _, key := range md.Keys() {
		if len(key) == 2 && key[0] == "rules" {
			t.Add(key[1], doc.Rules[key[1]])
		}
	}
	return t, nil
}

func parseYAML(data []byte) (strreplace.Table, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		// Empty document.
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("table must be a mapping")
	}

	var t strreplace.Table
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "rules" {
			continue
		}
		rules := root.Content[i+1]
		switch rules.Kind {
		case yaml.SequenceNode:
			if err := rules.Decode(&t); err != nil {
				return nil, fmt.Errorf("rules: %v", err)
			}
		case yaml.MappingNode:
			t = nil
			for j := 0; j+1 < len(rules.Content); j += 2 {
				k, v := rules.Content[j], rules.Content[j+1]
				if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
					return nil, fmt.Errorf("rules: line %d: old and new must be strings", k.Line)
				}
				t.Add(k.Value, v.Value)
			}
		default:
			return nil, fmt.Errorf("rules: line %d: must be a sequence or mapping", rules.Line)
		}
	}
	return t, nil
}
