// Copyright 2025 The textkit Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"iter"
	"os"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/tailscale/hujson"
	"textkit.256lights.llc/pkg/strsplit"
)

type globalConfig struct {
	Debug            bool   `json:"debug"`
	TableDirectory   string `json:"tableDirectory"`
	DefaultSeparator string `json:"defaultSeparator"`
	Skip             string `json:"skip"`
	Socket           string `json:"socket"`
}

// defaultGlobalConfig returns the configuration used
// before consulting the environment or any files.
func defaultGlobalConfig() *globalConfig {
	return &globalConfig{
		DefaultSeparator: ",",
		Socket:           defaultSocketPath(),
	}
}

func (g *globalConfig) mergeEnvironment() error {
	if dir := os.Getenv("TEXTKIT_TABLES"); dir != "" {
		g.TableDirectory = dir
	}
	if path := os.Getenv("TEXTKIT_SOCKET"); path != "" {
		g.Socket = path
	}
	return nil
}

func (g *globalConfig) mergeFiles(paths iter.Seq[string]) error {
	for path := range paths {
		huJSONData, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
		jsonData, err := hujson.Standardize(huJSONData)
		if err != nil {
			return fmt.Errorf("read %s: %v", path, err)
		}
		if err := jsonv2.Unmarshal(jsonData, g, jsonv2.RejectUnknownMembers(false)); err != nil {
			return fmt.Errorf("read %s: %v", path, err)
		}
	}

	return nil
}

// UnmarshalJSONFrom unmarshals the configuration object from the JSON decoder,
// merging any fields in the JSON object with existing values.
func (g *globalConfig) UnmarshalJSONFrom(in *jsontext.Decoder) error {
	tok, err := in.ReadToken()
	if err != nil {
		return err
	}
	if got := tok.Kind(); got != '{' {
		return fmt.Errorf("config must be an object not a %v", got)
	}

	for {
		keyToken, err := in.ReadToken()
		if err != nil {
			return err
		}
		switch kind := keyToken.Kind(); kind {
		case '}':
			return nil
		case '"':
			// Keep going.
		default:
			return fmt.Errorf("unexpected non-string key (%v) in object", kind)
		}

		switch k := keyToken.String(); k {
		case "debug":
			if err := jsonv2.UnmarshalDecode(in, &g.Debug); err != nil {
				return fmt.Errorf("unmarshal config.debug: %w", err)
			}
		case "tableDirectory":
			if err := jsonv2.UnmarshalDecode(in, &g.TableDirectory); err != nil {
				return fmt.Errorf("unmarshal config.tableDirectory: %w", err)
			}
		case "defaultSeparator":
			if err := jsonv2.UnmarshalDecode(in, &g.DefaultSeparator); err != nil {
				return fmt.Errorf("unmarshal config.defaultSeparator: %w", err)
			}
		case "skip":
			if err := jsonv2.UnmarshalDecode(in, &g.Skip); err != nil {
				return fmt.Errorf("unmarshal config.skip: %w", err)
			}
		case "socket":
			if err := jsonv2.UnmarshalDecode(in, &g.Socket); err != nil {
				return fmt.Errorf("unmarshal config.socket: %w", err)
			}
		default:
			if reject, _ := jsonv2.GetOption(in.Options(), jsonv2.RejectUnknownMembers); reject {
				return fmt.Errorf("unmarshal config: unknown field %q", k)
			}
			if err := in.SkipValue(); err != nil {
				return err
			}
		}
	}
}

func (g *globalConfig) validate() error {
	if _, ok := strsplit.PredicateByName(g.Skip); !ok {
		return fmt.Errorf("unknown skip filter %q (want \"empty\" or \"whitespace\")", g.Skip)
	}
	if g.Socket == "" {
		return fmt.Errorf("socket path not set")
	}
	return nil
}
