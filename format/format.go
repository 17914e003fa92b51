// Copyright (c) 2026 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package format dispatches configuration decoding and encoding by format tag.
//
// A [Registry] maps each [Format] to a [Codec]. [Default] returns the registry
// populated with every built-in format:
//
//	ini, php (alias lua), neon, json, json5, yaml (alias yml), toml
//
// The php format is configuration as executable source. Its files are evaluated
// by an embedded Lua interpreter instead of being parsed as text.
package format

import (
	"errors"
	"path/filepath"
	"strings"
)

// Format is the tag of a configuration serialization format.
type Format string

const (
	INI   Format = "ini"
	PHP   Format = "php"
	Lua   Format = "lua"
	NEON  Format = "neon"
	JSON  Format = "json"
	JSON5 Format = "json5"
	YML   Format = "yml"
	YAML  Format = "yaml"
	TOML  Format = "toml"
)

// Flag controls how a tree is encoded.
type Flag uint

const (
	// FlagPretty asks the encoder for multi-line, indented output
	// if the format has a compact form.
	FlagPretty Flag = 1 << iota
)

// DefaultFlag returns the encode flag used when none has been set for the format.
func DefaultFlag(format Format) Flag {
	switch format {
	case JSON, JSON5:
		return FlagPretty
	default:
		return 0
	}
}

// FromPath infers the format from the extension of the path, lower-cased.
func FromPath(path string) Format {
	return Format(strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")))
}

var (
	// ErrUnsupportedFormat is returned for a format tag that has no codec.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrUnsupportedOperation is returned when encoding into a format that can only be decoded.
	ErrUnsupportedOperation = errors.New("unsupported operation")
	// ErrDecode is returned when the source is malformed.
	ErrDecode = errors.New("decode error")
)
