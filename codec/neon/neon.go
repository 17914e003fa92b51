// Copyright (c) 2026 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package neon decodes and encodes configuration trees as NEON.
//
// NEON shares the block and flow syntax of YAML, so documents are parsed
// with a YAML parser once tab indentation has been expanded.
package neon

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/nil-go/confbox/tree"
)

// Decode parses the NEON document, which must be a mapping.
func Decode(data []byte) (*tree.Map, error) {
	var document any
	if err := yaml.UnmarshalWithOptions(expandTabs(data), &document, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	switch doc := document.(type) {
	case nil:
		return tree.New(), nil
	case yaml.MapSlice:
		return fromMapSlice(doc), nil
	default:
		return nil, errNotMapping
	}
}

// expandTabs replaces the tabs indenting each line with spaces.
func expandTabs(data []byte) []byte {
	if !bytes.Contains(data, []byte{'\t'}) {
		return data
	}

	lines := bytes.SplitAfter(data, []byte{'\n'})
	for i, line := range lines {
		indent := 0
		for indent < len(line) && (line[indent] == '\t' || line[indent] == ' ') {
			indent++
		}
		if bytes.IndexByte(line[:indent], '\t') >= 0 {
			lines[i] = append(bytes.ReplaceAll(line[:indent], []byte{'\t'}, []byte("    ")), line[indent:]...)
		}
	}

	return bytes.Join(lines, nil)
}

func fromMapSlice(slice yaml.MapSlice) *tree.Map {
	values := tree.New()
	for _, item := range slice {
		values.Set(fmt.Sprint(item.Key), fromValue(item.Value))
	}

	return values
}

func fromValue(value any) any {
	switch val := value.(type) {
	case yaml.MapSlice:
		return fromMapSlice(val)
	case []any:
		list := make([]any, len(val))
		for i, item := range val {
			list[i] = fromValue(item)
		}

		return list
	default:
		return tree.Normalize(val)
	}
}

// Encode serializes the tree into NEON.
// It writes the block style with 4-space indentation if prettify is set,
// and a single flow mapping otherwise.
func Encode(values *tree.Map, prettify bool) ([]byte, error) {
	options := []yaml.EncodeOption{yaml.Indent(4), yaml.IndentSequence(true)}
	if !prettify {
		options = []yaml.EncodeOption{yaml.Flow(true)}
	}

	data, err := yaml.MarshalWithOptions(toMapSlice(values), options...)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	return data, nil
}

func toMapSlice(values *tree.Map) yaml.MapSlice {
	slice := make(yaml.MapSlice, 0, values.Len())
	values.Range(func(key string, value any) bool {
		slice = append(slice, yaml.MapItem{Key: key, Value: toValue(value)})

		return true
	})

	return slice
}

func toValue(value any) any {
	switch val := value.(type) {
	case *tree.Map:
		return toMapSlice(val)
	case []any:
		list := make([]any, len(val))
		for i, item := range val {
			list[i] = toValue(item)
		}

		return list
	default:
		return val
	}
}

var errNotMapping = errors.New("top-level NEON value must be a mapping")
