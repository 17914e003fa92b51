// Copyright (c) 2026 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package toml decodes configuration trees from TOML documents.
//
// Encoding is not provided. Keys keep the order in which they appear in the document.
package toml

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/nil-go/confbox/tree"
)

// Decode parses the TOML document.
func Decode(data []byte) (*tree.Map, error) {
	var values map[string]any
	meta, err := toml.Decode(string(data), &values)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	order := make(map[string]int)
	for i, key := range meta.Keys() {
		path := strings.Join(key, pathSeparator)
		if _, ok := order[path]; !ok {
			order[path] = i
		}
	}

	return table(values, "", order), nil
}

const pathSeparator = "\x00"

func table(values map[string]any, path string, order map[string]int) *tree.Map {
	position := func(key string) int {
		if index, ok := order[join(path, key)]; ok {
			return index
		}

		return math.MaxInt
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b string) int {
		return cmp.Or(cmp.Compare(position(a), position(b)), cmp.Compare(a, b))
	})

	m := tree.New()
	for _, key := range keys {
		m.Set(key, value(values[key], join(path, key), order))
	}

	return m
}

func value(val any, path string, order map[string]int) any {
	switch v := val.(type) {
	case map[string]any:
		return table(v, path, order)
	case []map[string]any:
		list := make([]any, len(v))
		for i, item := range v {
			list[i] = table(item, path, order)
		}

		return list
	case []any:
		list := make([]any, len(v))
		for i, item := range v {
			list[i] = value(item, path, order)
		}

		return list
	default:
		return tree.Normalize(v)
	}
}

func join(path, key string) string {
	if path == "" {
		return key
	}

	return path + pathSeparator + key
}
