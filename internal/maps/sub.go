// Copyright (c) 2025 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package maps implements path addressing and merging over configuration trees.
package maps

import (
	"strconv"

	"github.com/nil-go/confbox/tree"
)

// Sub returns the value under the given path, or nil if any segment is missing.
// Numeric segments also index into sequences.
func Sub(values *tree.Map, path []string) any {
	var node any = values
	for _, segment := range path {
		switch current := node.(type) {
		case *tree.Map:
			value, ok := current.Get(segment)
			if !ok {
				return nil
			}
			node = value
		case []any:
			index, ok := indexOf(segment, len(current))
			if !ok {
				return nil
			}
			node = current[index]
		default:
			return nil
		}
	}

	return node
}

func indexOf(segment string, length int) (int, bool) {
	index, err := strconv.Atoi(segment)
	if err != nil || index < 0 || index >= length {
		return 0, false
	}

	return index, true
}
