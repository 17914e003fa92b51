// Copyright (c) 2026 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package maps

import (
	"fmt"
	"strings"

	"github.com/nil-go/confbox/tree"
)

// Insert stores the value under the given path of dst.
// Missing intermediate maps are created. It returns [tree.ErrTypeConflict]
// if an intermediate node is a scalar that can not be descended into.
func Insert(dst *tree.Map, path []string, value any) error {
	if len(path) == 0 {
		return nil
	}

	var node any = dst
	for i, segment := range path[:len(path)-1] {
		switch current := node.(type) {
		case *tree.Map:
			next, ok := current.Get(segment)
			if !ok || next == nil {
				m := tree.New()
				current.Set(segment, m)
				next = m
			}
			node = next
		case []any:
			index, ok := indexOf(segment, len(current))
			if !ok {
				return conflict(path[:i+1], current)
			}
			node = current[index]
		default:
			return conflict(path[:i], current)
		}
	}

	last := path[len(path)-1]
	switch current := node.(type) {
	case *tree.Map:
		current.Set(last, value)
	case []any:
		index, ok := indexOf(last, len(current))
		if !ok {
			return conflict(path, current)
		}
		current[index] = value
	default:
		return conflict(path[:len(path)-1], current)
	}

	return nil
}

func conflict(path []string, node any) error {
	return fmt.Errorf("%w: cannot descend into %T at %q", tree.ErrTypeConflict, node, strings.Join(path, "."))
}
