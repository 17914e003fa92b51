// Copyright (c) 2026 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package maps_test

import "github.com/nil-go/confbox/tree"

// build creates a tree from alternating keys and values, keeping their order.
func build(pairs ...any) *tree.Map {
	m := tree.New()
	for i := 0; i < len(pairs); i += 2 {
		m.Set(pairs[i].(string), pairs[i+1]) //nolint:forcetypeassert
	}

	return m
}
