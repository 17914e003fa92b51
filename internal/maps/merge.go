// Copyright (c) 2024 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package maps

import "github.com/nil-go/confbox/tree"

// Merge merges the src map into the dst map, with the top call at depth 1.
//
// For each key of src:
//   - nil values are skipped, so a sparse source never erases a richer one;
//   - if both values are maps and the nested level (depth+1) does not exceed maxDepth,
//     they are merged key by key one level deeper;
//   - otherwise the value from src replaces the value in dst.
//
// New keys are appended after the existing keys of dst in the order of src.
// Values taken from src are deep-copied so dst never shares nodes with src.
func Merge(dst, src *tree.Map, maxDepth int) {
	merge(dst, src, 1, maxDepth)
}

func merge(dst, src *tree.Map, depth, maxDepth int) {
	src.Range(func(key string, srcVal any) bool {
		if srcVal == nil {
			return true
		}

		srcMap, srcOk := srcVal.(*tree.Map)
		dstVal, _ := dst.Get(key)
		dstMap, dstOk := dstVal.(*tree.Map)
		if srcOk && dstOk && depth+1 <= maxDepth {
			merge(dstMap, srcMap, depth+1, maxDepth)

			return true
		}

		dst.Set(key, tree.Clone(srcVal))

		return true
	})
}
