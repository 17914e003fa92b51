// Copyright (c) 2023 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package confbox

import "github.com/nil-go/confbox/tree"

// Loader is the interface that wraps the basic Load method.
//
// Load loads configuration and returns it as a configuration tree.
// The tree is owned by the caller after Load returns.
type Loader interface {
	Load() (*tree.Map, error)
}
