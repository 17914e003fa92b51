// Copyright (c) 2026 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package json5

import "errors"

var (
	errNotObject = errors.New("top-level JSON5 value must be an object")
	errSyntax    = errors.New("invalid JSON5")
)
