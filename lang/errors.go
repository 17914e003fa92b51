// Copyright (c) 2026 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package lang

import "errors"

var (
	// ErrInvalidArgument is returned for a base path, format or language file that can not be used.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidKey is returned when translating an empty key.
	ErrInvalidKey = errors.New("invalid key")
)
