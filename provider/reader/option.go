// Copyright (c) 2026 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package reader

import "github.com/nil-go/confbox/format"

// WithRegistry provides the format registry that decodes the stream.
//
// By default, it uses format.Default().
func WithRegistry(registry *format.Registry) Option {
	return func(options *options) {
		options.registry = registry
	}
}

type (
	// Option configures the a Reader with specific options.
	Option  func(*options)
	options Reader
)
