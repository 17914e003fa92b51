// Copyright (c) 2024 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package fs

import "github.com/nil-go/confbox/format"

// WithFormat provides the format used to decode the configuration file.
//
// By default, it is the extension of the file.
func WithFormat(f format.Format) Option {
	return func(options *options) {
		options.format = f
	}
}

// WithRegistry provides the format registry that decodes the configuration file.
//
// By default, it uses format.Default().
func WithRegistry(registry *format.Registry) Option {
	return func(options *options) {
		options.registry = registry
	}
}

type (
	// Option configures the a FS with specific options.
	Option  func(file *options)
	options FS
)
