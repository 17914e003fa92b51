// Copyright (c) 2024 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package file

import (
	"log/slog"

	"github.com/nil-go/confbox/format"
)

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

// IgnoreFileNotExist ignores the error and return an empty tree instead if the configuration file is not found.
func IgnoreFileNotExist() Option {
	return func(options *options) {
		options.ignoreNotExist = true
	}
}

// WithLogger provides the slog.Logger for File loader.
//
// By default, it uses slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

type (
	// Option configures the a File with specific options.
	Option  func(options *options)
	options File
)
