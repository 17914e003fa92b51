// Copyright (c) 2026 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package lang

import (
	"io/fs"
	"log/slog"
	"maps"
	"slices"

	"github.com/nil-go/confbox/format"
)

// WithLocale provides the current locale.
//
// The default locale is `en`.
func WithLocale(locale string) Option {
	return func(options *options) {
		options.locale = locale
	}
}

// WithFallbackLocale provides the locale consulted when a key is missing in the current locale.
// An empty locale disables fallback.
//
// The default fallback locale is `en`.
func WithFallbackLocale(locale string) Option {
	return func(options *options) {
		options.fallback = locale
	}
}

// WithAllowed provides the locales that can prefix a key, e.g. `zh-CN:user.greet`.
func WithAllowed(locales ...string) Option {
	return func(options *options) {
		options.allowed = slices.Clone(locales)
	}
}

// WithBasePath provides the directory holding the locale directories.
func WithBasePath(dir string) Option {
	return func(options *options) {
		options.basePath = dir
	}
}

// WithFS provides the fs.FS to read translation files from.
// The base path is then a path inside the fs.FS.
//
// By default, files are read from the operating system.
func WithFS(fsys fs.FS) Option {
	return func(options *options) {
		options.fsys = fsys
	}
}

// WithFormat provides the format of translation files.
//
// The default format is YAML.
func WithFormat(f format.Format) Option {
	return func(options *options) {
		options.format = f
	}
}

// WithSeparator provides the separator of key paths.
//
// The default separator is `.`.
func WithSeparator(separator string) Option {
	return func(options *options) {
		options.separator = separator
	}
}

// WithDefaultFile provides the name of the default file without extension.
// An empty name disables the default file.
//
// The default name is `default`.
func WithDefaultFile(name string) Option {
	return func(options *options) {
		options.defaultFile = name
	}
}

// WithFile registers the namespace file at the path under the file key.
// See [Translator.AddFile].
func WithFile(path, fileKey string) Option {
	return func(options *options) {
		options.pending = append(options.pending, namespace{key: fileKey, path: path})
	}
}

// WithFiles registers the namespace files keyed by file key.
// See [Translator.SetFiles].
func WithFiles(files map[string]string) Option {
	return func(options *options) {
		if options.files == nil {
			options.files = make(map[string]string, len(files))
		}
		maps.Copy(options.files, files)
	}
}

// IgnoreErrors makes file registration skip invalid files instead of failing.
func IgnoreErrors() Option {
	return func(options *options) {
		options.ignoreErrors = true
	}
}

// WithLogger provides the slog.Logger for Translator.
//
// By default, it uses slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

// WithRegistry provides the format registry used to decode translation files.
//
// By default, it uses format.Default().
func WithRegistry(registry *format.Registry) Option {
	return func(options *options) {
		options.registry = registry
	}
}

type (
	// Option configures a Translator with specific options.
	Option  func(options *options)
	options Translator
)
