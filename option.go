// Copyright (c) 2023 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package confbox

import (
	"log/slog"

	"github.com/go-viper/mapstructure/v2"

	"github.com/nil-go/confbox/format"
)

// WithDelimiter provides the delimiter when specifying key path.
//
// The default delimiter is `.`, which makes key path like `parent.child.key`.
// An empty delimiter disables key paths.
func WithDelimiter(delimiter string) Option {
	return func(options *options) {
		options.delimiter = delimiter
	}
}

// WithMergeDepth provides the depth down to which nested mappings
// from successive loads are merged key by key. Deeper mappings are replaced.
//
// The default depth is 3.
func WithMergeDepth(depth int) Option {
	return func(options *options) {
		options.mergeDepth = depth
	}
}

// WithLogger provides the slog.Logger for Config.
//
// By default, it uses slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

// WithRegistry provides the format registry used to decode and encode configuration.
//
// By default, it uses format.Default().
func WithRegistry(registry *format.Registry) Option {
	return func(options *options) {
		options.registry = registry
	}
}

// WithEncodeFlag provides the flag used when exporting configuration in the given format.
func WithEncodeFlag(f format.Format, flag format.Flag) Option {
	return func(options *options) {
		if options.encodeFlags == nil {
			options.encodeFlags = make(map[format.Format]format.Flag)
		}
		options.encodeFlags[f] = flag
	}
}

// WithName provides the name of the Config.
//
// The default name is `config`.
func WithName(name string) Option {
	return func(options *options) {
		options.name = name
	}
}

// WithTagName provides the tag name that reads for field names.
//
// The default tag name is `confbox`.
func WithTagName(tagName string) Option {
	return func(options *options) {
		options.tagName = tagName
	}
}

// WithDecodeHook provides the decode hook for decoding.
// The decode hook is a function that can customize how configuration are decoded.
//
// It can be either DecodeHookFuncType, DecodeHookFuncKind or DecodeHookFuncValue.
// If multiple hooks are needed, compose them with mapstructure.ComposeDecodeHookFunc.
//
// By default, it composes string to time.Duration, string to []string split by `,`
// and string to encoding.TextUnmarshaler.
func WithDecodeHook(decodeHook mapstructure.DecodeHookFunc) Option {
	return func(options *options) {
		options.decodeHook = decodeHook
	}
}

type (
	// Option configures a Config with specific options.
	Option  func(*options)
	options Config
)
