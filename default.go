// Copyright (c) 2023 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package confbox

import (
	"log/slog"
	"reflect"
	"sync/atomic"

	"github.com/nil-go/confbox/provider/env"
)

// Get returns the value under the given key of the default Config,
// decoded into T. It returns zero value if there is an error.
func Get[T any](key string) T { //nolint:ireturn
	var value T
	if err := Unmarshal(key, &value); err != nil {
		slog.Error(
			"Could not read config, return empty value instead.",
			"error", err,
			"key", key,
			"type", reflect.TypeOf(value),
		)
	}

	return value
}

// Unmarshal reads configuration under the given key of the default Config
// into the given object pointed to by target.
func Unmarshal(key string, target any) error {
	return defaultConfig.Load().Unmarshal(key, target)
}

// Default returns the default [Config].
//
// Until SetDefault is called, it holds the environment variables.
func Default() *Config {
	return defaultConfig.Load()
}

// SetDefault makes c the default [Config].
// After this call, the confbox package's top functions (e.g. confbox.Get)
// will read from the default config.
func SetDefault(c *Config) {
	defaultConfig.Store(c)
}

var defaultConfig atomic.Pointer[Config] //nolint:gochecknoglobals

func init() { //nolint:gochecknoinits
	config := New()
	// Ignore error as env loader does not return error.
	_ = config.Load(env.New())
	defaultConfig.Store(config)
}
