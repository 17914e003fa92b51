// Copyright (c) 2023 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package env loads configuration from environment variables.
//
// Env loads all environment variables and returns a nested configuration tree
// by splitting the names by `_`. E.g. the environment variable
// `PARENT_CHILD_KEY="1"` is loaded as `{PARENT: {CHILD: {KEY: "1"}}}`.
// The environment variables with empty value are treated as unset.
//
// The default behavior can be changed with following options:
//   - WithPrefix enables loads environment variables with the given prefix in the name.
//   - WithNameSplitter provides the function splitting environment variable name to nested keys.
package env

import (
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/nil-go/confbox/internal/maps"
	"github.com/nil-go/confbox/tree"
)

// Env is a Loader that loads configuration from environment variables.
type Env struct {
	_        [0]func() // Ensure it's incomparable.
	logger   *slog.Logger
	prefix   string
	splitter func(string) []string
}

// New creates an Env with the given Option(s).
func New(opts ...Option) Env {
	option := &options{}
	for _, opt := range opts {
		opt(option)
	}
	if option.logger == nil {
		option.logger = slog.Default()
	}
	option.logger = option.logger.WithGroup("confbox.env")
	if option.splitter == nil {
		option.splitter = func(name string) []string {
			return strings.Split(name, "_")
		}
	}

	return Env(*option)
}

func (e Env) Load() (*tree.Map, error) {
	environ := os.Environ()
	slices.Sort(environ)

	values := tree.New()
	for _, env := range environ {
		if e.prefix != "" && !strings.HasPrefix(env, e.prefix) {
			continue
		}

		key, value, _ := strings.Cut(env, "=")
		if value == "" {
			// The environment variable with empty value is treated as unset.
			continue
		}
		keys := e.splitter(key)
		if len(keys) == 0 || len(keys) == 1 && keys[0] == "" {
			continue
		}
		if err := maps.Insert(values, keys, value); err != nil {
			e.logger.Warn("Skip environment variable that conflicts with others.", "name", key, "error", err)
		}
	}

	return values, nil
}

func (e Env) String() string {
	if e.prefix == "" {
		return "env"
	}

	return "env:" + e.prefix
}
