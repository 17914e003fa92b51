// Copyright (c) 2023 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package flag loads configuration from flags defined by [flag].
//
// Flag loads flags in [flag.CommandLine] whose names starts with the given prefix
// and returns them as a nested configuration tree.
// The unset flags with zero default value are skipped to avoid
// overriding values set by other loader.
//
// It splits the names by delimiter. For example, with the default delimiter ".",
// the flag `parent.child.key="1"` is loaded as `{parent: {child: {key: "1"}}}`.
package flag

import (
	"flag"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/nil-go/confbox/internal/maps"
	"github.com/nil-go/confbox/tree"
)

// Flag is a Loader that loads configuration from flags defined by [flag].
//
// To create a new Flag, call [New].
type Flag struct {
	exister  exister
	logger   *slog.Logger
	prefix   string
	set      *flag.FlagSet
	splitter func(string) []string
}

type exister interface {
	Exists(path []string) bool
}

// New creates a Flag with the given Option(s).
//
// The first parameter is the Config that checks if the defined flags
// have been set by other loaders. If not, default flag values are merged.
// If they exist, flag values are merged only if explicitly set in the command line.
func New(exister exister, opts ...Option) Flag {
	option := &options{
		exister: exister,
	}
	for _, opt := range opts {
		opt(option)
	}
	if option.logger == nil {
		option.logger = slog.Default()
	}
	option.logger = option.logger.WithGroup("confbox.flag")

	return Flag(*option)
}

func (f Flag) Load() (*tree.Map, error) {
	set := f.set
	if set == nil {
		if !flag.Parsed() {
			flag.Parse()
		}
		set = flag.CommandLine
	}

	splitter := f.splitter
	if splitter == nil {
		splitter = func(s string) []string {
			return strings.Split(s, ".")
		}
	}

	exists := func([]string) bool { return false }
	if f.exister != nil && !reflect.ValueOf(f.exister).IsZero() {
		exists = f.exister.Exists
	}

	actual := make(map[string]bool)
	set.Visit(func(flag *flag.Flag) { actual[flag.Name] = true })

	values := tree.New()
	set.VisitAll(
		func(flag *flag.Flag) {
			if f.prefix != "" && !strings.HasPrefix(flag.Name, f.prefix) {
				return
			}

			keys := splitter(flag.Name)
			if len(keys) == 0 || len(keys) == 1 && keys[0] == "" {
				return
			}

			value := flagValue(flag)
			// Skip zero default value to avoid overriding values set by other loader.
			if !actual[flag.Name] && (exists(keys) || value == nil || reflect.ValueOf(value).IsZero()) {
				return
			}

			if err := maps.Insert(values, keys, tree.Normalize(value)); err != nil {
				f.logger.Warn("Skip flag that conflicts with others.", "flag", flag.Name, "error", err)
			}
		},
	)

	return values, nil
}

func flagValue(flg *flag.Flag) any {
	if getter, ok := flg.Value.(flag.Getter); ok {
		return getter.Get()
	}

	return flg.Value.String()
}

func (f Flag) String() string {
	if f.prefix == "" {
		return "flag"
	}

	return fmt.Sprintf("flag:%s", f.prefix)
}
