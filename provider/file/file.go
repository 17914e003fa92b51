// Copyright (c) 2024 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package file loads configuration from OS file.
//
// File loads a file with the given path from the OS file system and decodes it
// into a configuration tree with the codec of its format.
// The format is inferred from the file extension unless WithFormat is given.
// Files of evaluated formats (php/lua) are run instead of parsed.
//
// By default, it returns error while loading if the file is not found.
// IgnoreFileNotExist can override the behavior to return an empty tree.
package file

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/nil-go/confbox/format"
	"github.com/nil-go/confbox/tree"
)

// File is a Loader that loads configuration from a OS file.
//
// To create a new File, call [New].
type File struct {
	logger         *slog.Logger
	path           string
	format         format.Format
	registry       *format.Registry
	ignoreNotExist bool
}

// New creates a File with the given path and Option(s).
//
// It panics if the path is empty.
func New(path string, opts ...Option) File {
	if path == "" {
		panic("cannot create File with empty path")
	}

	option := &options{
		path: path,
	}
	for _, opt := range opts {
		opt(option)
	}
	if option.logger == nil {
		option.logger = slog.Default()
	}
	option.logger = option.logger.WithGroup("confbox.file")
	if option.format == "" {
		option.format = format.FromPath(path)
	}
	if option.registry == nil {
		option.registry = format.Default()
	}

	return File(*option)
}

func (f File) Load() (*tree.Map, error) {
	values, err := f.registry.DecodeFile(f.format, f.path)
	if err != nil {
		if f.ignoreNotExist && errors.Is(err, fs.ErrNotExist) {
			f.logger.Warn("Config file does not exist.", "file", f.path)

			return tree.New(), nil
		}

		return nil, fmt.Errorf("load file %s: %w", f.path, err)
	}
	f.logger.Debug("Config file has been loaded.", "file", f.path, "format", f.format)

	return values, nil
}

// Format returns the format the file is decoded with.
func (f File) Format() format.Format {
	return f.format
}

func (f File) String() string {
	return "file:" + f.path
}
