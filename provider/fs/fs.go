// Copyright (c) 2024 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package fs loads configuration from file system.
//
// FS loads a file with the given path from the file system and decodes it
// into a configuration tree with the codec of its format.
// The format is inferred from the file extension unless WithFormat is given.
// Scripts of evaluated formats are run from their content.
package fs

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/nil-go/confbox/format"
	"github.com/nil-go/confbox/tree"
)

// FS is a Loader that loads configuration from file system.
//
// To create a new FS, call [New].
type FS struct {
	fs       fs.FS
	path     string
	format   format.Format
	registry *format.Registry
}

// New creates a FS with the given fs.FS, path and Option(s).
func New(fs fs.FS, path string, opts ...Option) FS {
	option := &options{
		fs:   fs,
		path: path,
	}
	for _, opt := range opts {
		opt(option)
	}
	if option.format == "" {
		option.format = format.FromPath(path)
	}
	if option.registry == nil {
		option.registry = format.Default()
	}

	return FS(*option)
}

func (f FS) Load() (*tree.Map, error) {
	ffs := f.fs
	if ffs == nil {
		// Ignore error: It uses whatever returned.
		path, _ := os.Getwd()
		ffs = os.DirFS(path)
	}

	bytes, err := fs.ReadFile(ffs, f.path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	values, err := f.registry.Decode(f.format, bytes)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}

	return values, nil
}

func (f FS) String() string {
	return "fs:///" + f.path
}
