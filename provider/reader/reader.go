// Copyright (c) 2026 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package reader loads configuration from an [io.Reader].
//
// Reader reads the stream to the end and decodes the content with the codec
// of the given format. The stream is consumed by the first Load, so a Reader
// is meant to be loaded once. If the stream is an [io.Closer], it is closed
// after reading whether or not reading succeeded.
package reader

import (
	"errors"
	"fmt"
	"io"

	"github.com/nil-go/confbox/format"
	"github.com/nil-go/confbox/tree"
)

// Reader is a Loader that loads configuration from a stream.
//
// To create a new Reader, call [New].
type Reader struct {
	reader   io.Reader
	format   format.Format
	registry *format.Registry
}

// New creates a Reader with the given stream, format and Option(s).
//
// It panics if the reader is nil.
func New(reader io.Reader, f format.Format, opts ...Option) Reader {
	if reader == nil {
		panic("cannot create Reader with nil io.Reader")
	}

	option := &options{
		reader: reader,
		format: f,
	}
	for _, opt := range opts {
		opt(option)
	}
	if option.registry == nil {
		option.registry = format.Default()
	}

	return Reader(*option)
}

func (r Reader) Load() (values *tree.Map, err error) { //nolint:nonamedreturns
	if closer, ok := r.reader.(io.Closer); ok {
		defer func() {
			if cerr := closer.Close(); cerr != nil {
				err = errors.Join(err, fmt.Errorf("close reader: %w", cerr))
			}
		}()
	}

	bytes, err := io.ReadAll(r.reader)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	values, err = r.registry.Decode(r.format, bytes)
	if err != nil {
		return nil, fmt.Errorf("decode stream: %w", err)
	}

	return values, nil
}

func (r Reader) String() string {
	return "reader:" + string(r.format)
}
