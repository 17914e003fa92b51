// Copyright (c) 2026 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package confbox

import (
	"errors"

	"github.com/nil-go/confbox/format"
	"github.com/nil-go/confbox/tree"
)

var (
	// ErrNilLoader is returned when loading from a nil Loader.
	ErrNilLoader = errors.New("cannot load config from nil loader")
	// ErrExport is returned when the configuration can not be encoded or written.
	ErrExport = errors.New("export")

	ErrUnsupportedFormat    = format.ErrUnsupportedFormat
	ErrUnsupportedOperation = format.ErrUnsupportedOperation
	ErrDecode               = format.ErrDecode
	ErrTypeConflict         = tree.ErrTypeConflict
)
