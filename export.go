// Copyright (c) 2026 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package confbox

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nil-go/confbox/format"
)

// Marshal encodes the Config in the given format with the encode flag of the format.
func (c *Config) Marshal(f format.Format) ([]byte, error) {
	data, err := c.registry.Encode(f, c.values, c.EncodeFlag(f))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return data, nil
}

// Export encodes the Config and writes it to the file at the path,
// creating parent directories as needed.
// An empty format is inferred from the file extension.
//
// Errors wrap [ErrExport].
func (c *Config) Export(path string, f format.Format) error {
	if f == "" {
		f = format.FromPath(path)
	}

	data, err := c.Marshal(f)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrExport, path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { //nolint:gosec
		return fmt.Errorf("%w %s: create directory: %w", ErrExport, path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("%w %s: write file: %w", ErrExport, path, err)
	}
	c.logger.Debug("Configuration has been exported.", "file", path, "format", f)

	return nil
}

// EncodeFlag returns the encode flag of the format.
// It is format.DefaultFlag unless set with SetEncodeFlag.
func (c *Config) EncodeFlag(f format.Format) format.Flag {
	f, _ = c.registry.Resolve(f)
	if flag, ok := c.encodeFlags[f]; ok {
		return flag
	}

	return format.DefaultFlag(f)
}

// SetEncodeFlag sets the encode flag of the format.
func (c *Config) SetEncodeFlag(f format.Format, flag format.Flag) {
	if c.encodeFlags == nil {
		c.encodeFlags = make(map[format.Format]format.Flag)
	}
	f, _ = c.registry.Resolve(f)
	c.encodeFlags[f] = flag
}

// SetEncodeFlags sets the encode flags of the formats.
func (c *Config) SetEncodeFlags(flags map[format.Format]format.Flag) {
	for f, flag := range flags {
		c.SetEncodeFlag(f, flag)
	}
}
