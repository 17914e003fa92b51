// Copyright (c) 2026 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package confbox

import (
	"fmt"
	"io"
	"strings"

	"github.com/nil-go/confbox/format"
	"github.com/nil-go/confbox/provider/file"
	"github.com/nil-go/confbox/provider/reader"
)

// LoadFile loads the file at the path and merges it into the Config.
// An empty format is inferred from the file extension.
func (c *Config) LoadFile(path string, f format.Format) error {
	return c.Load(file.New(path,
		file.WithFormat(f),
		file.WithRegistry(c.registry),
		file.WithLogger(c.logger),
	))
}

// LoadFiles loads the files in the given order, so later files take precedence.
//
// It stops at the first failure, leaving the files before it merged.
func (c *Config) LoadFiles(paths []string, f format.Format) error {
	for _, path := range paths {
		if err := c.LoadFile(path, f); err != nil {
			return err
		}
	}

	return nil
}

// LoadINIFile loads the INI file at the path.
func (c *Config) LoadINIFile(path string) error { return c.LoadFile(path, format.INI) }

// LoadScriptFile loads the configuration script at the path.
func (c *Config) LoadScriptFile(path string) error { return c.LoadFile(path, format.PHP) }

// LoadNEONFile loads the NEON file at the path.
func (c *Config) LoadNEONFile(path string) error { return c.LoadFile(path, format.NEON) }

// LoadJSONFile loads the JSON file at the path.
func (c *Config) LoadJSONFile(path string) error { return c.LoadFile(path, format.JSON) }

// LoadJSON5File loads the JSON5 file at the path.
func (c *Config) LoadJSON5File(path string) error { return c.LoadFile(path, format.JSON5) }

// LoadYAMLFile loads the YAML file at the path.
func (c *Config) LoadYAMLFile(path string) error { return c.LoadFile(path, format.YAML) }

// LoadTOMLFile loads the TOML file at the path.
func (c *Config) LoadTOMLFile(path string) error { return c.LoadFile(path, format.TOML) }

// LoadReader reads the stream in the given format and merges it into the Config.
// The stream is closed if it is an io.Closer.
func (c *Config) LoadReader(f format.Format, r io.Reader) error {
	return c.Load(reader.New(r, f, reader.WithRegistry(c.registry)))
}

// LoadString decodes the text in the given format and merges it into the Config.
func (c *Config) LoadString(f format.Format, text string) error {
	return c.LoadReader(f, strings.NewReader(text))
}

// LoadStrings decodes the texts in the given order, so later texts take precedence.
//
// It stops at the first failure, leaving the texts before it merged.
func (c *Config) LoadStrings(f format.Format, texts ...string) error {
	for i, text := range texts {
		if err := c.LoadString(f, text); err != nil {
			return fmt.Errorf("string #%d: %w", i, err)
		}
	}

	return nil
}

// NewFromFile creates a Config loaded from the file at the path.
func NewFromFile(path string, f format.Format, opts ...Option) (*Config, error) {
	return NewFromFiles([]string{path}, f, opts...)
}

// NewFromFiles creates a Config loaded from the files in the given order.
func NewFromFiles(paths []string, f format.Format, opts ...Option) (*Config, error) {
	config := New(opts...)
	if err := config.LoadFiles(paths, f); err != nil {
		return nil, err
	}

	return config, nil
}

// NewFromReader creates a Config loaded from the stream.
func NewFromReader(f format.Format, r io.Reader, opts ...Option) (*Config, error) {
	config := New(opts...)
	if err := config.LoadReader(f, r); err != nil {
		return nil, err
	}

	return config, nil
}

// NewFromString creates a Config loaded from the text.
func NewFromString(f format.Format, text string, opts ...Option) (*Config, error) {
	return NewFromStrings(f, []string{text}, opts...)
}

// NewFromStrings creates a Config loaded from the texts in the given order.
func NewFromStrings(f format.Format, texts []string, opts ...Option) (*Config, error) {
	config := New(opts...)
	if err := config.LoadStrings(f, texts...); err != nil {
		return nil, err
	}

	return config, nil
}
