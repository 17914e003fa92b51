// Copyright (c) 2026 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package confbox_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nil-go/confbox"
	"github.com/nil-go/confbox/format"
	"github.com/nil-go/confbox/internal/assert"
)

func expectedConfig() map[string]any {
	return map[string]any{
		"name":  "confbox",
		"debug": true,
		"port":  int64(8080),
		"hosts": []any{"a", "b"},
		"db":    map[string]any{"host": "localhost", "user": "root"},
	}
}

func TestConfig_LoadFile(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		load        func(*confbox.Config) error
	}{
		{
			description: "ini",
			load:        func(c *confbox.Config) error { return c.LoadINIFile("testdata/config.ini") },
		},
		{
			description: "script",
			load:        func(c *confbox.Config) error { return c.LoadScriptFile("testdata/config.php") },
		},
		{
			description: "neon",
			load:        func(c *confbox.Config) error { return c.LoadNEONFile("testdata/config.neon") },
		},
		{
			description: "json",
			load:        func(c *confbox.Config) error { return c.LoadJSONFile("testdata/config.json") },
		},
		{
			description: "json5",
			load:        func(c *confbox.Config) error { return c.LoadJSON5File("testdata/config.json5") },
		},
		{
			description: "yaml",
			load:        func(c *confbox.Config) error { return c.LoadYAMLFile("testdata/config.yaml") },
		},
		{
			description: "yml",
			load:        func(c *confbox.Config) error { return c.LoadFile("testdata/config.yml", "") },
		},
		{
			description: "toml",
			load:        func(c *confbox.Config) error { return c.LoadTOMLFile("testdata/config.toml") },
		},
		{
			description: "format from extension",
			load:        func(c *confbox.Config) error { return c.LoadFile("testdata/config.php", "") },
		},
		{
			description: "explicit format alias",
			load:        func(c *confbox.Config) error { return c.LoadFile("testdata/config.php", format.Lua) },
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			config := confbox.New()
			assert.NoError(t, testcase.load(config))
			assert.Equal(t, expectedConfig(), config.All())
			assert.Equal(t, "localhost", config.Get("db.host"))
			assert.Equal(t, "b", config.Get("hosts.1"))
		})
	}
}

func TestConfig_LoadFile_error(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		path        string
		format      format.Format
		assert      func(*testing.T, error)
	}{
		{
			description: "not exist",
			path:        "testdata/missing.json",
			assert: func(t *testing.T, err error) {
				t.Helper()

				assert.ErrorIs(t, err, os.ErrNotExist)
			},
		},
		{
			description: "unsupported format",
			path:        "testdata/config.xml",
			assert: func(t *testing.T, err error) {
				t.Helper()

				assert.ErrorIs(t, err, confbox.ErrUnsupportedFormat)
				assert.EqualError(t, err, `load configuration: load file testdata/config.xml: unsupported format: "xml"`)
			},
		},
		{
			description: "malformed",
			path:        "testdata/config.yaml",
			format:      format.JSON,
			assert: func(t *testing.T, err error) {
				t.Helper()

				assert.ErrorIs(t, err, confbox.ErrDecode)
				assert.EqualError(t, err, "load configuration: load file testdata/config.yaml: decode error: json: malformed JSON")
			},
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			config := confbox.New()
			testcase.assert(t, config.LoadFile(testcase.path, testcase.format))
			assert.Equal(t, map[string]any{}, config.All())
		})
	}
}

func TestConfig_LoadFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.yaml")
	assert.NoError(t, os.WriteFile(first, []byte(`{"x": 1, "a": {"y": 1}}`), 0o600))
	assert.NoError(t, os.WriteFile(second, []byte("x: 2\na: {z: 2}\n"), 0o600))

	config := confbox.New()
	assert.NoError(t, config.LoadFiles([]string{first, second}, ""))
	assert.Equal(t, map[string]any{"x": int64(2), "a": map[string]any{"y": int64(1), "z": int64(2)}}, config.All())

	reversed := confbox.New()
	assert.NoError(t, reversed.LoadFiles([]string{second, first}, ""))
	assert.Equal(t, int64(1), reversed.Get("x"))
	assert.Equal(t, []string{"x", "a"}, reversed.Keys())
	assert.Equal(t, []string{"z", "y"}, reversed.Sub("a").Keys())
}

func TestConfig_LoadFiles_partial(t *testing.T) {
	t.Parallel()

	config := confbox.New()
	err := config.LoadFiles([]string{"testdata/config.json", "testdata/missing.json", "testdata/config.toml"}, "")
	assert.ErrorIs(t, err, os.ErrNotExist)
	// Files before the failing one stay merged.
	assert.Equal(t, expectedConfig(), config.All())
}

func TestConfig_LoadStrings(t *testing.T) {
	t.Parallel()

	config := confbox.New()
	assert.NoError(t, config.LoadStrings(format.YAML, "x: 1\n", "x: 2\ny: 1\n"))
	assert.Equal(t, map[string]any{"x": int64(2), "y": int64(1)}, config.All())

	err := config.LoadStrings(format.JSON, `{"z": 1}`, `{"z": `)
	assert.ErrorIs(t, err, confbox.ErrDecode)
	assert.EqualError(t, err, "string #1: load configuration: decode stream: decode error: json: malformed JSON")
	assert.Equal(t, int64(1), config.Get("z"))
}

func TestConfig_LoadReader(t *testing.T) {
	t.Parallel()

	config := confbox.New()
	reader := &closeRecorder{Reader: strings.NewReader("[db]\nhost = localhost\n")}
	assert.NoError(t, config.LoadReader(format.INI, reader))
	assert.True(t, reader.closed)
	assert.Equal(t, "localhost", config.Get("db.host"))

	err := config.LoadReader(format.TOML, errReader{})
	assert.EqualError(t, err, "load configuration: read: read error")
}

func TestNewFrom(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		create      func() (*confbox.Config, error)
	}{
		{
			description: "file",
			create: func() (*confbox.Config, error) {
				return confbox.NewFromFile("testdata/config.toml", "")
			},
		},
		{
			description: "files",
			create: func() (*confbox.Config, error) {
				return confbox.NewFromFiles([]string{"testdata/config.ini", "testdata/config.neon"}, "")
			},
		},
		{
			description: "reader",
			create: func() (*confbox.Config, error) {
				file, err := os.Open("testdata/config.json5")
				if err != nil {
					return nil, err
				}

				return confbox.NewFromReader(format.JSON5, file)
			},
		},
		{
			description: "string",
			create: func() (*confbox.Config, error) {
				data, err := os.ReadFile("testdata/config.yaml")
				if err != nil {
					return nil, err
				}

				return confbox.NewFromString(format.YML, string(data))
			},
		},
		{
			description: "strings",
			create: func() (*confbox.Config, error) {
				return confbox.NewFromStrings(format.JSON, []string{
					`{"name": "other", "debug": true, "port": 8080}`,
					`{"name": "confbox", "hosts": ["a", "b"], "db": {"host": "localhost", "user": "root"}}`,
				})
			},
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			config, err := testcase.create()
			assert.NoError(t, err)
			assert.Equal(t, expectedConfig(), config.All())
		})
	}
}

func TestNewFrom_error(t *testing.T) {
	t.Parallel()

	config, err := confbox.NewFromString(format.YAML, "- a\n")
	assert.ErrorIs(t, err, confbox.ErrDecode)
	assert.True(t, config == nil)

	config, err = confbox.NewFromFile("testdata/config.json", "xml")
	assert.ErrorIs(t, err, confbox.ErrUnsupportedFormat)
	assert.True(t, config == nil)
}

type closeRecorder struct {
	io.Reader
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true

	return nil
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) {
	return 0, errors.New("read error")
}
