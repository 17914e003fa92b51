// Copyright (c) 2026 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package format_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/nil-go/confbox/format"
	"github.com/nil-go/confbox/internal/assert"
	"github.com/nil-go/confbox/tree"
)

func TestFromPath(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		path     string
		expected format.Format
	}{
		{path: "config/app.yml", expected: format.YML},
		{path: "APP.JSON5", expected: format.JSON5},
		{path: "app.d/config", expected: ""},
		{path: "app.php", expected: format.PHP},
	}

	for _, testcase := range testcases {
		t.Run(testcase.path, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testcase.expected, format.FromPath(testcase.path))
		})
	}
}

func TestDefaultFlag(t *testing.T) {
	t.Parallel()

	assert.Equal(t, format.FlagPretty, format.DefaultFlag(format.JSON))
	assert.Equal(t, format.FlagPretty, format.DefaultFlag(format.JSON5))
	assert.Equal(t, format.Flag(0), format.DefaultFlag(format.YAML))
}

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	registry := format.Default()
	testcases := []struct {
		format    format.Format
		canonical format.Format
		supported bool
	}{
		{format: format.YML, canonical: format.YAML, supported: true},
		{format: format.Lua, canonical: format.PHP, supported: true},
		{format: format.TOML, canonical: format.TOML, supported: true},
		{format: "xml", canonical: "xml", supported: false},
		{format: "YAML", canonical: "YAML", supported: false},
	}

	for _, testcase := range testcases {
		t.Run(string(testcase.format), func(t *testing.T) {
			t.Parallel()

			canonical, ok := registry.Resolve(testcase.format)
			assert.Equal(t, testcase.canonical, canonical)
			assert.Equal(t, testcase.supported, ok)
			assert.Equal(t, testcase.supported, registry.Supports(testcase.format))
		})
	}
}

func TestRegistry_Formats(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]format.Format{"ini", "json", "json5", "lua", "neon", "php", "toml", "yaml", "yml"},
		format.Default().Formats(),
	)
}

func TestRegistry_Decode(t *testing.T) {
	t.Parallel()

	registry := format.Default()
	testcases := []struct {
		format format.Format
		data   string
	}{
		{format: format.INI, data: "name = app"},
		{format: format.PHP, data: `return {name = "app"}`},
		{format: format.Lua, data: `return {name = "app"}`},
		{format: format.NEON, data: "name: app"},
		{format: format.JSON, data: `{"name": "app"}`},
		{format: format.JSON5, data: `{name: 'app',}`},
		{format: format.YML, data: "name: app"},
		{format: format.YAML, data: "name: app"},
		{format: format.TOML, data: `name = "app"`},
	}

	for _, testcase := range testcases {
		t.Run(string(testcase.format), func(t *testing.T) {
			t.Parallel()

			values, err := registry.Decode(testcase.format, []byte(testcase.data))
			assert.NoError(t, err)
			expected := tree.New()
			expected.Set("name", "app")
			assert.Equal(t, expected, values)
		})
	}
}

func TestRegistry_Decode_Error(t *testing.T) {
	t.Parallel()

	_, err := format.Default().Decode("xml", []byte("<a/>"))
	assert.EqualError(t, err, `unsupported format: "xml"`)
	assert.ErrorIs(t, err, format.ErrUnsupportedFormat)

	_, err = format.Default().Decode(format.YML, []byte(`[1, 2]`))
	assert.EqualError(t, err, "decode error: yaml: top-level YAML value must be a mapping")
	assert.ErrorIs(t, err, format.ErrDecode)
}

func TestRegistry_DecodeFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "app.php"), []byte(`return {port = 40 + 2}`), 0o600))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "app.json"), []byte(`{"port": 42}`), 0o600))

	expected := tree.New()
	expected.Set("port", int64(42))
	registry := format.Default()
	assert.True(t, registry.Evaluates(format.PHP))
	assert.False(t, registry.Evaluates(format.JSON))

	values, err := registry.DecodeFile(format.PHP, filepath.Join(dir, "app.php"))
	assert.NoError(t, err)
	assert.Equal(t, expected, values)

	values, err = registry.DecodeFile(format.JSON, filepath.Join(dir, "app.json"))
	assert.NoError(t, err)
	assert.Equal(t, expected, values)

	for _, f := range []format.Format{format.PHP, format.JSON} {
		_, err = registry.DecodeFile(f, filepath.Join(dir, "missing"))
		assert.ErrorIs(t, err, fs.ErrNotExist)
	}
}

func TestRegistry_Encode(t *testing.T) {
	t.Parallel()

	values := tree.New()
	values.Set("name", "app")

	_, err := format.Default().Encode(format.TOML, values, 0)
	assert.EqualError(t, err, "unsupported operation: encode toml")
	assert.ErrorIs(t, err, format.ErrUnsupportedOperation)

	data, err := format.Default().Encode(format.JSON, values, 0)
	assert.NoError(t, err)
	assert.Equal(t, `{"name":"app"}`, string(data))

	data, err = format.Default().Encode(format.YML, values, 0)
	assert.NoError(t, err)
	assert.Equal(t, "name: app\n", string(data))
}

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	errBroken := errors.New("broken")
	registry := format.NewRegistry()
	registry.Register("custom", format.Codec{
		Decode: func([]byte) (*tree.Map, error) { return nil, errBroken },
	})
	registry.Alias("cst", "custom")

	assert.Equal(t, []format.Format{"cst", "custom"}, registry.Formats())
	_, err := registry.Decode("cst", nil)
	assert.EqualError(t, err, "decode error: custom: broken")
	assert.ErrorIs(t, err, errBroken)
	assert.False(t, registry.Supports(format.JSON))
}
