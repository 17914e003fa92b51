// Copyright (c) 2026 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package toml_test

import (
	"strings"
	"testing"
	"time"

	"github.com/nil-go/confbox/codec/toml"
	"github.com/nil-go/confbox/internal/assert"
	"github.com/nil-go/confbox/tree"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		data        string
		expected    func() *tree.Map
	}{
		{
			description: "empty",
			data:        "",
			expected:    tree.New,
		},
		{
			description: "key order",
			data: `
name = "app"
debug = true

[db]
port = 3306
host = "localhost"

[[servers]]
name = "beta"
ip = "10.0.0.2"

[[servers]]
name = "alpha"
ip = "10.0.0.1"
`,
			expected: func() *tree.Map {
				db := tree.New()
				db.Set("port", int64(3306))
				db.Set("host", "localhost")
				beta := tree.New()
				beta.Set("name", "beta")
				beta.Set("ip", "10.0.0.2")
				alpha := tree.New()
				alpha.Set("name", "alpha")
				alpha.Set("ip", "10.0.0.1")
				values := tree.New()
				values.Set("name", "app")
				values.Set("debug", true)
				values.Set("db", db)
				values.Set("servers", []any{beta, alpha})

				return values
			},
		},
		{
			description: "scalars",
			data: `
ratio = 0.5
list = [1, "two", [3]]
`,
			expected: func() *tree.Map {
				values := tree.New()
				values.Set("ratio", 0.5)
				values.Set("list", []any{int64(1), "two", []any{int64(3)}})

				return values
			},
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			values, err := toml.Decode([]byte(testcase.data))
			assert.NoError(t, err)
			assert.Equal(t, testcase.expected().ToMap(), values.ToMap())
			assert.Equal(t, testcase.expected().Keys(), values.Keys())
		})
	}
}

func TestDecode_Datetime(t *testing.T) {
	t.Parallel()

	values, err := toml.Decode([]byte("date = 2024-01-02T03:04:05Z"))
	assert.NoError(t, err)
	date, ok := values.Get("date")
	assert.True(t, ok)
	parsed, ok := date.(time.Time)
	assert.True(t, ok)
	assert.True(t, parsed.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	_, err := toml.Decode([]byte("name = "))
	assert.True(t, err != nil)
	assert.True(t, strings.HasPrefix(err.Error(), "decode: "))
}
