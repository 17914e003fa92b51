// Copyright (c) 2026 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package yaml_test

import (
	"strings"
	"testing"

	"github.com/nil-go/confbox/codec/yaml"
	"github.com/nil-go/confbox/internal/assert"
	"github.com/nil-go/confbox/tree"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		data        string
		expected    func() *tree.Map
		err         string
	}{
		{
			description: "empty",
			data:        "",
			expected:    tree.New,
		},
		{
			description: "null document",
			data:        "~",
			expected:    tree.New,
		},
		{
			description: "key order",
			data: `
z: 1
a:
  y: true
  b: ~
m: [1.5, s]
`,
			expected: func() *tree.Map {
				nested := tree.New()
				nested.Set("y", true)
				nested.Set("b", nil)
				values := tree.New()
				values.Set("z", int64(1))
				values.Set("a", nested)
				values.Set("m", []any{1.5, "s"})

				return values
			},
		},
		{
			description: "merge key",
			data: `
base: &base
  host: localhost
  port: 80
app:
  <<: *base
  port: 8080
`,
			expected: func() *tree.Map {
				base := tree.New()
				base.Set("host", "localhost")
				base.Set("port", int64(80))
				app := tree.New()
				app.Set("host", "localhost")
				app.Set("port", int64(8080))
				values := tree.New()
				values.Set("base", base)
				values.Set("app", app)

				return values
			},
		},
		{
			description: "alias",
			data: `
names: &names [a, b]
copy: *names
`,
			expected: func() *tree.Map {
				values := tree.New()
				values.Set("names", []any{"a", "b"})
				values.Set("copy", []any{"a", "b"})

				return values
			},
		},
		{
			description: "big integer",
			data:        "big: 9999999999999999999\nquoted: '9999999999999999999'\nneg: -99999999999999999999\n",
			expected: func() *tree.Map {
				values := tree.New()
				values.Set("big", "9999999999999999999")
				values.Set("quoted", "9999999999999999999")
				values.Set("neg", "-99999999999999999999")

				return values
			},
		},
		{
			description: "not mapping",
			data:        "- a\n- b\n",
			err:         "top-level YAML value must be a mapping",
		},
		{
			description: "invalid merge",
			data:        "a:\n  <<: 1\n",
			err:         "merge key must refer to a mapping",
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			values, err := yaml.Decode([]byte(testcase.data))
			if testcase.err != "" {
				assert.EqualError(t, err, testcase.err)

				return
			}
			assert.NoError(t, err)
			assert.Equal(t, testcase.expected(), values)
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	_, err := yaml.Decode([]byte("a: [1, 2"))
	assert.True(t, err != nil)
	assert.True(t, strings.HasPrefix(err.Error(), "unmarshal: "))
}

func TestEncode(t *testing.T) {
	t.Parallel()

	nested := tree.New()
	nested.Set("ratio", 2.5)
	nested.Set("list", []any{int64(1), "007", "9999999999999999999"})
	values := tree.New()
	values.Set("name", "inhere")
	values.Set("nested", nested)
	values.Set("debug", true)

	data, err := yaml.Encode(values)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "name: inhere\nnested:\n    ratio: 2.5\n"))

	decoded, err := yaml.Decode(data)
	assert.NoError(t, err)
	assert.Equal(t, values, decoded)
}
