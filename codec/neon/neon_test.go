// Copyright (c) 2026 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package neon_test

import (
	"testing"

	"github.com/nil-go/confbox/codec/neon"
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
			description: "block",
			data: `
# application
name: app
debug: true
db:
	host: localhost
	port: 3306
`,
			expected: func() *tree.Map {
				db := tree.New()
				db.Set("host", "localhost")
				db.Set("port", int64(3306))
				values := tree.New()
				values.Set("name", "app")
				values.Set("debug", true)
				values.Set("db", db)

				return values
			},
		},
		{
			description: "flow",
			data:        "list: [a, b]\nmap: {x: 1, y: 2.5}\n",
			expected: func() *tree.Map {
				nested := tree.New()
				nested.Set("x", int64(1))
				nested.Set("y", 2.5)
				values := tree.New()
				values.Set("list", []any{"a", "b"})
				values.Set("map", nested)

				return values
			},
		},
		{
			description: "not mapping",
			data:        "- a\n- b\n",
			err:         "top-level NEON value must be a mapping",
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			values, err := neon.Decode([]byte(testcase.data))
			if testcase.err != "" {
				assert.EqualError(t, err, testcase.err)

				return
			}
			assert.NoError(t, err)
			assert.Equal(t, testcase.expected(), values)
		})
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	nested := tree.New()
	nested.Set("ratio", 2.5)
	nested.Set("list", []any{int64(1), "two"})
	values := tree.New()
	values.Set("name", "inhere")
	values.Set("nested", nested)
	values.Set("debug", false)

	for _, prettify := range []bool{true, false} {
		data, err := neon.Encode(values, prettify)
		assert.NoError(t, err)

		decoded, err := neon.Decode(data)
		assert.NoError(t, err)
		assert.Equal(t, values, decoded)
	}
}
