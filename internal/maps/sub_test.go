// Copyright (c) 2024 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package maps_test

import (
	"testing"

	"github.com/nil-go/confbox/internal/assert"
	"github.com/nil-go/confbox/internal/maps"
	"github.com/nil-go/confbox/tree"
)

func TestSub(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		values      *tree.Map
		path        []string
		expected    any
	}{
		{
			description: "nil values",
			values:      nil,
			path:        []string{"a", "b"},
			expected:    nil,
		},
		{
			description: "empty values",
			values:      build(),
			path:        []string{"a", "b"},
			expected:    nil,
		},
		{
			description: "empty path",
			values:      build("a", 1),
			path:        nil,
			expected:    build("a", 1),
		},
		{
			description: "single key",
			values:      build("a", 1, "b", 2),
			path:        []string{"a"},
			expected:    1,
		},
		{
			description: "case sensitive keys",
			values:      build("A", 1),
			path:        []string{"a"},
			expected:    nil,
		},
		{
			description: "value not exist",
			values:      build("a", 1),
			path:        []string{"a", "b"},
			expected:    nil,
		},
		{
			description: "nest map",
			values:      build("a", build("x", 1, "y", 2)),
			path:        []string{"a", "y"},
			expected:    2,
		},
		{
			description: "sequence index",
			values:      build("arr", []any{"x", build("k", "v")}),
			path:        []string{"arr", "1", "k"},
			expected:    "v",
		},
		{
			description: "sequence index out of range",
			values:      build("arr", []any{"x"}),
			path:        []string{"arr", "1"},
			expected:    nil,
		},
		{
			description: "non-numeric sequence index",
			values:      build("arr", []any{"x"}),
			path:        []string{"arr", "first"},
			expected:    nil,
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testcase.expected, maps.Sub(testcase.values, testcase.path))
		})
	}
}
