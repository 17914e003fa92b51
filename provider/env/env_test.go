// Copyright (c) 2024 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package env_test

import (
	"strings"
	"testing"

	"github.com/nil-go/confbox"
	"github.com/nil-go/confbox/internal/assert"
	"github.com/nil-go/confbox/provider/env"
)

var _ confbox.Loader = env.Env{}

func TestEnv_Load(t *testing.T) {
	testcases := []struct {
		description string
		opts        []env.Option
		expected    map[string]any
	}{
		{
			description: "with prefix",
			opts:        []env.Option{env.WithPrefix("P_")},
			expected: map[string]any{
				"P": map[string]any{
					"K": "v",
					"D": "-",
				},
			},
		},
		{
			description: "with name splitter",
			opts: []env.Option{
				env.WithPrefix("P."),
				env.WithNameSplitter(func(name string) []string { return strings.Split(name, ".") }),
			},
			expected: map[string]any{
				"P": map[string]any{
					"D": ".",
				},
			},
		},
		{
			description: "conflict",
			opts:        []env.Option{env.WithPrefix("C_")},
			expected: map[string]any{
				"C": map[string]any{
					"A": "scalar",
				},
			},
		},
		{
			description: "ignored by splitter",
			opts: []env.Option{
				env.WithPrefix("P_"),
				env.WithNameSplitter(func(string) []string { return nil }),
			},
			expected: map[string]any{},
		},
	}

	t.Setenv("P_K", "v")
	t.Setenv("P_D", "-")
	t.Setenv("P_E", "")
	t.Setenv("P.D", ".")
	t.Setenv("C_A", "scalar")
	t.Setenv("C_A_B", "nested")

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			values, err := env.New(testcase.opts...).Load()
			assert.NoError(t, err)
			assert.Equal(t, testcase.expected, values.ToMap())
		})
	}
}

func TestEnv_String(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		prefix      string
		expected    string
	}{
		{
			description: "with prefix",
			prefix:      "P_",
			expected:    "env:P_",
		},
		{
			description: "no prefix",
			expected:    "env",
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testcase.expected, env.New(env.WithPrefix(testcase.prefix)).String())
		})
	}
}
