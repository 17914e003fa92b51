// Copyright (c) 2024 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package flag_test

import (
	"flag"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nil-go/confbox/internal/assert"
	kflag "github.com/nil-go/confbox/provider/flag"
)

func TestFlag_Load(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		exister     *existerStub
		opts        []kflag.Option
		expected    map[string]any
	}{
		{
			description: "nil exister",
			opts:        []kflag.Option{kflag.WithPrefix("p.")},
			expected: map[string]any{
				"p": map[string]any{
					"k": "v",
					"d": ".",
				},
			},
		},
		{
			description: "with flag set",
			exister:     &existerStub{exists: false},
			opts:        []kflag.Option{kflag.WithFlagSet(set)},
			expected: map[string]any{
				"k":       "v",
				"port":    int64(8080),
				"timeout": "1s",
			},
		},
		{
			description: "with name splitter",
			exister:     &existerStub{exists: false},
			opts: []kflag.Option{
				kflag.WithPrefix("p_"),
				kflag.WithNameSplitter(func(s string) []string { return strings.Split(s, "_") }),
			},
			expected: map[string]any{
				"p": map[string]any{
					"d": "_",
				},
			},
		},
		{
			description: "with nil splitter",
			exister:     &existerStub{exists: false},
			opts: []kflag.Option{
				kflag.WithPrefix("p_"),
				kflag.WithNameSplitter(func(string) []string { return nil }),
			},
			expected: map[string]any{},
		},
		{
			description: "with exists",
			exister:     &existerStub{exists: true},
			opts:        []kflag.Option{kflag.WithPrefix("p.")},
			expected: map[string]any{
				"p": map[string]any{
					"k": "v",
				},
			},
		},
	}

	parse()
	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			values, err := kflag.New(testcase.exister, testcase.opts...).Load()
			assert.NoError(t, err)
			assert.Equal(t, testcase.expected, values.ToMap())
		})
	}
}

func TestFlag_String(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		prefix      string
		expected    string
	}{
		{
			description: "with prefix",
			prefix:      "P_",
			expected:    "flag:P_",
		},
		{
			description: "no prefix",
			expected:    "flag",
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			assert.Equal(
				t,
				testcase.expected,
				kflag.New(
					existerStub{},
					kflag.WithPrefix(testcase.prefix),
					kflag.WithFlagSet(&flag.FlagSet{}),
				).String(),
			)
		})
	}
}

var (
	parse = sync.OnceFunc(flag.Parse)
	set   = &flag.FlagSet{}
)

func init() {
	flag.String("p.k", "", "")
	_ = flag.Set("p.k", "v")
	flag.String("p.d", ".", "")
	flag.Int("p.i", 0, "")
	flag.String("p_d", "_", "")

	set.String("k", "v", "")
	set.Int("port", 8080, "")
	set.Duration("timeout", time.Second, "")
	set.Bool("debug", false, "")
}

type existerStub struct {
	exists bool
}

func (k existerStub) Exists([]string) bool {
	return k.exists
}
