// Copyright (c) 2024 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package confbox

import (
	"time"

	"github.com/spf13/cast"

	"github.com/nil-go/confbox/tree"
)

// GetString returns the value under the key as a string.
// It returns "" if the value does not exist or can not be converted.
func (c *Config) GetString(key string) string {
	return cast.ToString(c.Get(key))
}

// GetInt returns the value under the key as an int.
func (c *Config) GetInt(key string) int {
	return cast.ToInt(c.Get(key))
}

// GetInt64 returns the value under the key as an int64.
func (c *Config) GetInt64(key string) int64 {
	return cast.ToInt64(c.Get(key))
}

// GetFloat64 returns the value under the key as a float64.
func (c *Config) GetFloat64(key string) float64 {
	return cast.ToFloat64(c.Get(key))
}

// GetBool returns the value under the key as a bool.
func (c *Config) GetBool(key string) bool {
	return cast.ToBool(c.Get(key))
}

// GetDuration returns the value under the key as a time.Duration.
// Strings are parsed with time.ParseDuration, numbers are nanoseconds.
func (c *Config) GetDuration(key string) time.Duration {
	return cast.ToDuration(c.Get(key))
}

// GetStringSlice returns the value under the key as a []string.
func (c *Config) GetStringSlice(key string) []string {
	return cast.ToStringSlice(tree.Plain(c.Get(key)))
}

// GetStringMap returns the value under the key as a plain map.
func (c *Config) GetStringMap(key string) map[string]any {
	return cast.ToStringMap(tree.Plain(c.Get(key)))
}

// Sub returns a copy of the mapping under the key, or nil if the value is not a mapping.
func (c *Config) Sub(key string) *tree.Map {
	values, _ := c.Get(key).(*tree.Map)

	return values.Clone()
}
