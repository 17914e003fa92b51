// Copyright (c) 2024 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package confbox

import (
	"fmt"
	"log/slog"
	"maps"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/nil-go/confbox/codec/json"
	"github.com/nil-go/confbox/format"
	kmaps "github.com/nil-go/confbox/internal/maps"
	"github.com/nil-go/confbox/tree"
)

// Config is a hierarchical configuration store.
//
// Values are addressed by key. A key containing the delimiter after its first
// character is a path into nested mappings and sequences, e.g. `db.hosts.0`.
// Any other key, including one starting with the delimiter, addresses a
// top-level entry as is.
//
// Config is not concurrency-safe. Use [Config.Clone] to give each goroutine its own copy.
//
// To create a new Config, call [New].
type Config struct {
	// Options.
	logger      *slog.Logger
	name        string
	delimiter   string
	mergeDepth  int
	registry    *format.Registry
	encodeFlags map[format.Format]format.Flag
	decodeHook  mapstructure.DecodeHookFunc
	tagName     string

	// Loaded configuration.
	values *tree.Map
}

// New creates a new Config with the given Option(s).
func New(opts ...Option) *Config {
	option := &options{
		name:       "config",
		delimiter:  ".",
		mergeDepth: defaultMergeDepth,
	}
	for _, opt := range opts {
		opt(option)
	}
	if option.logger == nil {
		option.logger = slog.Default()
	}
	option.logger = option.logger.WithGroup("confbox")
	if option.registry == nil {
		option.registry = format.Default()
	}
	if option.decodeHook == nil {
		option.decodeHook = defaultDecodeHook
	}
	if option.tagName == "" {
		option.tagName = "confbox"
	}
	option.values = tree.New()

	config := (*Config)(option)
	// Flags are keyed by canonical format, which needs the registry.
	flags := config.encodeFlags
	config.encodeFlags = nil
	config.SetEncodeFlags(flags)

	return config
}

const defaultMergeDepth = 3

// Load loads configuration from the given loader and merges it into the Config.
// Each loader takes precedence over the loaders before it.
//
// This method can be called multiple times but it is not concurrency-safe.
func (c *Config) Load(loader Loader) error {
	if loader == nil {
		return ErrNilLoader
	}

	values, err := loader.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	c.Merge(values)
	c.logger.Debug("Configuration has been loaded.", "loader", loader)

	return nil
}

// Merge merges the given tree into the Config.
//
// Nested mappings present on both sides are merged key by key down to
// the merge depth, deeper ones are replaced as a whole.
// Nil values in the tree are skipped, so they never erase loaded values.
// The tree is copied, later changes to it do not affect the Config.
func (c *Config) Merge(values *tree.Map) {
	kmaps.Merge(c.values, values, c.mergeDepth)
}

// Get returns the value under the given key, or nil if it does not exist.
func (c *Config) Get(key string) any {
	if c == nil {
		return nil
	}

	if c.isPath(key) {
		return kmaps.Sub(c.values, c.split(key))
	}
	value, _ := c.values.Get(key)

	return value
}

// GetOr returns the value under the given key, or the given default value
// if it does not exist or is nil.
func (c *Config) GetOr(key string, defaultValue any) any {
	if value := c.Get(key); value != nil {
		return value
	}

	return defaultValue
}

// Set stores the value under the given key.
//
// The value is normalized into tree values and copied.
// It returns [ErrTypeConflict] if the key is a path that has to descend into a scalar.
func (c *Config) Set(key string, value any) error {
	value = tree.Clone(tree.Normalize(value))
	if c.isPath(key) {
		if err := kmaps.Insert(c.values, c.split(key), value); err != nil {
			return fmt.Errorf("set %q: %w", key, err)
		}

		return nil
	}
	c.values.Set(key, value)

	return nil
}

// Has reports whether the key has a non-nil value.
//
// A removed key and a key set to nil are both reported as absent.
func (c *Config) Has(key string) bool {
	return c.Get(key) != nil
}

// Exists reports whether the given path has a non-nil value.
// It lets flag loaders check whether a flag has been set by other loaders.
func (c *Config) Exists(path []string) bool {
	if c == nil {
		return false
	}

	return kmaps.Sub(c.values, path) != nil
}

// Remove clears the value under the given key by setting it to nil.
// The key itself stays in its parent mapping.
func (c *Config) Remove(key string) error {
	return c.Set(key, nil)
}

func (c *Config) isPath(key string) bool {
	return c.delimiter != "" && strings.Index(key, c.delimiter) > 0
}

func (c *Config) split(key string) []string {
	return strings.Split(key, c.delimiter)
}

// Delimiter returns the delimiter of key paths.
func (c *Config) Delimiter() string {
	return c.delimiter
}

// MergeDepth returns the depth down to which nested mappings are merged key by key.
func (c *Config) MergeDepth() int {
	return c.mergeDepth
}

// SetMergeDepth sets the depth down to which nested mappings are merged key by key.
func (c *Config) SetMergeDepth(depth int) {
	c.mergeDepth = depth
}

// Name returns the name of the Config.
func (c *Config) Name() string {
	return c.name
}

// SetName sets the name of the Config.
func (c *Config) SetName(name string) {
	c.name = name
}

// Keys returns the top-level keys in the order they were first loaded.
func (c *Config) Keys() []string {
	return c.values.Keys()
}

// All returns all values as plain nested maps.
func (c *Config) All() map[string]any {
	return c.values.ToMap()
}

// Tree returns a copy of the configuration tree.
func (c *Config) Tree() *tree.Map {
	return c.values.Clone()
}

// Clone returns a deep copy of the Config with the same options.
// Nothing is shared between the Config and its clone.
func (c *Config) Clone() *Config {
	clone := *c
	clone.encodeFlags = maps.Clone(c.encodeFlags)
	clone.values = c.values.Clone()

	return &clone
}

// String returns the values of the Config as compact JSON.
func (c *Config) String() string {
	data, err := json.Encode(c.values, false)
	if err != nil {
		return fmt.Sprint(c.values.ToMap())
	}

	return string(data)
}

// Unmarshal reads configuration under the given key from the Config
// and decodes it into the given object pointed to by target.
// An empty key decodes the whole Config.
//
// Struct fields can be renamed with the `confbox` tag.
func (c *Config) Unmarshal(key string, target any) error {
	if c == nil {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(
		&mapstructure.DecoderConfig{
			Result:           target,
			WeaklyTypedInput: true,
			DecodeHook:       c.decodeHook,
			TagName:          c.tagName,
		},
	)
	if err != nil {
		return fmt.Errorf("new decoder: %w", err)
	}

	var value any
	if key == "" {
		value = c.values.ToMap()
	} else {
		value = tree.Plain(c.Get(key))
	}
	if err := decoder.Decode(value); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	return nil
}

var defaultDecodeHook = mapstructure.ComposeDecodeHookFunc( //nolint:gochecknoglobals
	mapstructure.StringToTimeDurationHookFunc(),
	mapstructure.StringToSliceHookFunc(","),
	mapstructure.TextUnmarshallerHookFunc(),
)
