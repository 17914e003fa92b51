// Copyright (c) 2026 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package format

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/nil-go/confbox/codec/ini"
	"github.com/nil-go/confbox/codec/json"
	"github.com/nil-go/confbox/codec/json5"
	"github.com/nil-go/confbox/codec/neon"
	"github.com/nil-go/confbox/codec/script"
	"github.com/nil-go/confbox/codec/toml"
	"github.com/nil-go/confbox/codec/yaml"
	"github.com/nil-go/confbox/tree"
)

// Codec is the pair of functions handling one format.
type Codec struct {
	// Decode parses the source into a tree. It is required.
	Decode func(data []byte) (*tree.Map, error)
	// Encode serializes the tree. A nil Encode means the format can only be decoded.
	Encode func(values *tree.Map, flag Flag) ([]byte, error)
	// DecodeFile, if set, loads the file at the path directly instead of
	// decoding its bytes. Formats evaluated as source code set it.
	DecodeFile func(path string) (*tree.Map, error)
}

// Registry maps format tags to codecs.
//
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	codecs  map[Format]Codec
	aliases map[Format]Format
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		codecs:  make(map[Format]Codec),
		aliases: make(map[Format]Format),
	}
}

// Default returns the Registry of built-in formats.
//
// It is shared by every caller, so formats registered on it are visible process-wide.
func Default() *Registry {
	return defaultRegistry()
}

var defaultRegistry = sync.OnceValue(func() *Registry { //nolint:gochecknoglobals
	registry := NewRegistry()
	registry.Register(INI, Codec{
		Decode: ini.Decode,
		Encode: func(values *tree.Map, _ Flag) ([]byte, error) { return ini.Encode(values) },
	})
	registry.Register(PHP, Codec{
		Decode:     script.Decode,
		Encode:     pretty(script.Encode),
		DecodeFile: script.DecodeFile,
	})
	registry.Register(NEON, Codec{Decode: neon.Decode, Encode: pretty(neon.Encode)})
	registry.Register(JSON, Codec{Decode: json.Decode, Encode: pretty(json.Encode)})
	registry.Register(JSON5, Codec{Decode: json5.Decode, Encode: pretty(json5.Encode)})
	registry.Register(YAML, Codec{
		Decode: yaml.Decode,
		Encode: func(values *tree.Map, _ Flag) ([]byte, error) { return yaml.Encode(values) },
	})
	registry.Register(TOML, Codec{Decode: toml.Decode})
	registry.Alias(YML, YAML)
	registry.Alias(Lua, PHP)

	return registry
})

func pretty(encode func(*tree.Map, bool) ([]byte, error)) func(*tree.Map, Flag) ([]byte, error) {
	return func(values *tree.Map, flag Flag) ([]byte, error) {
		return encode(values, flag&FlagPretty != 0)
	}
}

// Register adds or replaces the codec of the format.
//
// It panics if codec.Decode is nil.
func (r *Registry) Register(format Format, codec Codec) {
	if codec.Decode == nil {
		panic("cannot register a codec with nil Decode")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.codecs[format] = codec
	delete(r.aliases, format)
}

// Alias makes alias resolve to the format, which must be registered.
func (r *Registry) Alias(alias, format Format) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.aliases[alias] = format
}

// Resolve returns the canonical format for the given tag or alias,
// and whether it is registered.
func (r *Registry) Resolve(format Format) (Format, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, _, ok := r.resolve(format)

	return r.canonical(format), ok
}

func (r *Registry) canonical(format Format) Format {
	if target, ok := r.aliases[format]; ok {
		return target
	}

	return format
}

func (r *Registry) resolve(format Format) (Format, Codec, bool) {
	format = r.canonical(format)
	codec, ok := r.codecs[format]

	return format, codec, ok
}

func (r *Registry) codec(format Format) (Format, Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	canonical, codec, ok := r.resolve(format)
	if !ok {
		return format, Codec{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	return canonical, codec, nil
}

// Formats returns the registered formats and aliases in sorted order.
func (r *Registry) Formats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := slices.Collect(maps.Keys(r.codecs))
	for alias, format := range r.aliases {
		if _, ok := r.codecs[format]; ok {
			formats = append(formats, alias)
		}
	}
	slices.Sort(formats)

	return formats
}

// Supports reports whether the format, or the format it aliases, is registered.
func (r *Registry) Supports(format Format) bool {
	_, ok := r.Resolve(format)

	return ok
}

// Evaluates reports whether files of the format are evaluated rather than parsed.
func (r *Registry) Evaluates(format Format) bool {
	_, codec, err := r.codec(format)

	return err == nil && codec.DecodeFile != nil
}

// Decode parses the data in the given format.
func (r *Registry) Decode(format Format, data []byte) (*tree.Map, error) {
	canonical, codec, err := r.codec(format)
	if err != nil {
		return nil, err
	}

	values, err := codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, canonical, err)
	}

	return values, nil
}

// DecodeFile loads the file at the path in the given format.
// Files of evaluated formats are run, others are read and decoded.
func (r *Registry) DecodeFile(format Format, path string) (*tree.Map, error) {
	canonical, codec, err := r.codec(format)
	if err != nil {
		return nil, err
	}

	if codec.DecodeFile == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}

		return r.Decode(canonical, data)
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	values, err := codec.DecodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, canonical, err)
	}

	return values, nil
}

// Encode serializes the tree in the given format.
func (r *Registry) Encode(format Format, values *tree.Map, flag Flag) ([]byte, error) {
	canonical, codec, err := r.codec(format)
	if err != nil {
		return nil, err
	}
	if codec.Encode == nil {
		return nil, fmt.Errorf("%w: encode %s", ErrUnsupportedOperation, canonical)
	}

	data, err := codec.Encode(values, flag)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", canonical, err)
	}

	return data, nil
}
