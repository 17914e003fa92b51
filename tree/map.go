// Copyright (c) 2026 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package tree defines the in-memory representation of configuration.
//
// A configuration tree is a [Map] whose values are one of:
// nil, bool, int64, float64, string, time.Time, []any or *Map.
// Map keeps the insertion order of its keys, so a tree decoded from a source
// can be encoded back with the same key order.
package tree

import (
	"errors"
	"slices"
)

// ErrTypeConflict is returned when a path traversal meets a scalar value
// that has to be descended into.
var ErrTypeConflict = errors.New("type conflict")

// Map is an ordered mapping from string keys to tree values.
//
// The zero value is an empty Map ready to use.
// Map is not concurrency-safe.
type Map struct {
	keys   []string
	values map[string]any
}

// New creates an empty Map.
func New() *Map {
	return &Map{values: make(map[string]any)}
}

// Len returns the number of keys in the Map.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}

	return len(m.keys)
}

// Keys returns the keys of the Map in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}

	return slices.Clone(m.keys)
}

// Get returns the value stored under the given key,
// and whether the key exists.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	value, ok := m.values[key]

	return value, ok
}

// Set stores the value under the given key.
// An existing key keeps its position, a new key is appended.
func (m *Map) Set(key string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Delete removes the given key from the Map.
func (m *Map) Delete(key string) {
	if m == nil {
		return
	}
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == key })
}

// Range calls fn for each key and value in insertion order.
// It stops if fn returns false.
func (m *Map) Range(fn func(key string, value any) bool) {
	if m == nil {
		return
	}
	for _, key := range m.keys {
		if !fn(key, m.values[key]) {
			return
		}
	}
}

// Clone returns a deep copy of the Map.
// No node of the copy is reachable from the original.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}

	clone := &Map{
		keys:   slices.Clone(m.keys),
		values: make(map[string]any, len(m.values)),
	}
	for key, value := range m.values {
		clone.values[key] = Clone(value)
	}

	return clone
}

// ToMap converts the Map into a plain nested map[string]any.
// Nested Maps are converted recursively, key order is lost.
func (m *Map) ToMap() map[string]any {
	if m == nil {
		return nil
	}

	values := make(map[string]any, len(m.values))
	for key, value := range m.values {
		values[key] = Plain(value)
	}

	return values
}
