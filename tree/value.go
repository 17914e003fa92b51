// Copyright (c) 2026 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package tree

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"time"
)

// FromMap converts a plain map[string]any into a Map.
// As Go maps are unordered, keys are added in sorted order.
func FromMap(values map[string]any) *Map {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	m := &Map{keys: keys, values: make(map[string]any, len(values))}
	for _, key := range keys {
		m.values[key] = Normalize(values[key])
	}

	return m
}

// Clone returns a deep copy of the given tree value.
func Clone(value any) any {
	switch v := value.(type) {
	case *Map:
		return v.Clone()
	case []any:
		if v == nil {
			return v
		}
		clone := make([]any, len(v))
		for i, item := range v {
			clone[i] = Clone(item)
		}

		return clone
	default:
		return value
	}
}

// Plain converts the given tree value into plain Go values,
// which is *Map into map[string]any recursively.
func Plain(value any) any {
	switch v := value.(type) {
	case *Map:
		return v.ToMap()
	case []any:
		plain := make([]any, len(v))
		for i, item := range v {
			plain[i] = Plain(item)
		}

		return plain
	default:
		return value
	}
}

// Normalize converts a value produced by a decoder or a loader into a tree value.
//
// Go maps become *Map (with sorted keys), slices and arrays become []any,
// integers of every width become int64, float32 becomes float64.
// Integers that do not fit into int64 are kept as their decimal string
// so they never lose precision.
func Normalize(value any) any { //nolint:cyclop,funlen
	switch val := value.(type) {
	case nil, bool, string, int64, float64, time.Time, *Map:
		return val
	case int:
		return int64(val)
	case int8:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case uint:
		return normalizeUint(uint64(val))
	case uint8:
		return int64(val)
	case uint16:
		return int64(val)
	case uint32:
		return int64(val)
	case uint64:
		return normalizeUint(val)
	case float32:
		return float64(val)
	case []byte:
		return string(val)
	case time.Duration:
		return val.String()
	case number:
		return normalizeNumber(val)
	case map[string]any:
		return FromMap(val)
	case []any:
		list := make([]any, len(val))
		for i, item := range val {
			list[i] = Normalize(item)
		}

		return list
	case fmt.Stringer:
		return val.String()
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() { //nolint:exhaustive
	case reflect.Slice, reflect.Array:
		list := make([]any, rv.Len())
		for i := range list {
			list[i] = Normalize(rv.Index(i).Interface())
		}

		return list
	case reflect.Map:
		values := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			values[fmt.Sprint(iter.Key().Interface())] = iter.Value().Interface()
		}

		return FromMap(values)
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}

		return Normalize(rv.Elem().Interface())
	default:
		return value
	}
}

// number is the shape of json.Number and its forks.
type number interface {
	Int64() (int64, error)
	Float64() (float64, error)
	String() string
}

func normalizeNumber(num number) any {
	if i, err := num.Int64(); err == nil {
		return i
	}
	raw := num.String()
	if IsInteger(raw) {
		return raw
	}
	if f, err := num.Float64(); err == nil {
		return f
	}

	return raw
}

func normalizeUint(u uint64) any {
	if u > math.MaxInt64 {
		return strconv.FormatUint(u, 10)
	}

	return int64(u)
}

// IsInteger reports whether s is a decimal integer literal with an optional sign.
func IsInteger(s string) bool {
	if s != "" && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}

	return true
}
