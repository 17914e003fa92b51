// Copyright (c) 2026 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package json decodes and encodes configuration trees as JSON.
//
// Decoding keeps the key order of objects and keeps integers that do not fit
// into int64 as strings. Malformed input fails the whole decode.
package json

import (
	"bytes"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/nil-go/confbox/tree"
)

// Decode parses the JSON document, which must be an object.
func Decode(data []byte) (*tree.Map, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return tree.New(), nil
	}
	if !gjson.ValidBytes(data) {
		return nil, errMalformed
	}

	result := gjson.ParseBytes(data)
	if !result.IsObject() {
		return nil, errNotObject
	}

	return object(result), nil
}

func object(result gjson.Result) *tree.Map {
	values := tree.New()
	result.ForEach(func(key, value gjson.Result) bool {
		values.Set(key.String(), convert(value))

		return true
	})

	return values
}

func convert(result gjson.Result) any {
	switch result.Type {
	case gjson.Null:
		return nil
	case gjson.False, gjson.True:
		return result.Bool()
	case gjson.Number:
		return Number(result.Raw)
	case gjson.String:
		return result.String()
	case gjson.JSON:
		if result.IsArray() {
			items := result.Array()
			list := make([]any, len(items))
			for i, item := range items {
				list[i] = convert(item)
			}

			return list
		}

		return object(result)
	default:
		return result.Value()
	}
}

// Number converts a raw JSON number into int64 or float64.
// An integer literal out of the int64 range is returned as string.
func Number(raw string) any {
	if !strings.ContainsAny(raw, ".eE") {
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return i
		}
		if tree.IsInteger(raw) {
			return raw
		}
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}

	return raw
}

// Encode serializes the tree into a JSON object, keeping the key order.
// It indents the output if prettify is true.
func Encode(values *tree.Map, prettify bool) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := encode(buf, values); err != nil {
		return nil, err
	}

	if prettify {
		return pretty.PrettyOptions(buf.Bytes(), &pretty.Options{Width: 80, Indent: "    "}), nil
	}

	return buf.Bytes(), nil
}

func encode(buf *bytes.Buffer, value any) error { //nolint:cyclop
	switch val := value.(type) {
	case nil:
		buf.WriteString("null")
	case *tree.Map:
		buf.WriteByte('{')
		var err error
		i := 0
		val.Range(func(key string, value any) bool {
			if i > 0 {
				buf.WriteByte(',')
			}
			i++
			if err = encodeScalar(buf, key); err != nil {
				return false
			}
			buf.WriteByte(':')
			err = encode(buf, value)

			return err == nil
		})
		if err != nil {
			return err
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encode(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case int64:
		buf.WriteString(strconv.FormatInt(val, 10))
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("%w: %v", errUnsupportedValue, val)
		}
		text := strconv.FormatFloat(val, 'g', -1, 64)
		if !strings.ContainsAny(text, ".eE") {
			// Keep the value a float after decoding.
			text += ".0"
		}
		buf.WriteString(text)
	default:
		return encodeScalar(buf, val)
	}

	return nil
}

func encodeScalar(buf *bytes.Buffer, value any) error {
	encoder := stdjson.NewEncoder(buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("encode %T: %w", value, err)
	}
	// Encoder appends a newline after each value.
	buf.Truncate(buf.Len() - 1)

	return nil
}

var (
	errMalformed        = errors.New("malformed JSON")
	errNotObject        = errors.New("top-level JSON value must be an object")
	errUnsupportedValue = errors.New("unsupported value")
)
