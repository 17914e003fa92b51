// Copyright (c) 2026 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package script

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/nil-go/confbox/tree"
)

const header = "-- auto exported by confbox\n\nreturn "

// Encode serializes the tree into a Lua script returning a table.
// With prettify, each field is written on its own line with 4-space indentation.
func Encode(values *tree.Map, prettify bool) ([]byte, error) {
	encoder := &encoder{prettify: prettify}
	encoder.WriteString(header)
	if err := encoder.table(values, 0); err != nil {
		return nil, err
	}
	encoder.WriteByte('\n')

	return encoder.Bytes(), nil
}

type encoder struct {
	bytes.Buffer

	prettify bool
}

func (e *encoder) table(values *tree.Map, depth int) error {
	var (
		index int
		err   error
	)
	e.WriteByte('{')
	values.Range(func(key string, value any) bool {
		e.separator(index, depth+1)
		index++
		if identifier(key) {
			e.WriteString(key)
		} else {
			e.WriteString("[" + quote(key) + "]")
		}
		e.WriteString(" = ")
		if err = e.value(value, depth+1); err != nil {
			err = fmt.Errorf("key %q: %w", key, err)

			return false
		}

		return true
	})
	if err != nil {
		return err
	}
	e.close(index, depth)

	return nil
}

func (e *encoder) list(values []any, depth int) error {
	e.WriteByte('{')
	for index, value := range values {
		e.separator(index, depth+1)
		if err := e.value(value, depth+1); err != nil {
			return fmt.Errorf("index %d: %w", index, err)
		}
	}
	e.close(len(values), depth)

	return nil
}

func (e *encoder) separator(index, depth int) {
	switch {
	case e.prettify:
		if index > 0 {
			e.WriteByte(',')
		}
		e.WriteString("\n" + strings.Repeat("    ", depth))
	case index > 0:
		e.WriteString(", ")
	}
}

func (e *encoder) close(count, depth int) {
	if e.prettify && count > 0 {
		e.WriteString(",\n" + strings.Repeat("    ", depth))
	}
	e.WriteByte('}')
}

func (e *encoder) value(value any, depth int) error {
	switch val := value.(type) {
	case nil:
		e.WriteString("nil")
	case bool:
		e.WriteString(strconv.FormatBool(val))
	case int64:
		e.WriteString(strconv.FormatInt(val, 10))
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("%w: %v", errUnsupportedValue, val)
		}
		e.WriteString(strconv.FormatFloat(val, 'g', -1, 64))
	case string:
		e.WriteString(quote(val))
	case time.Time:
		e.WriteString(quote(val.Format(time.RFC3339Nano)))
	case *tree.Map:
		return e.table(val, depth)
	case []any:
		return e.list(val, depth)
	default:
		return fmt.Errorf("%w: %T", errUnsupportedValue, val)
	}

	return nil
}
