// Copyright (c) 2026 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package script evaluates configuration written as Lua source.
//
// A configuration script runs in a sandboxed interpreter with the base,
// table, string and math libraries only, and returns a table:
//
//	local env = "dev"
//	return {
//	    name = "app",
//	    debug = env == "dev",
//	    hosts = {"a", "b"},
//	}
//
// Tables whose keys are the integers 1..n become lists, other tables become
// mappings with sorted keys. An empty table becomes an empty mapping.
package script

import (
	"errors"
	"fmt"
	"math"
	"slices"

	lua "github.com/yuin/gopher-lua"

	"github.com/nil-go/confbox/tree"
)

// Decode runs the script and converts the table it returns.
func Decode(data []byte) (*tree.Map, error) {
	return run(func(state *lua.LState) (*lua.LFunction, error) {
		return state.LoadString(string(data))
	})
}

// DecodeFile runs the script file at the given path and converts the table it returns.
func DecodeFile(path string) (*tree.Map, error) {
	return run(func(state *lua.LState) (*lua.LFunction, error) {
		return state.LoadFile(path)
	})
}

func run(load func(*lua.LState) (*lua.LFunction, error)) (*tree.Map, error) {
	state := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer state.Close()

	lua.OpenBase(state)
	lua.OpenTable(state)
	lua.OpenString(state)
	lua.OpenMath(state)

	function, err := load(state)
	if err != nil {
		return nil, fmt.Errorf("load script: %w", err)
	}
	state.Push(function)
	if err := state.PCall(0, 1, nil); err != nil {
		return nil, fmt.Errorf("run script: %w", err)
	}
	result := state.Get(-1)
	state.Pop(1)

	switch value := result.(type) {
	case *lua.LNilType:
		return tree.New(), nil
	case *lua.LTable:
		converted, err := fromTable(value, make(map[*lua.LTable]bool))
		if err != nil {
			return nil, err
		}
		if values, ok := converted.(*tree.Map); ok {
			return values, nil
		}

		return nil, errNotTable
	default:
		return nil, errNotTable
	}
}

func fromValue(value lua.LValue, visited map[*lua.LTable]bool) (any, error) {
	switch val := value.(type) {
	case lua.LBool:
		return bool(val), nil
	case lua.LNumber:
		return number(val), nil
	case lua.LString:
		return string(val), nil
	case *lua.LTable:
		return fromTable(val, visited)
	case *lua.LNilType:
		return nil, nil //nolint:nilnil
	default:
		return nil, fmt.Errorf("%w: %s", errUnsupportedValue, value.Type())
	}
}

func number(num lua.LNumber) any {
	f := float64(num)
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return int64(f)
	}

	return f
}

func fromTable(table *lua.LTable, visited map[*lua.LTable]bool) (any, error) {
	if visited[table] {
		return nil, errCycle
	}
	visited[table] = true
	defer delete(visited, table)

	if length := sequenceLength(table); length > 0 {
		list := make([]any, length)
		for i := range list {
			item, err := fromValue(table.RawGetInt(i+1), visited)
			if err != nil {
				return nil, err
			}
			list[i] = item
		}

		return list, nil
	}

	entries := make(map[string]lua.LValue)
	var keys []string
	table.ForEach(func(key, value lua.LValue) {
		var name string
		if num, ok := key.(lua.LNumber); ok {
			name = fmt.Sprint(number(num))
		} else {
			name = key.String()
		}
		if _, ok := entries[name]; !ok {
			keys = append(keys, name)
		}
		entries[name] = value
	})
	slices.Sort(keys)

	values := tree.New()
	for _, key := range keys {
		value, err := fromValue(entries[key], visited)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		values.Set(key, value)
	}

	return values, nil
}

// sequenceLength returns n if the keys of the table are exactly 1..n, or 0 otherwise.
func sequenceLength(table *lua.LTable) int {
	count, maxIndex := 0, 0
	sequence := true
	table.ForEach(func(key, _ lua.LValue) {
		count++
		num, ok := key.(lua.LNumber)
		if !ok || float64(num) != math.Trunc(float64(num)) || num < 1 {
			sequence = false

			return
		}
		maxIndex = max(maxIndex, int(num))
	})
	if !sequence || count != maxIndex {
		return 0
	}

	return count
}

var (
	errNotTable         = errors.New("script must return a table")
	errCycle            = errors.New("table contains a reference to itself")
	errUnsupportedValue = errors.New("unsupported value")
)

// identifier reports whether the key can be written as a bare table field.
func identifier(key string) bool {
	if key == "" || keywords[key] {
		return false
	}
	for i, c := range key {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && c >= '0' && c <= '9':
		default:
			return false
		}
	}

	return true
}

var keywords = map[string]bool{ //nolint:gochecknoglobals
	"and": true, "break": true, "do": true, "else": true, "elseif": true, "end": true,
	"false": true, "for": true, "function": true, "goto": true, "if": true, "in": true,
	"local": true, "nil": true, "not": true, "or": true, "repeat": true, "return": true,
	"then": true, "true": true, "until": true, "while": true,
}

// quote writes the string as a double-quoted Lua literal.
func quote(s string) string {
	buf := make([]byte, 0, len(s)+2)
	buf = append(buf, '"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\\':
			buf = append(buf, '\\', c)
		case '\n':
			buf = append(buf, '\\', 'n')
		case '\r':
			buf = append(buf, '\\', 'r')
		case '\t':
			buf = append(buf, '\\', 't')
		default:
			if c < 0x20 || c == 0x7f {
				buf = fmt.Appendf(buf, "\\%03d", c)

				continue
			}
			buf = append(buf, c)
		}
	}

	return string(append(buf, '"'))
}
