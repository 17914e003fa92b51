// Copyright (c) 2026 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package ini decodes and encodes configuration trees as INI.
//
// Keys outside any section live at the root of the tree, and each section
// becomes a nested mapping. Dotted section names (`[db.master]`) nest further.
// Repeated `key[]` entries form a list.
//
// Values are typed on decode: true/on/yes and false/off/no become booleans,
// null becomes nil, and decimal numbers become int64 or float64.
// Integers that do not fit into int64 are kept as strings.
package ini

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/ini.v1"

	"github.com/nil-go/confbox/tree"
)

const listSuffix = "[]"

// Decode parses the INI document.
func Decode(data []byte) (*tree.Map, error) {
	file, err := ini.LoadSources(loadOptions(), data)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	values := tree.New()
	for _, section := range file.Sections() {
		target := values
		if name := section.Name(); name != ini.DefaultSection {
			target = sectionMap(values, strings.Split(name, "."))
		}

		for _, key := range section.Keys() {
			name := key.Name()
			if strings.HasSuffix(name, listSuffix) {
				shadows := key.ValueWithShadows()
				list := make([]any, len(shadows))
				for i, shadow := range shadows {
					list[i] = scalar(shadow)
				}
				target.Set(strings.TrimSuffix(name, listSuffix), list)

				continue
			}
			target.Set(name, scalar(key.Value()))
		}
	}

	return values, nil
}

func loadOptions() ini.LoadOptions {
	return ini.LoadOptions{
		AllowShadows:             true,
		SpaceBeforeInlineComment: true,
	}
}

func sectionMap(values *tree.Map, path []string) *tree.Map {
	for _, segment := range path {
		next, ok := values.Get(segment)
		child, isMap := next.(*tree.Map)
		if !ok || !isMap {
			child = tree.New()
			values.Set(segment, child)
		}
		values = child
	}

	return values
}

var float = regexp.MustCompile(`^[-+]?(\d+\.\d*|\.\d+)([eE][-+]?\d+)?$`)

func scalar(value string) any {
	switch strings.ToLower(value) {
	case "true", "on", "yes":
		return true
	case "false", "off", "no":
		return false
	case "null":
		return nil
	}

	if tree.IsInteger(value) {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}

		return value
	}
	if float.MatchString(value) {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}

	return value
}

// Encode serializes the tree into INI.
//
// Root scalars are written before any section. Lists are written as
// repeated `key[]` entries and must only contain scalars.
func Encode(values *tree.Map) ([]byte, error) {
	file := ini.Empty(loadOptions())
	if err := writeSection(file, file.Section(""), "", values); err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	if _, err := file.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	return buf.Bytes(), nil
}

func writeSection(file *ini.File, section *ini.Section, path string, values *tree.Map) error {
	var (
		children []string
		err      error
	)
	values.Range(func(key string, value any) bool {
		switch val := value.(type) {
		case *tree.Map:
			children = append(children, key)
		case []any:
			err = writeList(section, key, val)
		default:
			_, err = section.NewKey(key, format(val))
		}

		return err == nil
	})
	if err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}

	for _, key := range children {
		name := key
		if path != "" {
			name = path + "." + key
		}
		child, err := file.NewSection(name)
		if err != nil {
			return fmt.Errorf("new section %q: %w", name, err)
		}
		value, _ := values.Get(key)
		if err := writeSection(file, child, name, value.(*tree.Map)); err != nil { //nolint:forcetypeassert
			return err
		}
	}

	return nil
}

func writeList(section *ini.Section, key string, list []any) error {
	var entry *ini.Key
	for _, item := range list {
		switch item.(type) {
		case *tree.Map, []any:
			return fmt.Errorf("%w: %T in list %q", errUnsupportedValue, item, key)
		}

		if entry == nil {
			var err error
			if entry, err = section.NewKey(key+listSuffix, format(item)); err != nil {
				return fmt.Errorf("new key: %w", err)
			}

			continue
		}
		if err := entry.AddShadow(format(item)); err != nil {
			return fmt.Errorf("add shadow: %w", err)
		}
	}

	return nil
}

func format(value any) string {
	switch val := value.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		if val == math.Trunc(val) && !math.IsInf(val, 0) {
			return strconv.FormatFloat(val, 'f', 1, 64)
		}

		return strconv.FormatFloat(val, 'g', -1, 64)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(val)
	}
}

var errUnsupportedValue = errors.New("unsupported value")
