// Copyright (c) 2026 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package lang

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type defaultText string

// Default marks the text returned by [Translator.Translate] when the key is not found.
// It can be placed anywhere in the args and is not passed to fmt.Sprintf.
func Default(text string) any {
	return defaultText(text)
}

func splitDefault(args []any) (string, []any) {
	var text string
	rest := args[:0:0]
	for _, arg := range args {
		if value, ok := arg.(defaultText); ok {
			text = string(value)

			continue
		}
		rest = append(rest, arg)
	}

	return text, rest
}

// humanize turns the trailing segment of the key into readable text,
// e.g. `order_status`, `order-status` and `orderStatus` all read `Order status`.
func humanize(key, separator string) string {
	if index := strings.LastIndex(key, separator); separator != "" && index >= 0 {
		key = key[index+len(separator):]
	}

	var builder strings.Builder
	var previous rune
	for _, char := range key {
		switch {
		case char == '-' || char == '_':
			char = ' '
		case unicode.IsUpper(char) && (unicode.IsLower(previous) || unicode.IsDigit(previous)):
			builder.WriteByte(' ')
		}
		builder.WriteRune(unicode.ToLower(char))
		previous = char
	}

	text := strings.Join(strings.Fields(builder.String()), " ")
	first, size := utf8.DecodeRuneInString(text)
	if first == utf8.RuneError {
		return text
	}

	return string(unicode.ToUpper(first)) + text[size:]
}
