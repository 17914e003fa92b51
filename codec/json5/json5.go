// Copyright (c) 2026 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package json5 decodes configuration trees from JSON5 documents.
//
// It reads the whole JSON5 grammar: comments, trailing commas, identifier keys,
// single-quoted strings, line continuations, hexadecimal numbers, leading and
// trailing decimal points, explicit plus signs, Infinity and NaN.
// Objects keep their key order and integers that do not fit into int64
// are kept as strings.
//
// JSON5 is a superset of JSON, so trees are encoded as plain JSON.
package json5

import (
	"bytes"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/nil-go/confbox/codec/json"
	"github.com/nil-go/confbox/tree"
)

// Decode parses the JSON5 document, which must be an object.
func Decode(data []byte) (*tree.Map, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return tree.New(), nil
	}

	p := &parser{data: data}
	if err := p.skip(); err != nil {
		return nil, err
	}
	if p.eof() {
		return tree.New(), nil
	}
	if p.peek() != '{' {
		return nil, errNotObject
	}
	values, err := p.object()
	if err != nil {
		return nil, err
	}
	if err := p.skip(); err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, p.errorf("unexpected %q after top-level object", p.peekRune())
	}

	return values, nil
}

// Encode serializes the tree as JSON, which is valid JSON5.
func Encode(values *tree.Map, prettify bool) ([]byte, error) {
	return json.Encode(values, prettify)
}

type parser struct {
	data []byte
	pos  int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.data)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}

	return p.data[p.pos]
}

func (p *parser) peekRune() rune {
	r, _ := utf8.DecodeRune(p.data[p.pos:])

	return r
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", errSyntax, p.pos, fmt.Sprintf(format, args...))
}

// skip skips white space and comments.
func (p *parser) skip() error {
	for !p.eof() {
		r, size := utf8.DecodeRune(p.data[p.pos:])
		switch {
		case unicode.IsSpace(r) || r == '\uFEFF':
			p.pos += size
		case r == '/' && p.pos+1 < len(p.data) && p.data[p.pos+1] == '/':
			for !p.eof() && p.data[p.pos] != '\n' && p.data[p.pos] != '\r' {
				p.pos++
			}
		case r == '/' && p.pos+1 < len(p.data) && p.data[p.pos+1] == '*':
			end := bytes.Index(p.data[p.pos+2:], []byte("*/"))
			if end < 0 {
				return p.errorf("unterminated comment")
			}
			p.pos += end + 4
		default:
			return nil
		}
	}

	return nil
}

func (p *parser) value() (any, error) {
	switch c := p.peek(); {
	case c == '{':
		return p.object()
	case c == '[':
		return p.array()
	case c == '"' || c == '\'':
		return p.string()
	case c == '+' || c == '-' || c == '.' || c >= '0' && c <= '9' || c == 'I' || c == 'N':
		return p.number()
	case p.literal("true"):
		return true, nil
	case p.literal("false"):
		return false, nil
	case p.literal("null"):
		return nil, nil
	case p.eof():
		return nil, p.errorf("unexpected end of input")
	default:
		return nil, p.errorf("unexpected %q", p.peekRune())
	}
}

func (p *parser) literal(word string) bool {
	if !bytes.HasPrefix(p.data[p.pos:], []byte(word)) {
		return false
	}
	if next := p.pos + len(word); next < len(p.data) {
		if r, _ := utf8.DecodeRune(p.data[next:]); isIdentifierPart(r) {
			return false
		}
	}
	p.pos += len(word)

	return true
}

func (p *parser) object() (*tree.Map, error) {
	p.pos++ // {
	values := tree.New()
	for {
		if err := p.skip(); err != nil {
			return nil, err
		}
		if p.peek() == '}' {
			p.pos++

			return values, nil
		}

		key, err := p.key()
		if err != nil {
			return nil, err
		}
		if err := p.skip(); err != nil {
			return nil, err
		}
		if p.peek() != ':' {
			return nil, p.errorf("missing ':' after key %q", key)
		}
		p.pos++
		if err := p.skip(); err != nil {
			return nil, err
		}
		value, err := p.value()
		if err != nil {
			return nil, err
		}
		values.Set(key, value)

		if err := p.skip(); err != nil {
			return nil, err
		}
		switch p.peek() {
		case ',':
			p.pos++
		case '}':
			p.pos++

			return values, nil
		default:
			return nil, p.errorf("missing ',' or '}' in object")
		}
	}
}

func (p *parser) array() ([]any, error) {
	p.pos++ // [
	list := []any{}
	for {
		if err := p.skip(); err != nil {
			return nil, err
		}
		if p.peek() == ']' {
			p.pos++

			return list, nil
		}

		value, err := p.value()
		if err != nil {
			return nil, err
		}
		list = append(list, value)

		if err := p.skip(); err != nil {
			return nil, err
		}
		switch p.peek() {
		case ',':
			p.pos++
		case ']':
			p.pos++

			return list, nil
		default:
			return nil, p.errorf("missing ',' or ']' in array")
		}
	}
}

func (p *parser) key() (string, error) {
	if c := p.peek(); c == '"' || c == '\'' {
		return p.string()
	}

	var builder strings.Builder
	for !p.eof() {
		r, size := utf8.DecodeRune(p.data[p.pos:])
		if r == '\\' {
			if p.pos+1 >= len(p.data) || p.data[p.pos+1] != 'u' {
				return "", p.errorf("invalid escape in identifier")
			}
			p.pos += 2
			escaped, err := p.unicodeEscape()
			if err != nil {
				return "", err
			}
			r, size = escaped, 0
		} else if builder.Len() == 0 && !isIdentifierStart(r) || builder.Len() > 0 && !isIdentifierPart(r) {
			break
		}
		builder.WriteRune(r)
		p.pos += size
	}
	if builder.Len() == 0 {
		return "", p.errorf("invalid key %q", p.peekRune())
	}

	return builder.String(), nil
}

func (p *parser) string() (string, error) {
	quote := p.data[p.pos]
	p.pos++

	var builder strings.Builder
	for {
		if p.eof() {
			return "", p.errorf("unterminated string")
		}
		r, size := utf8.DecodeRune(p.data[p.pos:])
		switch r {
		case rune(quote):
			p.pos++

			return builder.String(), nil
		case '\n', '\r':
			return "", p.errorf("unterminated string")
		case '\\':
			p.pos++
			if err := p.escape(&builder); err != nil {
				return "", err
			}
		default:
			builder.WriteRune(r)
			p.pos += size
		}
	}
}

func (p *parser) escape(builder *strings.Builder) error { //nolint:cyclop
	if p.eof() {
		return p.errorf("unterminated string")
	}
	r, size := utf8.DecodeRune(p.data[p.pos:])
	p.pos += size
	switch r {
	case 'b':
		builder.WriteByte('\b')
	case 'f':
		builder.WriteByte('\f')
	case 'n':
		builder.WriteByte('\n')
	case 'r':
		builder.WriteByte('\r')
	case 't':
		builder.WriteByte('\t')
	case 'v':
		builder.WriteByte('\v')
	case '0':
		if c := p.peek(); c >= '0' && c <= '9' {
			return p.errorf("octal escape")
		}
		builder.WriteByte(0)
	case 'x':
		if p.pos+2 > len(p.data) {
			return p.errorf("invalid hex escape")
		}
		value, err := strconv.ParseUint(string(p.data[p.pos:p.pos+2]), 16, 8)
		if err != nil {
			return p.errorf("invalid hex escape")
		}
		builder.WriteRune(rune(value))
		p.pos += 2
	case 'u':
		escaped, err := p.unicodeEscape()
		if err != nil {
			return err
		}
		builder.WriteRune(escaped)
	case '\r':
		// Line continuation.
		if p.peek() == '\n' {
			p.pos++
		}
	case '\n', '\u2028', '\u2029':
		// Line continuation.
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return p.errorf("invalid escape '\\%c'", r)
	default:
		builder.WriteRune(r)
	}

	return nil
}

// unicodeEscape reads the 4 hex digits after `\u`, joining surrogate pairs.
func (p *parser) unicodeEscape() (rune, error) {
	read := func() (rune, error) {
		if p.pos+4 > len(p.data) {
			return 0, p.errorf("invalid unicode escape")
		}
		value, err := strconv.ParseUint(string(p.data[p.pos:p.pos+4]), 16, 16)
		if err != nil {
			return 0, p.errorf("invalid unicode escape")
		}
		p.pos += 4

		return rune(value), nil
	}

	first, err := read()
	if err != nil {
		return 0, err
	}
	if utf16.IsSurrogate(first) && bytes.HasPrefix(p.data[p.pos:], []byte(`\u`)) {
		pos := p.pos
		p.pos += 2
		second, err := read()
		if err == nil {
			if r := utf16.DecodeRune(first, second); r != unicode.ReplacementChar {
				return r, nil
			}
		}
		p.pos = pos
	}

	return first, nil
}

func (p *parser) number() (any, error) {
	start := p.pos
	negative := false
	if c := p.peek(); c == '+' || c == '-' {
		negative = c == '-'
		p.pos++
	}

	switch {
	case p.literal("Infinity"):
		if negative {
			return math.Inf(-1), nil
		}

		return math.Inf(1), nil
	case p.literal("NaN"):
		return math.NaN(), nil
	case p.peek() == '0' && p.pos+1 < len(p.data) && (p.data[p.pos+1] == 'x' || p.data[p.pos+1] == 'X'):
		p.pos += 2
		digits := p.pos
		for !p.eof() && isHex(p.peek()) {
			p.pos++
		}
		if digits == p.pos {
			return nil, p.errorf("invalid hexadecimal number")
		}
		value, _ := new(big.Int).SetString(string(p.data[digits:p.pos]), 16)
		if negative {
			value.Neg(value)
		}
		if value.IsInt64() {
			return value.Int64(), nil
		}

		return value.String(), nil
	}

	digits := p.digits()
	if p.peek() == '.' {
		p.pos++
		digits += p.digits()
	}
	if digits == 0 {
		return nil, p.errorf("invalid number %q", p.data[start:p.pos])
	}
	if c := p.peek(); c == 'e' || c == 'E' {
		p.pos++
		if c := p.peek(); c == '+' || c == '-' {
			p.pos++
		}
		if p.digits() == 0 {
			return nil, p.errorf("invalid exponent")
		}
	}
	if !p.eof() {
		if r := p.peekRune(); isIdentifierPart(r) || r == '.' {
			return nil, p.errorf("invalid number %q", p.data[start:p.pos+1])
		}
	}

	return json.Number(strings.TrimPrefix(string(p.data[start:p.pos]), "+")), nil
}

func (p *parser) digits() int {
	count := 0
	for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
		p.pos++
		count++
	}

	return count
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func isIdentifierStart(r rune) bool {
	return r == '$' || r == '_' || unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}

func isIdentifierPart(r rune) bool {
	return isIdentifierStart(r) ||
		unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc) ||
		r == '\u200C' || r == '\u200D'
}
