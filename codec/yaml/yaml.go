// Copyright (c) 2026 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package yaml decodes and encodes configuration trees as YAML.
//
// It works on [yaml.Node] so the key order of mappings survives both directions.
// Anchors, aliases and merge keys (`<<`) are resolved while decoding.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/nil-go/confbox/tree"
)

// Decode parses the YAML document, which must be a mapping.
func Decode(data []byte) (*tree.Map, error) {
	var document yaml.Node
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if document.Kind == 0 || len(document.Content) == 0 {
		return tree.New(), nil
	}

	root := resolve(document.Content[0])
	if root.Kind != yaml.MappingNode {
		if root.ShortTag() == "!!null" {
			return tree.New(), nil
		}

		return nil, errNotMapping
	}

	return mapping(root)
}

func resolve(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}

	return node
}

func mapping(node *yaml.Node) (*tree.Map, error) {
	values := tree.New()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], resolve(node.Content[i+1])
		if key.ShortTag() == "!!merge" {
			if err := mergeKey(values, value); err != nil {
				return nil, err
			}

			continue
		}

		converted, err := convert(value)
		if err != nil {
			return nil, err
		}
		values.Set(key.Value, converted)
	}

	return values, nil
}

// mergeKey applies `<<: *anchor` and `<<: [*a, *b]`.
// Keys set explicitly in the mapping win over merged keys.
func mergeKey(values *tree.Map, value *yaml.Node) error {
	sources := []*yaml.Node{value}
	if value.Kind == yaml.SequenceNode {
		sources = value.Content
	}
	for _, source := range sources {
		source = resolve(source)
		if source.Kind != yaml.MappingNode {
			return errInvalidMerge
		}
		merged, err := mapping(source)
		if err != nil {
			return err
		}
		merged.Range(func(key string, value any) bool {
			if _, ok := values.Get(key); !ok {
				values.Set(key, value)
			}

			return true
		})
	}

	return nil
}

func convert(node *yaml.Node) (any, error) {
	switch node.Kind { //nolint:exhaustive
	case yaml.MappingNode:
		return mapping(node)
	case yaml.SequenceNode:
		list := make([]any, len(node.Content))
		for i, item := range node.Content {
			value, err := convert(resolve(item))
			if err != nil {
				return nil, err
			}
			list[i] = value
		}

		return list, nil
	default:
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("decode line %d: %w", node.Line, err)
		}
		// Integers out of the int64 range must not lose precision.
		if tree.IsInteger(node.Value) {
			if _, err := strconv.ParseInt(node.Value, 10, 64); err != nil {
				switch node.ShortTag() {
				case "!!int", "!!float":
					return node.Value, nil
				}
			}
		}

		return tree.Normalize(value), nil
	}
}

// Encode serializes the tree into a YAML document with 4-space indentation.
func Encode(values *tree.Map) ([]byte, error) {
	node, err := toNode(values)
	if err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	encoder := yaml.NewEncoder(buf)
	encoder.SetIndent(4)
	if err := encoder.Encode(node); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

func toNode(value any) (*yaml.Node, error) {
	switch val := value.(type) {
	case *tree.Map:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		var err error
		val.Range(func(key string, value any) bool {
			var child *yaml.Node
			if child, err = toNode(value); err != nil {
				return false
			}
			node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, child)

			return true
		})

		return node, err
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range val {
			child, err := toNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}

		return node, nil
	default:
		node := &yaml.Node{}
		if err := node.Encode(val); err != nil {
			return nil, fmt.Errorf("encode %T: %w", val, err)
		}

		return node, nil
	}
}

var (
	errNotMapping   = errors.New("top-level YAML value must be a mapping")
	errInvalidMerge = errors.New("merge key must refer to a mapping")
)
