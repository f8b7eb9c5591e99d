// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package documents

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

var (
	jsonExts = []string{".json", ".jsonc", ".hjson"}
	tomlExts = []string{".toml"}
)

// FormatFromPath picks a decoder from the file extension; anything unknown
// (including stdin) is read as YAML.
func FormatFromPath(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	for _, jsonExt := range jsonExts {
		if ext == jsonExt {
			return FormatJSON
		}
	}
	for _, tomlExt := range tomlExts {
		if ext == tomlExt {
			return FormatTOML
		}
	}
	return FormatYAML
}

// Decode parses a whole document into an ordered tree. An empty document
// decodes into an empty tree.
func Decode(data []byte, format Format) (Tree, error) {
	var val interface{}
	var err error

	switch format {
	case FormatYAML, "":
		val, err = decodeYAML(data)
	case FormatJSON:
		val, err = decodeJSON(data)
	case FormatTOML:
		val, err = decodeTOML(data)
	default:
		return nil, fmt.Errorf("Unknown document format '%s'", format)
	}
	if err != nil {
		return nil, err
	}

	switch typedVal := val.(type) {
	case nil:
		return newTree(), nil
	case Tree:
		return typedVal, nil
	default:
		return nil, fmt.Errorf("Expected document to be a mapping, but was %T", val)
	}
}

func decodeYAML(data []byte) (interface{}, error) {
	var doc yaml.Node

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("Unmarshaling YAML: %w", err)
	}
	if doc.Kind == 0 {
		return nil, nil
	}
	return fromYAMLNode(&doc)
}

func fromYAMLNode(node *yaml.Node) (interface{}, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return fromYAMLNode(node.Content[0])

	case yaml.AliasNode:
		return fromYAMLNode(node.Alias)

	case yaml.MappingNode:
		result := newTree()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valNode := node.Content[i], node.Content[i+1]

			if keyNode.Tag == "!!merge" {
				err := mergeYAMLNode(result, valNode)
				if err != nil {
					return nil, err
				}
				continue
			}

			var rawKey interface{}
			err := keyNode.Decode(&rawKey)
			if err != nil {
				return nil, fmt.Errorf("Decoding key at line %d: %w", keyNode.Line, err)
			}
			key, err := mapKey(rawKey)
			if err != nil {
				return nil, fmt.Errorf("Decoding key at line %d: %w", keyNode.Line, err)
			}
			val, err := fromYAMLNode(valNode)
			if err != nil {
				return nil, err
			}
			result.Set(key, val)
		}
		return result, nil

	case yaml.SequenceNode:
		result := make([]interface{}, 0, len(node.Content))
		for _, itemNode := range node.Content {
			item, err := fromYAMLNode(itemNode)
			if err != nil {
				return nil, err
			}
			result = append(result, item)
		}
		return result, nil

	case yaml.ScalarNode:
		var val interface{}
		err := node.Decode(&val)
		if err != nil {
			return nil, fmt.Errorf("Decoding value at line %d: %w", node.Line, err)
		}
		normalized, err := normalizeScalar(val)
		if err != nil {
			return nil, fmt.Errorf("Decoding value at line %d: %w", node.Line, err)
		}
		return normalized, nil

	default:
		return nil, fmt.Errorf("Unexpected YAML node kind %d at line %d", node.Kind, node.Line)
	}
}

// mergeYAMLNode expands a merge key (<<: *a or <<: [*a, *b]) into result.
// Keys already in result win, then earlier mappings win over later ones.
func mergeYAMLNode(result Tree, valNode *yaml.Node) error {
	merged, err := fromYAMLNode(valNode)
	if err != nil {
		return err
	}

	var sources []Tree

	switch typedMerged := merged.(type) {
	case Tree:
		sources = append(sources, typedMerged)
	case []interface{}:
		for _, item := range typedMerged {
			itemTree, ok := item.(Tree)
			if !ok {
				return fmt.Errorf("Merging keys at line %d: expected a sequence of mappings, but found %T", valNode.Line, item)
			}
			sources = append(sources, itemTree)
		}
	default:
		return fmt.Errorf("Merging keys at line %d: expected a mapping or a sequence of mappings, but found %T", valNode.Line, merged)
	}

	for _, source := range sources {
		source.Iterate(func(k string, v interface{}) {
			if !result.Has(k) {
				result.Set(k, v)
			}
		})
	}
	return nil
}

func decodeJSON(data []byte) (interface{}, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.UseNumber()

	val, err := decodeJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("Unmarshaling JSON: %w", err)
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("Unmarshaling JSON: expected a single top-level value")
	}
	return val, nil
}

func decodeJSONValue(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch typedTok := tok.(type) {
	case json.Delim:
		switch typedTok {
		case '{':
			result := newTree()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key to be a string, but was %v", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				result.Set(key, val)
			}
			_, err := dec.Token() // closing }
			return result, err

		case '[':
			result := []interface{}{}
			for dec.More() {
				item, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				result = append(result, item)
			}
			_, err := dec.Token() // closing ]
			return result, err

		default:
			return nil, fmt.Errorf("unexpected delimiter %s", typedTok)
		}

	case json.Number:
		if i, err := typedTok.Int64(); err == nil {
			return int(i), nil
		}
		if u, err := strconv.ParseUint(typedTok.String(), 10, 64); err == nil {
			return u, nil
		}
		return typedTok.Float64()

	default:
		return normalizeScalar(typedTok)
	}
}

func decodeTOML(data []byte) (interface{}, error) {
	var raw map[string]interface{}

	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("Unmarshaling TOML: %w", err)
	}

	order := map[string]int{}
	for i, key := range md.Keys() {
		path := strings.Join(key, ".")
		if _, found := order[path]; !found {
			order[path] = i
		}
	}

	return fromTOMLValue(raw, "", order)
}

func fromTOMLValue(val interface{}, path string, order map[string]int) (interface{}, error) {
	switch typedVal := val.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(typedVal))
		for key := range typedVal {
			keys = append(keys, key)
		}
		sort.SliceStable(keys, func(i, j int) bool {
			iPos, iFound := order[joinTOMLPath(path, keys[i])]
			jPos, jFound := order[joinTOMLPath(path, keys[j])]
			switch {
			case iFound && jFound:
				return iPos < jPos
			case iFound != jFound:
				return iFound
			default:
				return keys[i] < keys[j]
			}
		})

		result := newTree()
		for _, key := range keys {
			item, err := fromTOMLValue(typedVal[key], joinTOMLPath(path, key), order)
			if err != nil {
				return nil, err
			}
			result.Set(key, item)
		}
		return result, nil

	case []map[string]interface{}:
		result := make([]interface{}, 0, len(typedVal))
		for _, item := range typedVal {
			converted, err := fromTOMLValue(item, path, order)
			if err != nil {
				return nil, err
			}
			result = append(result, converted)
		}
		return result, nil

	case []interface{}:
		result := make([]interface{}, 0, len(typedVal))
		for _, item := range typedVal {
			converted, err := fromTOMLValue(item, path, order)
			if err != nil {
				return nil, err
			}
			result = append(result, converted)
		}
		return result, nil

	default:
		normalized, err := normalizeScalar(typedVal)
		if err != nil {
			return nil, fmt.Errorf("Decoding TOML key '%s': %w", path, err)
		}
		return normalized, nil
	}
}

func joinTOMLPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
