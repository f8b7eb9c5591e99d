// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package documents

import (
	"fmt"
	"math"
	"time"

	"github.com/punchplatform/punch-punchbox-app/pkg/orderedmap"
)

// Tree is a decoded document before it is split into typed sections.
// Nested mappings are ordered.
type Tree = *orderedmap.Map[string, interface{}]

func newTree() Tree { return orderedmap.NewMap[string, interface{}]() }

// normalizeScalar maps decoder specific scalar types onto the value set
// accepted by templates.
func normalizeScalar(val interface{}) (interface{}, error) {
	switch typedVal := val.(type) {
	case nil, string, bool, int, int64, float64:
		return typedVal, nil
	case int8:
		return int(typedVal), nil
	case int16:
		return int(typedVal), nil
	case int32:
		return int(typedVal), nil
	case uint:
		return fromUint64(uint64(typedVal)), nil
	case uint8:
		return int(typedVal), nil
	case uint16:
		return int(typedVal), nil
	case uint32:
		return int64(typedVal), nil
	case uint64:
		return fromUint64(typedVal), nil
	case float32:
		return float64(typedVal), nil
	case []byte:
		return string(typedVal), nil
	case time.Time:
		return typedVal.Format(time.RFC3339Nano), nil
	default:
		return nil, fmt.Errorf("Unsupported value of type %T", val)
	}
}

// fromUint64 keeps integers above math.MaxInt64 as uint64 so that they are
// never wrapped into negative numbers.
func fromUint64(val uint64) interface{} {
	if val > math.MaxInt64 {
		return val
	}
	return int64(val)
}

// mapKey turns a scalar mapping key into its string form.
func mapKey(key interface{}) (string, error) {
	switch typedKey := key.(type) {
	case string:
		return typedKey, nil
	case nil:
		return "null", nil
	case bool, int, int64, float64, uint64:
		return fmt.Sprintf("%v", typedKey), nil
	default:
		return "", fmt.Errorf("Expected mapping key to be a scalar, but was %T", key)
	}
}

// Plain converts an ordered tree value into plain Go maps and slices.
func Plain(val interface{}) interface{} {
	switch typedVal := val.(type) {
	case Tree:
		result := make(map[string]interface{}, typedVal.Len())
		typedVal.Iterate(func(k string, v interface{}) {
			result[k] = Plain(v)
		})
		return result
	case []interface{}:
		result := make([]interface{}, len(typedVal))
		for i, item := range typedVal {
			result[i] = Plain(item)
		}
		return result
	default:
		return typedVal
	}
}

func plainSettings(val interface{}) Settings {
	if val == nil {
		return nil
	}
	if typedVal, ok := Plain(val).(map[string]interface{}); ok {
		return Settings(typedVal)
	}
	return nil
}

func subTree(tree Tree, key string) (Tree, bool) {
	val, found := tree.Get(key)
	if !found || val == nil {
		return nil, false
	}
	typedVal, ok := val.(Tree)
	return typedVal, ok
}

func subSettings(tree Tree, key string) Settings {
	val, found := tree.Get(key)
	if !found {
		return nil
	}
	return plainSettings(val)
}
