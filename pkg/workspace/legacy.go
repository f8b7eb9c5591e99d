// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/punchplatform/punch-punchbox-app/pkg/documents"
)

// ConvertLegacySettings turns the YAML deployment settings into the single
// line JSON document older deployers read (punchplatform-deployment.settings).
// Key order is kept; items are separated by ", " and keys by ": ".
func ConvertLegacySettings(data []byte) ([]byte, error) {
	tree, err := documents.Decode(data, documents.FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("Parsing deployment settings: %w", err)
	}

	var buf bytes.Buffer

	err = writeLegacyJSON(&buf, tree)
	if err != nil {
		return nil, fmt.Errorf("Converting deployment settings: %w", err)
	}
	return buf.Bytes(), nil
}

func writeLegacyJSON(buf *bytes.Buffer, val interface{}) error {
	switch typedVal := val.(type) {
	case documents.Tree:
		buf.WriteByte('{')
		i := 0
		err := typedVal.IterateErr(func(k string, v interface{}) error {
			if i > 0 {
				buf.WriteString(", ")
			}
			i++
			writeLegacyString(buf, k)
			buf.WriteString(": ")
			return writeLegacyJSON(buf, v)
		})
		if err != nil {
			return err
		}
		buf.WriteByte('}')

	case []interface{}:
		buf.WriteByte('[')
		for i, item := range typedVal {
			if i > 0 {
				buf.WriteString(", ")
			}
			err := writeLegacyJSON(buf, item)
			if err != nil {
				return err
			}
		}
		buf.WriteByte(']')

	case nil:
		buf.WriteString("null")
	case bool:
		buf.WriteString(strconv.FormatBool(typedVal))
	case int:
		buf.WriteString(strconv.Itoa(typedVal))
	case int64:
		buf.WriteString(strconv.FormatInt(typedVal, 10))
	case uint64:
		buf.WriteString(strconv.FormatUint(typedVal, 10))
	case float64:
		switch {
		case math.IsNaN(typedVal):
			buf.WriteString("NaN")
		case math.IsInf(typedVal, 1):
			buf.WriteString("Infinity")
		case math.IsInf(typedVal, -1):
			buf.WriteString("-Infinity")
		case typedVal == math.Trunc(typedVal) && math.Abs(typedVal) < 1e16:
			buf.WriteString(strconv.FormatFloat(typedVal, 'f', 1, 64))
		default:
			buf.WriteString(strconv.FormatFloat(typedVal, 'g', -1, 64))
		}
	case string:
		writeLegacyString(buf, typedVal)

	default:
		return fmt.Errorf("Unsupported value of type %T", val)
	}
	return nil
}

func writeLegacyString(buf *bytes.Buffer, str string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	// Encode only fails on unsupported types
	_ = enc.Encode(str)
	// drop the newline added by Encode
	buf.Truncate(buf.Len() - 1)
}
