// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package documents

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Only the shape of the documents is checked; service specific settings are
// free-form key/value trees.
const (
	settingsSchemaSrc = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "platform": {"type": ["object", "null"]},
    "vagrant": {"type": ["object", "null"]},
    "services": {
      "type": ["object", "null"],
      "additionalProperties": {
        "type": ["object", "null"],
        "properties": {
          "settings": {"type": ["object", "null"]},
          "clusters": {
            "type": ["object", "null"],
            "additionalProperties": {
              "type": ["object", "null"],
              "properties": {
                "settings": {"type": ["object", "null"]}
              }
            }
          }
        }
      }
    }
  }
}`

	topologySchemaSrc = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "servers": {
      "type": ["object", "null"],
      "additionalProperties": {
        "type": ["object", "null"],
        "properties": {
          "services": {
            "type": ["array", "null"],
            "items": {
              "type": ["object", "null"],
              "properties": {
                "cluster": {"type": ["string", "null"]}
              }
            }
          },
          "settings": {"type": ["object", "null"]},
          "users": {
            "type": ["array", "null"],
            "items": {"type": "object"}
          }
        }
      }
    }
  }
}`
)

var (
	settingsSchema = jsonschema.MustCompileString("settings.schema.json", settingsSchemaSrc)
	topologySchema = jsonschema.MustCompileString("topology.schema.json", topologySchemaSrc)
)

// validate reports every structural problem found in tree, not only the first one.
func validate(schema *jsonschema.Schema, tree Tree) error {
	// the validator expects values as produced by encoding/json
	encoded, err := json.Marshal(Plain(tree))
	if err != nil {
		return fmt.Errorf("Encoding document for validation: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(encoded))
	dec.UseNumber()

	var doc interface{}
	err = dec.Decode(&doc)
	if err != nil {
		return fmt.Errorf("Decoding document for validation: %w", err)
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return err
	}

	var result *multierror.Error
	for _, leaf := range validationLeaves(validationErr) {
		location := leaf.InstanceLocation
		if location == "" {
			location = "/"
		}
		result = multierror.Append(result, fmt.Errorf("%s: %s", location, leaf.Message))
	}
	return result.ErrorOrNil()
}

func validationLeaves(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return []*jsonschema.ValidationError{err}
	}
	var leaves []*jsonschema.ValidationError
	for _, cause := range err.Causes {
		leaves = append(leaves, validationLeaves(cause)...)
	}
	return leaves
}
