// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package blueprint

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// AsYAML serializes the blueprint with sorted mapping keys.
func (b *Blueprint) AsYAML() ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	err := enc.Encode(b)
	if err != nil {
		return nil, fmt.Errorf("Marshaling blueprint as YAML: %w", err)
	}
	err = enc.Close()
	if err != nil {
		return nil, fmt.Errorf("Marshaling blueprint as YAML: %w", err)
	}

	return buf.Bytes(), nil
}

func (b *Blueprint) AsJSON() ([]byte, error) {
	err := b.Users.checkUnnamedKey()
	if err != nil {
		return nil, fmt.Errorf("Marshaling blueprint as JSON: %w", err)
	}

	out, err := json.MarshalIndent(b.AsMap(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("Marshaling blueprint as JSON: %w", err)
	}
	return append(out, '\n'), nil
}
