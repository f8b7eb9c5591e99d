// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package documents

import (
	"fmt"

	"github.com/punchplatform/punch-punchbox-app/pkg/files"
)

func LoadSettings(src files.Source) (*SettingsDocument, error) {
	tree, err := load(src)
	if err != nil {
		return nil, err
	}
	doc, err := NewSettingsDocument(tree)
	if err != nil {
		return nil, fmt.Errorf("Loading settings from %s: %w", src.Description(), err)
	}
	return doc, nil
}

func LoadTopology(src files.Source) (*TopologyDocument, error) {
	tree, err := load(src)
	if err != nil {
		return nil, err
	}
	doc, err := NewTopologyDocument(tree)
	if err != nil {
		return nil, fmt.Errorf("Loading topology from %s: %w", src.Description(), err)
	}
	return doc, nil
}

// LoadTree reads any mapping document, for example a previously generated blueprint.
func LoadTree(src files.Source) (map[string]interface{}, error) {
	tree, err := load(src)
	if err != nil {
		return nil, err
	}
	return Plain(tree).(map[string]interface{}), nil
}

func load(src files.Source) (Tree, error) {
	data, err := src.Bytes()
	if err != nil {
		return nil, err
	}

	tree, err := Decode(data, FormatFromPath(src.Name()))
	if err != nil {
		return nil, fmt.Errorf("Parsing %s: %w", src.Description(), err)
	}
	return tree, nil
}
