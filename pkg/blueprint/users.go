// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package blueprint

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/punchplatform/punch-punchbox-app/pkg/documents"
	"gopkg.in/yaml.v3"
)

// unnamedUserKey is how unnamed users read back from a serialized blueprint.
const unnamedUserKey = "null"

// Users are the users to create on the platform.
//
// Records without a user (no user key, or user: null) are kept apart from
// named users, so a user named "" never replaces them. They are written out
// under a YAML null key, which reads back as "null": a blueprint cannot hold
// both unnamed users and a user named "null" once written as JSON.
type Users struct {
	Named map[string]documents.Settings
	// Unnamed is nil when every record names its user.
	Unnamed documents.Settings
}

var _ yaml.Marshaler = Users{}
var _ json.Marshaler = Users{}

func NewUsers() Users {
	return Users{Named: map[string]documents.Settings{}}
}

// Len counts named users plus the unnamed entry, if any.
func (u Users) Len() int {
	count := len(u.Named)
	if u.Unnamed != nil {
		count++
	}
	return count
}

func (u Users) names() []string {
	names := make([]string, 0, len(u.Named))
	for name := range u.Named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (u Users) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	if u.Unnamed != nil {
		err := appendUser(node, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, u.Unnamed)
		if err != nil {
			return nil, err
		}
	}

	for _, name := range u.names() {
		// !!str makes the encoder quote names such as "" or "null"
		err := appendUser(node, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}, u.Named[name])
		if err != nil {
			return nil, err
		}
	}

	return node, nil
}

func appendUser(node, keyNode *yaml.Node, settings documents.Settings) error {
	valNode := &yaml.Node{}
	err := valNode.Encode(map[string]interface{}(settings))
	if err != nil {
		return err
	}
	node.Content = append(node.Content, keyNode, valNode)
	return nil
}

func (u Users) MarshalJSON() ([]byte, error) {
	err := u.checkUnnamedKey()
	if err != nil {
		return nil, err
	}
	return json.Marshal(u.asMap())
}

func (u Users) checkUnnamedKey() error {
	if _, found := u.Named[unnamedUserKey]; found && u.Unnamed != nil {
		return fmt.Errorf("Expected users without name and a user named '%s' to not be both declared", unnamedUserKey)
	}
	return nil
}

func (u Users) asMap() map[string]interface{} {
	result := make(map[string]interface{}, u.Len())
	if u.Unnamed != nil {
		result[unnamedUserKey] = plain(u.Unnamed)
	}
	for name, settings := range u.Named {
		result[name] = plain(settings)
	}
	return result
}
