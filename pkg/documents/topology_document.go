// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package documents

import (
	"fmt"

	"github.com/punchplatform/punch-punchbox-app/pkg/orderedmap"
)

type TopologyDocument struct {
	Servers *orderedmap.Map[string, ServerDeclaration]

	// Raw is the whole normalized document.
	Raw map[string]interface{}
}

type ServerDeclaration struct {
	Services []Placement
	Settings Settings
	Users    []UserRecord
}

// Placement places a service on a server. Keys other than cluster are
// ignored.
type Placement struct {
	Cluster    string
	HasCluster bool
}

// UserRecord is kept as declared; which keys are allowed is decided when the
// blueprint users are computed.
type UserRecord = *orderedmap.Map[string, interface{}]

func ParseTopology(data []byte, format Format) (*TopologyDocument, error) {
	tree, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return NewTopologyDocument(tree)
}

func NewTopologyDocument(tree Tree) (*TopologyDocument, error) {
	err := validate(topologySchema, tree)
	if err != nil {
		return nil, fmt.Errorf("Validating topology document: %w", err)
	}

	doc := &TopologyDocument{
		Servers: orderedmap.NewMap[string, ServerDeclaration](),
		Raw:     Plain(tree).(map[string]interface{}),
	}

	servers, found := subTree(tree, "servers")
	if !found {
		return doc, nil
	}

	servers.Iterate(func(name string, val interface{}) {
		var decl ServerDeclaration

		if serverTree, ok := val.(Tree); ok {
			decl.Settings = subSettings(serverTree, "settings")
			decl.Services = placements(serverTree)
			decl.Users = userRecords(serverTree)
		}

		doc.Servers.Set(name, decl)
	})

	return doc, nil
}

func placements(serverTree Tree) []Placement {
	val, _ := serverTree.Get("services")
	items, _ := val.([]interface{})

	var result []Placement
	for _, item := range items {
		var placement Placement
		if itemTree, ok := item.(Tree); ok {
			if cluster, found := itemTree.Get("cluster"); found && cluster != nil {
				placement.Cluster, placement.HasCluster = cluster.(string)
			}
		}
		result = append(result, placement)
	}
	return result
}

func userRecords(serverTree Tree) []UserRecord {
	val, _ := serverTree.Get("users")
	items, _ := val.([]interface{})

	var result []UserRecord
	for _, item := range items {
		if itemTree, ok := item.(Tree); ok {
			result = append(result, itemTree)
		}
	}
	return result
}
