// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package documents

import (
	"fmt"

	"github.com/punchplatform/punch-punchbox-app/pkg/orderedmap"
)

type SettingsDocument struct {
	// Platform is nil when the document has no (or a null) platform section.
	Platform Settings
	Services *orderedmap.Map[string, ServiceDeclaration]
	Vagrant  Settings

	// Raw is the whole normalized document.
	Raw map[string]interface{}
}

type ServiceDeclaration struct {
	Settings Settings
	Clusters map[string]ClusterDeclaration
}

type ClusterDeclaration struct {
	Settings Settings
}

func (d *SettingsDocument) HasPlatform() bool { return d.Platform != nil }

// ServiceSettings returns the platform-wide settings declared for a service.
func (d *SettingsDocument) ServiceSettings(name string) (Settings, bool) {
	decl, found := d.Services.Get(name)
	if !found || decl.Settings == nil {
		return nil, false
	}
	return decl.Settings, true
}

// ClusterSettings returns the overrides declared for one cluster of a service.
func (d *SettingsDocument) ClusterSettings(service, cluster string) (Settings, bool) {
	decl, found := d.Services.Get(service)
	if !found {
		return nil, false
	}
	clusterDecl, found := decl.Clusters[cluster]
	if !found || clusterDecl.Settings == nil {
		return nil, false
	}
	return clusterDecl.Settings, true
}

func ParseSettings(data []byte, format Format) (*SettingsDocument, error) {
	tree, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return NewSettingsDocument(tree)
}

func NewSettingsDocument(tree Tree) (*SettingsDocument, error) {
	err := validate(settingsSchema, tree)
	if err != nil {
		return nil, fmt.Errorf("Validating settings document: %w", err)
	}

	doc := &SettingsDocument{
		Platform: subSettings(tree, "platform"),
		Vagrant:  subSettings(tree, "vagrant"),
		Services: orderedmap.NewMap[string, ServiceDeclaration](),
		Raw:      Plain(tree).(map[string]interface{}),
	}

	services, found := subTree(tree, "services")
	if !found {
		return doc, nil
	}

	services.Iterate(func(name string, val interface{}) {
		decl := ServiceDeclaration{Clusters: map[string]ClusterDeclaration{}}

		if serviceTree, ok := val.(Tree); ok {
			decl.Settings = subSettings(serviceTree, "settings")

			if clusters, found := subTree(serviceTree, "clusters"); found {
				clusters.Iterate(func(clusterName string, clusterVal interface{}) {
					var clusterDecl ClusterDeclaration
					if clusterTree, ok := clusterVal.(Tree); ok {
						clusterDecl.Settings = subSettings(clusterTree, "settings")
					}
					decl.Clusters[clusterName] = clusterDecl
				})
			}
		}

		doc.Services.Set(name, decl)
	})

	return doc, nil
}
