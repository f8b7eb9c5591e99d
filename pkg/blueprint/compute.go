// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package blueprint

import (
	"context"
	"fmt"
	"sort"

	"github.com/punchplatform/punch-punchbox-app/pkg/documents"
	"github.com/punchplatform/punch-punchbox-app/pkg/versions"
)

type Options struct {
	// Resolver looks component versions up. Versions are not computed when nil.
	Resolver versions.Resolver
	// Components are the services a version is resolved for.
	// Defaults to versions.KnownComponents.
	Components []string
}

// Compute builds a new blueprint. On error no blueprint is returned.
func Compute(ctx context.Context, settings *documents.SettingsDocument, topology *documents.TopologyDocument, opts Options) (*Blueprint, error) {
	if !settings.HasPlatform() {
		return nil, &MissingPlatformSectionError{}
	}

	bp := New(settings.Platform)

	err := ComputeSettings(bp, settings, topology)
	if err != nil {
		return nil, err
	}

	err = ComputeUsers(bp, topology)
	if err != nil {
		return nil, err
	}

	if opts.Resolver != nil {
		components := opts.Components
		if components == nil {
			components = versions.KnownComponents
		}
		_, err = ComputeVersions(ctx, bp, opts.Resolver, components)
		if err != nil {
			return nil, err
		}
	}

	return bp, nil
}

// ComputeSettings runs ComputeServiceSettings for every declared service, in
// document order.
func ComputeSettings(bp *Blueprint, settings *documents.SettingsDocument, topology *documents.TopologyDocument) error {
	return settings.Services.IterateErr(func(name string, _ documents.ServiceDeclaration) error {
		return ComputeServiceSettings(bp, name, settings, topology)
	})
}

// ComputeServiceSettings adds one service to bp. bp is left untouched when
// an error is returned.
func ComputeServiceSettings(bp *Blueprint, name string, settings *documents.SettingsDocument, topology *documents.TopologyDocument) error {
	if !settings.HasPlatform() {
		return &MissingPlatformSectionError{Service: name}
	}
	if _, found := bp.Services[name]; found {
		return &DuplicateServiceError{Service: name}
	}

	declared, _ := settings.ServiceSettings(name)

	serviceSettings := declared.DeepCopy()
	serviceSettings.Overlay(settings.Platform.DeepCopy())

	service := newService(serviceSettings)

	topology.Servers.Iterate(func(serverName string, serverDecl documents.ServerDeclaration) {
		for _, placement := range serverDecl.Services {
			clusterName := DefaultCluster
			if placement.HasCluster {
				clusterName = placement.Cluster
			}

			// clusters inherit the declared service settings, not the platform ones
			cluster := service.cluster(clusterName, declared)
			server := cluster.server(serverName)

			if overrides, found := settings.ClusterSettings(name, clusterName); found {
				cluster.Settings.Overlay(overrides.DeepCopy())
			}
			server.Settings.Overlay(cluster.Settings.DeepCopy())
			server.Settings.Overlay(serverDecl.Settings.DeepCopy())
		}
	})

	bp.Services[name] = service
	return nil
}

// ComputeUsers replaces the users of bp with the users declared on the
// topology servers. A user declared on several servers gets the settings of
// the last one.
func ComputeUsers(bp *Blueprint, topology *documents.TopologyDocument) error {
	users := NewUsers()

	err := topology.Servers.IterateErr(func(serverName string, serverDecl documents.ServerDeclaration) error {
		for _, record := range serverDecl.Users {
			var user string
			var named bool
			settings := documents.Settings{}

			err := record.IterateErr(func(key string, val interface{}) error {
				switch key {
				case "user":
					user, named = userName(val)
				case "settings":
					if val == nil {
						settings = documents.Settings{}
						return nil
					}
					typedVal, ok := documents.Plain(val).(map[string]interface{})
					if !ok {
						return &InvalidUserRecordError{Server: serverName, Key: key, Reason: fmt.Sprintf("expected a mapping, but was %T", val)}
					}
					settings = documents.Settings(typedVal)
				default:
					return &InvalidUserRecordError{Server: serverName, Key: key}
				}
				return nil
			})
			if err != nil {
				return err
			}

			if named {
				users.Named[user] = settings.DeepCopy()
			} else {
				users.Unnamed = settings.DeepCopy()
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	bp.Users = users
	return nil
}

// userName reports false for user: null, which is handled like a missing user.
func userName(val interface{}) (string, bool) {
	switch typedVal := val.(type) {
	case nil:
		return "", false
	case string:
		return typedVal, true
	default:
		return fmt.Sprintf("%v", typedVal), true
	}
}

// ComputeVersions resolves the version of every component and annotates the
// services of bp with them. See AnnotateVersions.
func ComputeVersions(ctx context.Context, bp *Blueprint, resolver versions.Resolver, components []string) ([]string, error) {
	lookup, err := versions.ResolveAll(ctx, resolver, components)
	if err != nil {
		return nil, err
	}
	return AnnotateVersions(bp, lookup), nil
}

// AnnotateVersions sets the version of services found in lookup unless their
// settings already have one. It returns the names of the annotated services.
func AnnotateVersions(bp *Blueprint, lookup map[string]string) []string {
	var annotated []string

	for name, service := range bp.Services {
		if service.Settings.Has("version") {
			continue
		}
		version, found := lookup[name]
		if !found {
			continue
		}
		if service.Settings == nil {
			service.Settings = documents.Settings{}
		}
		service.Settings["version"] = version
		annotated = append(annotated, name)
	}

	sort.Strings(annotated)
	return annotated
}
