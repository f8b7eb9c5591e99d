// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package blueprint_test

import (
	"context"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/punchplatform/punch-punchbox-app/pkg/blueprint"
	"github.com/punchplatform/punch-punchbox-app/pkg/documents"
	"github.com/punchplatform/punch-punchbox-app/pkg/orderedmap"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func settingsGen() *rapid.Generator[map[string]int] {
	return rapid.MapOf(rapid.SampledFrom([]string{"a", "b", "c", "d", "version"}), rapid.IntRange(0, 100))
}

func toSettings(vals map[string]int) documents.Settings {
	result := documents.Settings{}
	for k, v := range vals {
		result[k] = v
	}
	return result
}

type tiers struct {
	platform, service, cluster, server documents.Settings
}

func singleServiceDocuments(tiers tiers, placement documents.Placement) (*documents.SettingsDocument, *documents.TopologyDocument) {
	clusterName := blueprint.DefaultCluster
	if placement.HasCluster {
		clusterName = placement.Cluster
	}

	services := orderedmap.NewMap[string, documents.ServiceDeclaration]()
	services.Set("kafka", documents.ServiceDeclaration{
		Settings: tiers.service,
		Clusters: map[string]documents.ClusterDeclaration{
			clusterName: {Settings: tiers.cluster},
		},
	})

	servers := orderedmap.NewMap[string, documents.ServerDeclaration]()
	servers.Set("server1", documents.ServerDeclaration{
		Services: []documents.Placement{placement},
		Settings: tiers.server,
	})

	return &documents.SettingsDocument{Platform: tiers.platform, Services: services},
		&documents.TopologyDocument{Servers: servers}
}

func TestPropertyServerSettingsPrecedence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tiers := tiers{
			platform: toSettings(settingsGen().Draw(t, "platform")),
			service:  toSettings(settingsGen().Draw(t, "service")),
			cluster:  toSettings(settingsGen().Draw(t, "cluster")),
			server:   toSettings(settingsGen().Draw(t, "server")),
		}
		clusterName := rapid.SampledFrom([]string{"common", "front", "back"}).Draw(t, "clusterName")

		settings, topology := singleServiceDocuments(tiers, documents.Placement{Cluster: clusterName, HasCluster: true})

		bp, err := blueprint.Compute(context.Background(), settings, topology, blueprint.Options{})
		require.NoError(t, err)

		serverSettings := bp.Services["kafka"].Clusters[clusterName].Servers["server1"].Settings

		expected := documents.Settings{}
		for _, tier := range []documents.Settings{tiers.service, tiers.cluster, tiers.server} {
			for k, v := range tier {
				expected[k] = v
			}
		}
		require.Equal(t, expected, serverSettings)

		for k, v := range tiers.server {
			require.Equal(t, v, serverSettings[k], "server level key %s", k)
		}

		serviceSettings := bp.Services["kafka"].Settings
		for k, v := range tiers.platform {
			require.Equal(t, v, serviceSettings[k], "platform level key %s", k)
		}
	})
}

func TestPropertyPlacementWithoutClusterLandsInCommon(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tiers := tiers{
			platform: toSettings(settingsGen().Draw(t, "platform")),
			service:  toSettings(settingsGen().Draw(t, "service")),
			cluster:  toSettings(settingsGen().Draw(t, "cluster")),
		}

		settings, topology := singleServiceDocuments(tiers, documents.Placement{})

		bp, err := blueprint.Compute(context.Background(), settings, topology, blueprint.Options{})
		require.NoError(t, err)

		clusters := bp.Services["kafka"].Clusters
		require.Len(t, clusters, 1)
		require.Contains(t, clusters, "common")
		require.Contains(t, clusters["common"].Servers, "server1")
	})
}

func TestComputeNeverMutatesInputs(t *testing.T) {
	fuzzer := fuzz.New().NilChance(0.2).NumElements(0, 4)

	for i := 0; i < 50; i++ {
		var platform, service, cluster, server map[string]string
		fuzzer.Fuzz(&platform)
		fuzzer.Fuzz(&service)
		fuzzer.Fuzz(&cluster)
		fuzzer.Fuzz(&server)

		tiers := tiers{
			platform: stringSettings(platform),
			service:  stringSettings(service),
			cluster:  stringSettings(cluster),
			server:   stringSettings(server),
		}
		if tiers.platform == nil {
			tiers.platform = documents.Settings{}
		}
		snapshot := tiers.platform.DeepCopy()

		settings, topology := singleServiceDocuments(tiers, documents.Placement{})

		bp, err := blueprint.Compute(context.Background(), settings, topology, blueprint.Options{})
		require.NoError(t, err)

		for _, svc := range bp.Services {
			scribble(svc.Settings)
			for _, c := range svc.Clusters {
				scribble(c.Settings)
				for _, s := range c.Servers {
					scribble(s.Settings)
				}
			}
		}
		scribble(bp.Platform)

		require.Equal(t, snapshot, settings.Platform)
		require.Equal(t, stringSettings(service), settings.Services.AsMap()["kafka"].Settings)
		require.Equal(t, stringSettings(cluster), settings.Services.AsMap()["kafka"].Clusters["common"].Settings)
		require.Equal(t, stringSettings(server), topology.Servers.AsMap()["server1"].Settings)
	}
}

func stringSettings(vals map[string]string) documents.Settings {
	if vals == nil {
		return nil
	}
	result := documents.Settings{}
	for k, v := range vals {
		result[k] = v
	}
	return result
}

func scribble(settings documents.Settings) {
	for k := range settings {
		settings[k] = "scribbled"
	}
	if settings != nil {
		settings["scribbled"] = true
	}
}
