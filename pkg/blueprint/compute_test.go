// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package blueprint_test

import (
	"context"
	"errors"
	"testing"

	"github.com/punchplatform/punch-punchbox-app/pkg/blueprint"
	"github.com/punchplatform/punch-punchbox-app/pkg/documents"
	"github.com/punchplatform/punch-punchbox-app/pkg/external"
	"github.com/punchplatform/punch-punchbox-app/pkg/versions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSettings(t *testing.T, src string) *documents.SettingsDocument {
	t.Helper()
	doc, err := documents.ParseSettings([]byte(src), documents.FormatYAML)
	require.NoError(t, err)
	return doc
}

func parseTopology(t *testing.T, src string) *documents.TopologyDocument {
	t.Helper()
	doc, err := documents.ParseTopology([]byte(src), documents.FormatYAML)
	require.NoError(t, err)
	return doc
}

func TestComputeMergesServiceClusterAndServerSettings(t *testing.T) {
	settings := parseSettings(t, `
platform: {a: 1}
services:
  kafka:
    settings: {b: 2}
`)
	topology := parseTopology(t, `
servers:
  h1:
    services:
    - {}
`)

	bp, err := blueprint.Compute(context.Background(), settings, topology, blueprint.Options{})
	require.NoError(t, err)

	assert.Equal(t, documents.Settings{"a": 1}, bp.Platform)

	kafka := bp.Services["kafka"]
	require.NotNil(t, kafka)
	assert.Equal(t, documents.Settings{"a": 1, "b": 2}, kafka.Settings)

	common := kafka.Clusters[blueprint.DefaultCluster]
	require.NotNil(t, common)
	// clusters start from the declared service settings only
	assert.Equal(t, documents.Settings{"b": 2}, common.Settings)
	assert.Equal(t, documents.Settings{"b": 2}, common.Servers["h1"].Settings)

	assert.Zero(t, bp.Users.Len())
}

func TestComputePlatformWinsAtServiceLevel(t *testing.T) {
	settings := parseSettings(t, `
platform: {heap: 512m}
services:
  elastic:
    settings: {heap: 1g, port: 9200}
`)

	bp, err := blueprint.Compute(context.Background(), settings, parseTopology(t, "servers: {}"), blueprint.Options{})
	require.NoError(t, err)

	assert.Equal(t, documents.Settings{"heap": "512m", "port": 9200}, bp.Services["elastic"].Settings)
	assert.Empty(t, bp.Services["elastic"].Clusters)
}

func TestComputeServerSettingsOverrideClusterSettings(t *testing.T) {
	settings := parseSettings(t, `
platform: {}
services:
  elastic:
    settings: {heap: 1g, port: 9200}
    clusters:
      es_data:
        settings: {port: 9300, replicas: 2}
`)
	topology := parseTopology(t, `
servers:
  server1:
    services:
    - cluster: es_data
    settings: {port: 9400}
  server2:
    services:
    - cluster: es_data
  server3:
    services:
    - {}
`)

	bp, err := blueprint.Compute(context.Background(), settings, topology, blueprint.Options{})
	require.NoError(t, err)

	esData := bp.Services["elastic"].Clusters["es_data"]
	require.NotNil(t, esData)
	assert.Equal(t, documents.Settings{"heap": "1g", "port": 9300, "replicas": 2}, esData.Settings)
	assert.Equal(t, documents.Settings{"heap": "1g", "port": 9400, "replicas": 2}, esData.Servers["server1"].Settings)
	assert.Equal(t, documents.Settings{"heap": "1g", "port": 9300, "replicas": 2}, esData.Servers["server2"].Settings)
	assert.NotContains(t, esData.Servers, "server3")

	common := bp.Services["elastic"].Clusters["common"]
	require.NotNil(t, common)
	assert.Equal(t, documents.Settings{"heap": "1g", "port": 9200}, common.Servers["server3"].Settings)
	assert.Len(t, common.Servers, 1)
}

func TestComputePlacesEveryServiceOnEveryServerWithServices(t *testing.T) {
	settings := parseSettings(t, `
platform: {}
services:
  kafka: {}
  zookeeper: {}
`)
	topology := parseTopology(t, `
servers:
  server1:
    services:
    - cluster: front
  server2: {}
`)

	bp, err := blueprint.Compute(context.Background(), settings, topology, blueprint.Options{})
	require.NoError(t, err)

	for _, name := range []string{"kafka", "zookeeper"} {
		require.Contains(t, bp.Services, name)
		require.Contains(t, bp.Services[name].Clusters, "front")
		assert.Equal(t, []string{"server1"}, serverNames(bp.Services[name].Clusters["front"]))
	}
}

func TestComputeNullClusterIsDefaultCluster(t *testing.T) {
	settings := parseSettings(t, "platform: {}\nservices: {kafka: {}}\n")
	topology := parseTopology(t, `
servers:
  server1:
    services:
    - cluster: ~
`)

	bp, err := blueprint.Compute(context.Background(), settings, topology, blueprint.Options{})
	require.NoError(t, err)
	assert.Contains(t, bp.Services["kafka"].Clusters, blueprint.DefaultCluster)
}

func TestComputeDoesNotShareSettingsBetweenTiers(t *testing.T) {
	settings := parseSettings(t, `
platform: {nested: {a: 1}}
services:
  kafka:
    settings: {list: [1, 2]}
`)
	topology := parseTopology(t, `
servers:
  server1:
    services: [{}]
  server2:
    services: [{}]
`)

	bp, err := blueprint.Compute(context.Background(), settings, topology, blueprint.Options{})
	require.NoError(t, err)

	common := bp.Services["kafka"].Clusters["common"]
	common.Servers["server1"].Settings["list"].([]interface{})[0] = 100
	bp.Services["kafka"].Settings["nested"].(map[string]interface{})["a"] = 100

	assert.Equal(t, []interface{}{1, 2}, common.Servers["server2"].Settings["list"])
	assert.Equal(t, []interface{}{1, 2}, common.Settings["list"])
	assert.Equal(t, map[string]interface{}{"a": 1}, bp.Platform["nested"])
	assert.Equal(t, map[string]interface{}{"a": 1}, settings.Platform["nested"])
}

func TestComputeServiceSettingsDetectsDuplicates(t *testing.T) {
	settings := parseSettings(t, "platform: {a: 1}\nservices: {kafka: {settings: {b: 2}}}\n")
	topology := parseTopology(t, "servers: {h1: {services: [{}]}}\n")

	bp := blueprint.New(settings.Platform)

	require.NoError(t, blueprint.ComputeServiceSettings(bp, "kafka", settings, topology))
	first := bp.Services["kafka"]

	err := blueprint.ComputeServiceSettings(bp, "kafka", settings, topology)
	require.Error(t, err)

	var dupErr *blueprint.DuplicateServiceError
	require.True(t, errors.As(err, &dupErr))
	assert.Equal(t, "kafka", dupErr.Service)
	assert.True(t, errors.Is(err, blueprint.ErrInputValidation))
	assert.Equal(t, "Duplicated service 'kafka' in settings", err.Error())

	assert.Same(t, first, bp.Services["kafka"])
	assert.Len(t, bp.Services, 1)
}

func TestComputeRequiresPlatformSection(t *testing.T) {
	for _, src := range []string{"services: {kafka: {}, shiva: {}}\n", "platform: ~\nservices: {kafka: {}}\n"} {
		settings := parseSettings(t, src)
		topology := parseTopology(t, "servers: {h1: {services: [{}]}}\n")

		bp, err := blueprint.Compute(context.Background(), settings, topology, blueprint.Options{})
		require.Error(t, err)
		assert.Nil(t, bp)
		assert.True(t, errors.Is(err, blueprint.ErrInputValidation))
		assert.Equal(t, "Missing mandatory 'platform' section in settings", err.Error())

		partial := blueprint.New(nil)
		for _, name := range settings.Services.Keys() {
			err := blueprint.ComputeServiceSettings(partial, name, settings, topology)

			var platformErr *blueprint.MissingPlatformSectionError
			require.True(t, errors.As(err, &platformErr))
			assert.Equal(t, name, platformErr.Service)
		}
		assert.Empty(t, partial.Services)
	}
}

func TestComputeUsers(t *testing.T) {
	topology := parseTopology(t, `
servers:
  server1:
    users:
    - user: admin
      settings: {shell: zsh}
    - user: operator
    - settings: {anonymous: true}
  server2:
    users:
    - settings: {groups: [wheel]}
      user: admin
`)

	bp := blueprint.New(documents.Settings{})
	bp.Users.Named["stale"] = documents.Settings{}

	require.NoError(t, blueprint.ComputeUsers(bp, topology))

	assert.Equal(t, blueprint.Users{
		Named: map[string]documents.Settings{
			"admin":    {"groups": []interface{}{"wheel"}},
			"operator": {},
		},
		Unnamed: documents.Settings{"anonymous": true},
	}, bp.Users)
	assert.Equal(t, 3, bp.Users.Len())
}

func TestComputeUsersKeepsEmptyNameApartFromUnnamedRecords(t *testing.T) {
	topology := parseTopology(t, `
servers:
  server1:
    users:
    - settings: {missing: true}
    - user: ""
      settings: {empty: true}
    - user: null
      settings: {null: true}
`)

	bp := blueprint.New(documents.Settings{})
	require.NoError(t, blueprint.ComputeUsers(bp, topology))

	assert.Equal(t, map[string]documents.Settings{"": {"empty": true}}, bp.Users.Named)
	// user: null counts as a missing user, the last record wins
	assert.Equal(t, documents.Settings{"null": true}, bp.Users.Unnamed)
}

func TestComputeUsersRejectsUnknownKeys(t *testing.T) {
	topology := parseTopology(t, `
servers:
  server1:
    users:
    - user: admin
  server2:
    users:
    - user: admin
      group: admin
`)

	bp := blueprint.New(documents.Settings{})
	bp.Users.Named["kept"] = documents.Settings{}

	err := blueprint.ComputeUsers(bp, topology)
	require.Error(t, err)

	var userErr *blueprint.InvalidUserRecordError
	require.True(t, errors.As(err, &userErr))
	assert.Equal(t, "server2", userErr.Server)
	assert.Equal(t, "group", userErr.Key)
	assert.True(t, errors.Is(err, blueprint.ErrInputValidation))
	assert.Equal(t, "Invalid key 'group' in users of server 'server2': only 'user' and 'settings' keys are allowed", err.Error())

	assert.Equal(t, blueprint.Users{Named: map[string]documents.Settings{"kept": {}}}, bp.Users)
}

func TestComputeUsersRejectsNonMappingSettings(t *testing.T) {
	topology := parseTopology(t, `
servers:
  server1:
    users:
    - user: admin
      settings: [a]
`)

	err := blueprint.ComputeUsers(blueprint.New(nil), topology)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid key 'settings' in users of server 'server1': expected a mapping")
}

func TestComputeVersionsAddsMissingVersionsOfKnownComponents(t *testing.T) {
	settings := parseSettings(t, `
platform: {}
services:
  kafka: {}
  storm:
    settings: {version: 1.0.0}
  custom: {}
`)

	bp, err := blueprint.Compute(context.Background(), settings, parseTopology(t, "{}"), blueprint.Options{
		Resolver:   versions.MapResolver{"kafka": "2.8.1", "storm": "2.3.0", "shiva": "6.4.5"},
		Components: []string{"kafka", "storm", "shiva"},
	})
	require.NoError(t, err)

	assert.Equal(t, "2.8.1", bp.Services["kafka"].Settings["version"])
	assert.Equal(t, "1.0.0", bp.Services["storm"].Settings["version"])
	assert.False(t, bp.Services["custom"].Settings.Has("version"))
	assert.NotContains(t, bp.Services, "shiva")
}

func TestAnnotateVersionsIsIdempotent(t *testing.T) {
	settings := parseSettings(t, "platform: {}\nservices: {kafka: {}, zookeeper: {}, custom: {}}\n")
	topology := parseTopology(t, "servers: {h1: {services: [{}]}}\n")

	bp, err := blueprint.Compute(context.Background(), settings, topology, blueprint.Options{})
	require.NoError(t, err)

	lookup := map[string]string{"kafka": "2.8.1", "zookeeper": "3.5.7"}

	annotated := blueprint.AnnotateVersions(bp, lookup)
	assert.Equal(t, []string{"kafka", "zookeeper"}, annotated)

	first, err := bp.AsYAML()
	require.NoError(t, err)

	annotated = blueprint.AnnotateVersions(bp, map[string]string{"kafka": "9.9.9", "zookeeper": "9.9.9"})
	assert.Empty(t, annotated)

	second, err := bp.AsYAML()
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

type failingResolver struct{}

func (failingResolver) Resolve(_ context.Context, component string) (string, error) {
	return "", external.NewToolError("punchplatform-versionof.sh --legacy "+component, 127, errors.New("not found"))
}

func TestComputeFailsWhenVersionLookupFails(t *testing.T) {
	settings := parseSettings(t, "platform: {}\nservices: {kafka: {}}\n")

	bp, err := blueprint.Compute(context.Background(), settings, parseTopology(t, "{}"), blueprint.Options{
		Resolver: failingResolver{},
	})
	require.Error(t, err)
	assert.Nil(t, bp)
	assert.Equal(t, 127, external.ExitCode(err))
}

func serverNames(cluster *blueprint.Cluster) []string {
	var names []string
	for name := range cluster.Servers {
		names = append(names, name)
	}
	return names
}
