// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package workspace_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/punchplatform/punch-punchbox-app/pkg/blueprint"
	"github.com/punchplatform/punch-punchbox-app/pkg/cmd/ui"
	cmdws "github.com/punchplatform/punch-punchbox-app/pkg/cmd/workspace"
	"github.com/punchplatform/punch-punchbox-app/pkg/external"
	"github.com/punchplatform/punch-punchbox-app/pkg/workspace"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticRunner struct{}

func (staticRunner) Run(_ context.Context, cmd external.Command) ([]byte, error) {
	if cmd.Args[len(cmd.Args)-1] == "kafka" {
		return []byte("2.8.1\n"), nil
	}
	return []byte("1.0.0\n"), nil
}

func writeFile(t *testing.T, path, content string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func newPunchboxDir(t *testing.T) string {
	dir := t.TempDir()
	src := workspace.NewSourceHierarchy(dir, "standalone")

	writeFile(t, src.SettingsFile, `platform:
  platform_id: punchbox
services:
  kafka:
    settings:
      owner: localusername
vagrant:
  box: ubuntu/focal64
`)
	writeFile(t, src.TopologyFile, `servers:
  server1:
    services:
    - {}
`)
	writeFile(t, src.ResolvFile, "{}\n")
	writeFile(t, src.VagrantTemplateFile, "box: {{ .box }}\nservers: {{ keys .servers | jsonify }}\n")
	writeFile(t, filepath.Join(src.TemplateDir, "deployment.settings.tpl"),
		"platform:\n  platform_id: {{ .platform.platform_id }}\nkafka:\n  version: {{ .services.kafka.settings.version }}\n")
	writeFile(t, filepath.Join(src.TemplateDir, "resolv.hjson.tpl"), "{ platform: \"{{ .platform.platform_id }}\" }\n")

	return dir
}

func newUI(answer bool) (ui.UI, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return ui.NewCustomWriterTTY(false, &stdout, &stderr, answer), &stdout, &stderr
}

func createWorkspace(t *testing.T) string {
	root := filepath.Join(t.TempDir(), "ws")

	opts := cmdws.NewCreateOptions()
	opts.Deployer = t.TempDir()
	opts.Workspace = root
	opts.SourceDir = newPunchboxDir(t)

	tty, stdout, _ := newUI(true)

	require.NoError(t, opts.RunWithUI(tty))
	assert.Contains(t, stdout.String(), "Workspace created")
	assert.Contains(t, stdout.String(), filepath.Join(root, "activate.sh"))

	return root
}

func TestCreateAndBuild(t *testing.T) {
	root := createWorkspace(t)
	h := workspace.NewHierarchy(root)

	opts := cmdws.NewBuildOptions()
	opts.Workspace = root
	opts.Yes = true
	opts.Runner = staticRunner{}
	opts.Identity = &blueprint.Identity{User: "alice", Group: "staff"}

	tty, stdout, stderr := newUI(false)

	require.NoError(t, opts.RunWithUI(context.Background(), tty))
	assert.Empty(t, stderr.String())

	assert.Equal(t, "box: ubuntu/focal64\nservers: [\"server1\"]\n", readFile(t, h.VagrantFile))
	assert.Contains(t, readFile(t, h.BlueprintFile), "owner: alice")
	assert.Equal(t, "platform:\n  platform_id: punchbox\nkafka:\n  version: 2.8.1\n", readFile(t, h.DeploymentSettingsFile))
	assert.Equal(t, `{"platform": {"platform_id": "punchbox"}, "kafka": {"version": "2.8.1"}}`,
		readFile(t, h.LegacyDeploymentSettingsFile))
	assert.Equal(t, "{ platform: \"punchbox\" }\n", readFile(t, h.ResolvConfFile))

	out := stdout.String()
	assert.Contains(t, out, "punchbox generate blueprint --deployer ")
	assert.Contains(t, out, "punchbox generate deployment-settings --blueprint "+h.BlueprintFile)
	assert.Contains(t, out, "Workspace built")
}

func TestBuildDeclinedSteps(t *testing.T) {
	root := createWorkspace(t)
	h := workspace.NewHierarchy(root)

	opts := cmdws.NewBuildOptions()
	opts.Workspace = root
	opts.Runner = staticRunner{}

	tty, _, stderr := newUI(false)

	require.NoError(t, opts.RunWithUI(context.Background(), tty))

	assert.Contains(t, stderr.String(), "Generate vagrantfile "+h.VagrantFile+" ?")
	assert.Contains(t, stderr.String(), "Generate platform blueprint "+h.BlueprintFile+" ?")
	assert.Contains(t, stderr.String(), "Generate deployment settings "+h.DeploymentSettingsFile+" ?")

	for _, path := range []string{h.VagrantFile, h.BlueprintFile, h.DeploymentSettingsFile, h.LegacyDeploymentSettingsFile} {
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err), "Expected %s to not be generated", path)
	}
}

func TestBuildPropagatesVersionLookupFailure(t *testing.T) {
	root := createWorkspace(t)

	opts := cmdws.NewBuildOptions()
	opts.Workspace = root
	opts.Yes = true
	opts.Runner = versionsFailingRunner{}
	opts.Identity = &blueprint.Identity{User: "alice", Group: "staff"}

	tty, _, _ := newUI(true)

	err := opts.RunWithUI(context.Background(), tty)
	require.Error(t, err)
	assert.Equal(t, 2, external.ExitCode(err))

	_, statErr := os.Stat(workspace.NewHierarchy(root).BlueprintFile)
	assert.True(t, os.IsNotExist(statErr))
}

type versionsFailingRunner struct{}

func (versionsFailingRunner) Run(_ context.Context, cmd external.Command) ([]byte, error) {
	return nil, external.NewToolError(cmd.String(), 2, os.ErrNotExist)
}

func TestBuildWithoutWorkspace(t *testing.T) {
	opts := cmdws.NewBuildOptions()
	opts.Workspace = filepath.Join(t.TempDir(), "missing")

	tty, _, _ := newUI(true)

	err := opts.RunWithUI(context.Background(), tty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Reading punchbox configuration")
}

func TestCreateDeclinedOverwrite(t *testing.T) {
	root := createWorkspace(t)
	h := workspace.NewHierarchy(root)

	writeFile(t, h.SettingsFile, "platform: {}\n")

	opts := cmdws.NewCreateOptions()
	opts.Deployer = t.TempDir()
	opts.Workspace = root
	opts.SourceDir = newPunchboxDir(t)

	tty, _, stderr := newUI(false)

	require.NoError(t, opts.RunWithUI(tty))
	assert.Contains(t, stderr.String(), "Overwrite your configurations ?")
	assert.Contains(t, stderr.String(), "left unchanged")
	assert.Equal(t, "platform: {}\n", readFile(t, h.SettingsFile))
}

func TestCreateConfigType(t *testing.T) {
	root := createWorkspace(t)

	conf, err := workspace.LoadConfig(afero.NewOsFs(), workspace.NewHierarchy(root).ConfigFile)
	require.NoError(t, err)
	assert.Equal(t, workspace.TypeStandalone, conf.Env.Type)
}

func TestBuildSampleProfile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ws")

	createOpts := cmdws.NewCreateOptions()
	createOpts.Deployer = t.TempDir()
	createOpts.Workspace = root
	createOpts.Profile = "sample"
	createOpts.SourceDir = filepath.Join("..", "..", "..", "examples", "punchbox")

	tty, _, _ := newUI(true)
	require.NoError(t, createOpts.RunWithUI(tty))

	buildOpts := cmdws.NewBuildOptions()
	buildOpts.Workspace = root
	buildOpts.Yes = true
	buildOpts.Runner = staticRunner{}
	buildOpts.Identity = &blueprint.Identity{User: "alice", Group: "staff"}

	require.NoError(t, buildOpts.RunWithUI(context.Background(), tty))

	h := workspace.NewHierarchy(root)

	vagrantfile := readFile(t, h.VagrantFile)
	assert.Contains(t, vagrantfile, `config.vm.box = "ubuntu/focal64"`)
	assert.Contains(t, vagrantfile, `node.vm.network "private_network", ip: "172.28.128.23"`)
	assert.Contains(t, vagrantfile, "vb.memory = 4096")

	settings := readFile(t, h.DeploymentSettingsFile)
	assert.Contains(t, settings, "  platform_id: punchbox-sample\n")
	assert.Contains(t, settings, "kafka:\n  version: \"2.8.1\"\n")
	assert.Contains(t, settings, `    server2: {"brokers_port":9092,"default_replication_factor":2,"iface":"enp0s8",`+
		`"ip":"172.28.128.22","kafka_brokers_jvm_xmx":"1G","partition_retention_bytes":1073741824}`+"\n")
	assert.Contains(t, settings, "users:\n  vagrant: {\"groups\":\"vagrant\"}")

	legacy := readFile(t, h.LegacyDeploymentSettingsFile)
	assert.Contains(t, legacy, `"platform_id": "punchbox-sample"`)

	assert.Contains(t, readFile(t, h.ResolvConfFile), `elastic_nodes: ["server1","server2","server3"]`)

	conf, err := workspace.LoadConfig(afero.NewOsFs(), h.ConfigFile)
	require.NoError(t, err)
	assert.Equal(t, workspace.TypeDeployed, conf.Env.Type)
}
