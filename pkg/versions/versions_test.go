// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package versions_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/punchplatform/punch-punchbox-app/pkg/experiments"
	"github.com/punchplatform/punch-punchbox-app/pkg/external"
	"github.com/punchplatform/punch-punchbox-app/pkg/versions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRunner struct {
	lock     sync.Mutex
	commands []external.Command
	outputs  map[string]string
	failOn   string
}

func (r *recordingRunner) Run(_ context.Context, cmd external.Command) ([]byte, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.commands = append(r.commands, cmd)

	component := cmd.Args[len(cmd.Args)-1]
	if component == r.failOn {
		return nil, external.NewToolError(cmd.String(), 4, errors.New("exit status 4"))
	}
	return []byte(r.outputs[component]), nil
}

func TestScriptResolverRunsVersionofScript(t *testing.T) {
	runner := &recordingRunner{outputs: map[string]string{"kafka": "2.8.1 \n"}}
	resolver := versions.NewScriptResolver("/opt/deployer", runner)

	version, err := resolver.Resolve(context.Background(), "kafka")
	require.NoError(t, err)
	assert.Equal(t, "2.8.1", version)

	require.Len(t, runner.commands, 1)
	assert.Equal(t, filepath.Join("/opt/deployer", "bin", "punchplatform-versionof.sh"), runner.commands[0].Executable)
	assert.Equal(t, []string{"--legacy", "kafka"}, runner.commands[0].Args)
}

func TestResolveAllCallsOncePerComponent(t *testing.T) {
	for _, experiment := range []string{"", "parallel-versions"} {
		t.Run("experiments="+experiment, func(t *testing.T) {
			experiments.ResetForTesting()
			os.Setenv(experiments.Env, experiment)
			defer func() {
				os.Unsetenv(experiments.Env)
				experiments.ResetForTesting()
			}()

			outputs := map[string]string{}
			for _, component := range versions.KnownComponents {
				outputs[component] = component + "-1.0\n"
			}
			runner := &recordingRunner{outputs: outputs}

			result, err := versions.ResolveAll(context.Background(), versions.NewScriptResolver("/deployer", runner), versions.KnownComponents)
			require.NoError(t, err)

			require.Len(t, result, len(versions.KnownComponents))
			assert.Equal(t, "kafka-1.0", result["kafka"])
			assert.Equal(t, "opendistro_security-1.0", result["opendistro_security"])

			var called []string
			for _, cmd := range runner.commands {
				called = append(called, cmd.Args[1])
			}
			expected := append([]string{}, versions.KnownComponents...)
			sort.Strings(called)
			sort.Strings(expected)
			assert.Equal(t, expected, called)
		})
	}
}

func TestResolveAllFailureReturnsNoPartialResult(t *testing.T) {
	runner := &recordingRunner{outputs: map[string]string{"punch": "6.4.5"}, failOn: "zookeeper"}

	result, err := versions.ResolveAll(context.Background(), versions.NewScriptResolver("/deployer", runner), versions.KnownComponents)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "Resolving version of 'zookeeper'")
	assert.Equal(t, 4, external.ExitCode(err))
}

func TestMapResolver(t *testing.T) {
	resolver := versions.MapResolver{"kafka": "2.8.1"}

	version, err := resolver.Resolve(context.Background(), "kafka")
	require.NoError(t, err)
	assert.Equal(t, "2.8.1", version)

	_, err = resolver.Resolve(context.Background(), "storm")
	require.Error(t, err)
}
