// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

// Package versions looks up the version of the platform components shipped
// with a deployer.
package versions

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/punchplatform/punch-punchbox-app/pkg/experiments"
	"github.com/punchplatform/punch-punchbox-app/pkg/external"
	"golang.org/x/sync/errgroup"
)

// KnownComponents are the services whose version the deployer can report.
var KnownComponents = []string{
	"punch",
	"minio",
	"zookeeper",
	"spark",
	"elastic",
	"opendistro_security",
	"operator",
	"binaries",
	"analytics-deployment",
	"analytics-client",
	"shiva",
	"gateway",
	"storm",
	"kafka",
	"logstash",
	"metricbeat",
	"filebeat",
	"packetbeat",
	"auditbeat",
}

type Resolver interface {
	Resolve(ctx context.Context, component string) (string, error)
}

// ScriptResolver asks the deployer's versionof script.
type ScriptResolver struct {
	DeployerPath string
	Runner       external.Runner
}

var _ Resolver = ScriptResolver{}

func NewScriptResolver(deployerPath string, runner external.Runner) ScriptResolver {
	return ScriptResolver{DeployerPath: deployerPath, Runner: runner}
}

func (r ScriptResolver) Script() string {
	return filepath.Join(r.DeployerPath, "bin", "punchplatform-versionof.sh")
}

func (r ScriptResolver) Resolve(ctx context.Context, component string) (string, error) {
	out, err := r.Runner.Run(ctx, external.Command{
		Executable: r.Script(),
		Args:       []string{"--legacy", component},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(out), " \t\r\n"), nil
}

// MapResolver answers from a fixed table. Unknown components are an error.
type MapResolver map[string]string

var _ Resolver = MapResolver{}

func (r MapResolver) Resolve(_ context.Context, component string) (string, error) {
	version, found := r[component]
	if !found {
		return "", fmt.Errorf("Unknown component '%s'", component)
	}
	return version, nil
}

// ResolveAll calls the resolver once per component. The first failure
// aborts the whole lookup and no partial table is returned.
func ResolveAll(ctx context.Context, resolver Resolver, components []string) (map[string]string, error) {
	if experiments.ParallelVersions.Enabled() {
		return resolveAllConcurrently(ctx, resolver, components)
	}

	result := make(map[string]string, len(components))
	for _, component := range components {
		version, err := resolver.Resolve(ctx, component)
		if err != nil {
			return nil, fmt.Errorf("Resolving version of '%s': %w", component, err)
		}
		result[component] = version
	}
	return result, nil
}

func resolveAllConcurrently(ctx context.Context, resolver Resolver, components []string) (map[string]string, error) {
	var resultLock sync.Mutex
	result := make(map[string]string, len(components))

	group, groupCtx := errgroup.WithContext(ctx)

	for _, component := range components {
		component := component
		group.Go(func() error {
			version, err := resolver.Resolve(groupCtx, component)
			if err != nil {
				return fmt.Errorf("Resolving version of '%s': %w", component, err)
			}
			resultLock.Lock()
			result[component] = version
			resultLock.Unlock()
			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		return nil, err
	}
	return result, nil
}
