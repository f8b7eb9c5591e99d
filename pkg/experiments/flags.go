// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package experiments

import (
	"os"
	"sort"
	"strings"
)

// Env is the OS environment variable with comma-separated names of experiments to enable.
const Env = "PUNCHBOXEXPERIMENTS"

// Experiment is a named behavior switched on through Env.
type Experiment struct {
	Name        string
	Description string
}

var (
	// ParallelVersions looks component versions up concurrently instead of
	// one after the other.
	ParallelVersions = Experiment{
		Name:        "parallel-versions",
		Description: "Ask the deployer for every component version concurrently",
	}

	noop = Experiment{Name: "noop", Description: "Does nothing"}

	registry = []Experiment{ParallelVersions, noop}
)

// Enabled reports whether the experiment is named in Env.
func (e Experiment) Enabled() bool {
	_, found := requested()[e.Name]
	return found
}

// Enabled returns the known experiments named in Env.
func Enabled() []Experiment {
	var result []Experiment
	for _, e := range registry {
		if e.Enabled() {
			result = append(result, e)
		}
	}
	return result
}

// Unknown returns the names found in Env that do not match any experiment,
// typically typos.
func Unknown() []string {
	var result []string
	for name := range requested() {
		if !isKnown(name) {
			result = append(result, name)
		}
	}
	sort.Strings(result)
	return result
}

func isKnown(name string) bool {
	for _, e := range registry {
		if e.Name == name {
			return true
		}
	}
	return false
}

// names requested through Env, normalized; loaded once
var names map[string]struct{}

func requested() map[string]struct{} {
	if names == nil {
		names = map[string]struct{}{}
		for _, name := range strings.Split(os.Getenv(Env), ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name != "" {
				names[name] = struct{}{}
			}
		}
	}
	return names
}

// ResetForTesting forces Env to be read again on next use.
func ResetForTesting() {
	names = nil
}
